package repository

import (
	"errors"

	"github.com/skillswap/skillswap/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormKV struct {
	db *gorm.DB
}

// NewGormKV substrate backed by a single key/value table (sqlite or mysql)
func NewGormKV(db *gorm.DB) KVStore {
	return &gormKV{db: db}
}

// MigrateKV creates the key/value table
func MigrateKV(db *gorm.DB) error {
	return db.AutoMigrate(&domain.KVEntry{})
}

func (r *gormKV) Read(key string) ([]byte, bool, error) {
	var entry domain.KVEntry
	err := r.db.Where("kv_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return []byte(entry.Value), true, nil
}

func (r *gormKV) Write(key string, value []byte) error {
	entry := domain.KVEntry{Key: key, Value: string(value)}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kv_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"kv_value", "updated_at"}),
	}).Create(&entry).Error
}

func (r *gormKV) Dump() (map[string][]byte, error) {
	var entries []domain.KVEntry
	if err := r.db.Order("kv_key").Find(&entries).Error; err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(entries))
	for _, e := range entries {
		out[e.Key] = []byte(e.Value)
	}
	return out, nil
}
