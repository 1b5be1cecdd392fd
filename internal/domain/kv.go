package domain

import "time"

// KVEntry row of the gorm-backed key-value substrate
type KVEntry struct {
	Key       string    `gorm:"column:kv_key;primaryKey;size:191" json:"key"`
	Value     string    `gorm:"column:kv_value;type:longtext" json:"value"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (KVEntry) TableName() string {
	return "skillswap_kv"
}
