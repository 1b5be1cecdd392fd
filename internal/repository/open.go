package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/skillswap/skillswap/internal/config"
	pkgredis "github.com/skillswap/skillswap/pkg/redis"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Substrate opened key/value store and the connections behind it
type Substrate struct {
	KV    KVStore
	Redis *redis.Client // set for the redis driver
	db    *gorm.DB
}

// Close releases the underlying connections
func (s *Substrate) Close() error {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			return err
		}
	}
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

// OpenSubstrate connects the storage driver selected in cfg
func OpenSubstrate(ctx context.Context, cfg *config.Config) (*Substrate, error) {
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		return &Substrate{KV: NewMemoryKV()}, nil
	case config.DriverSQLite, config.DriverMySQL:
		db, err := openDB(cfg)
		if err != nil {
			return nil, err
		}
		if err := MigrateKV(db); err != nil {
			return nil, fmt.Errorf("migrate kv table: %w", err)
		}
		return &Substrate{KV: NewGormKV(db), db: db}, nil
	case config.DriverRedis:
		client, err := pkgredis.NewClient(ctx, redisOptions(cfg.Redis))
		if err != nil {
			return nil, err
		}
		return &Substrate{KV: NewRedisKV(client, cfg.Storage.KeyPrefix, cfg.Redis.Timeout), Redis: client}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}

func openDB(cfg *config.Config) (*gorm.DB, error) {
	level := gormlogger.Warn
	if cfg.IsDevelopment() {
		level = gormlogger.Info
	}
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(level)}

	var dialector gorm.Dialector
	if cfg.Storage.Driver == config.DriverMySQL {
		dialector = mysql.Open(cfg.Storage.DSN)
	} else {
		dialector = sqlite.Open(cfg.Storage.DSN)
	}
	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Storage.Driver, err)
	}

	if cfg.Storage.Driver == config.DriverMySQL {
		db.Exec("SET NAMES utf8mb4")
	}
	return db, nil
}

// redisOptions connection settings for pkg/redis
func redisOptions(c config.RedisConfig) pkgredis.Options {
	return pkgredis.Options{
		Host:     c.Host,
		Port:     c.Port,
		Password: c.Password,
		DB:       c.DB,
		PoolSize: c.PoolSize,
		Timeout:  c.Timeout,
	}
}

