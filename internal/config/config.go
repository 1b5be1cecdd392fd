package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/skillswap/skillswap/pkg/logger"
)

// Storage drivers
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
	DriverRedis  = "redis"
)

// Config application configuration
type Config struct {
	App          AppConfig          `yaml:"app" envPrefix:"APP_"`
	Server       ServerConfig       `yaml:"server" envPrefix:"SERVER_"`
	Storage      StorageConfig      `yaml:"storage" envPrefix:"STORAGE_"`
	Redis        RedisConfig        `yaml:"redis" envPrefix:"REDIS_"`
	GenAI        GenAIConfig        `yaml:"genai" envPrefix:"GENAI_"`
	Audio        AudioConfig        `yaml:"audio" envPrefix:"AUDIO_"`
	Registration RegistrationConfig `yaml:"registration" envPrefix:"REGISTRATION_"`
}

// AppConfig general settings
type AppConfig struct {
	Env      string `yaml:"env" env:"ENV"`
	Name     string `yaml:"name" env:"NAME"`
	Locale   string `yaml:"locale" env:"LOCALE" validate:"omitempty,oneof=pt en"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
}

// ServerConfig view surface settings
type ServerConfig struct {
	Host         string `yaml:"host" env:"HOST"`
	Port         int    `yaml:"port" env:"PORT" validate:"min=1,max=65535"`
	AllowOrigins string `yaml:"allow_origins" env:"ALLOW_ORIGINS"`
}

// StorageConfig persistence substrate settings
type StorageConfig struct {
	Driver    string `yaml:"driver" env:"DRIVER" validate:"oneof=memory sqlite mysql redis"`
	DSN       string `yaml:"dsn" env:"DSN" validate:"required_if=Driver sqlite,required_if=Driver mysql"`
	KeyPrefix string `yaml:"key_prefix" env:"KEY_PREFIX"`
}

// RedisConfig redis connection settings
type RedisConfig struct {
	Host     string        `yaml:"host" env:"HOST"`
	Port     int           `yaml:"port" env:"PORT"`
	Password string        `yaml:"password" env:"PASSWORD"`
	DB       int           `yaml:"db" env:"DB"`
	PoolSize int           `yaml:"pool_size" env:"POOL_SIZE"`
	Timeout  time.Duration `yaml:"timeout" env:"TIMEOUT"`
}

// GenAIConfig description generator settings
type GenAIConfig struct {
	BaseURL     string  `yaml:"base_url" env:"BASE_URL" validate:"omitempty,url"`
	APIKey      string  `yaml:"api_key" env:"API_KEY"`
	Model       string  `yaml:"model" env:"MODEL"`
	Temperature float64 `yaml:"temperature" env:"TEMPERATURE" validate:"gte=0,lte=2"`
	TopP        float64 `yaml:"top_p" env:"TOP_P" validate:"gte=0,lte=1"`
	MaxTokens   int     `yaml:"max_tokens" env:"MAX_TOKENS" validate:"gte=0"`
	// RequestsPerMinute per member; enforced only when Redis is reachable
	RequestsPerMinute int `yaml:"requests_per_minute" env:"REQUESTS_PER_MINUTE" validate:"gte=0"`
}

// AudioConfig recording settings
type AudioConfig struct {
	MaxBytes    int64  `yaml:"max_bytes" env:"MAX_BYTES" validate:"gte=0"`
	DefaultMIME string `yaml:"default_mime" env:"DEFAULT_MIME"`
}

// RegistrationConfig form rules
type RegistrationConfig struct {
	MinPasswordLength int   `yaml:"min_password_length" env:"MIN_PASSWORD_LENGTH" validate:"gte=0"`
	MaxImageBytes     int64 `yaml:"max_image_bytes" env:"MAX_IMAGE_BYTES" validate:"gte=0"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Env:      "local",
			Name:     "skillswap",
			Locale:   "pt",
			LogLevel: "info",
		},
		Server: ServerConfig{
			Host:         "127.0.0.1",
			Port:         8090,
			AllowOrigins: "http://localhost:5173",
		},
		Storage: StorageConfig{
			Driver: DriverSQLite,
			DSN:    "skillswap.db",
		},
		Redis: RedisConfig{
			Host:     "localhost",
			Port:     6379,
			PoolSize: 10,
			Timeout:  3 * time.Second,
		},
		GenAI: GenAIConfig{
			BaseURL:     "https://generativelanguage.googleapis.com/v1beta/openai",
			Model:       "gemini-2.5-flash",
			Temperature: 0.7,
			TopP:        0.95,
			MaxTokens:   100,

			RequestsPerMinute: 10,
		},
		Audio: AudioConfig{
			MaxBytes:    10 << 20,
			DefaultMIME: "audio/webm",
		},
		Registration: RegistrationConfig{
			MinPasswordLength: 6,
			MaxImageBytes:     2 << 20,
		},
	}
}

// Load reads the YAML file at path (optional), applies environment overrides and validates.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
		logger.Warn("config file %s not found, using defaults", path)
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "SKILLSWAP_"}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// IsDevelopment reports whether the app runs in a development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "" || c.App.Env == "local" || c.App.Env == "development" || c.App.Env == "dev"
}

// Addr listen address of the view surface
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// LogResolved prints the effective configuration without secrets
func LogResolved(cfg *Config) {
	logger.GetLogger().Info().
		Str("env", cfg.App.Env).
		Str("storage_driver", cfg.Storage.Driver).
		Str("listen", cfg.Addr()).
		Bool("genai_configured", cfg.GenAI.APIKey != "").
		Msg("config resolved")
}
