// Package config loads runtime settings through viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds every setting the application reads at startup.
type Config struct {
	AppPort        string
	DatabaseDriver string // "sqlite" or "postgres"
	DatabaseDSN    string
	PrefsBackend   string // "sqlite" or "redis"
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RabbitMQURL    string // empty disables event publishing
	SeedDemo       bool
	LogLevel       string
	LogFormat      string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "file:vet_home.db?_foreign_keys=on")
	v.SetDefault("PREFS_BACKEND", "sqlite")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("SEED_DEMO", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

// Load reads the configuration from v, falling back to defaults and
// environment variables.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	v.AutomaticEnv() // Load environment variables

	cfg := Config{
		AppPort:        v.GetString("APP_PORT"),
		DatabaseDriver: strings.ToLower(v.GetString("DATABASE_DRIVER")),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		PrefsBackend:   strings.ToLower(v.GetString("PREFS_BACKEND")),
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		RedisDB:        v.GetInt("REDIS_DB"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		SeedDemo:       v.GetBool("SEED_DEMO"),
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      v.GetString("LOG_FORMAT"),
	}

	switch cfg.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return Config{}, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
	switch cfg.PrefsBackend {
	case "sqlite", "redis":
	default:
		return Config{}, fmt.Errorf("unsupported PREFS_BACKEND %q", cfg.PrefsBackend)
	}
	return cfg, nil
}
