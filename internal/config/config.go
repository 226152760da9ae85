// Package config loads runtime settings from the environment and an optional
// config.yaml in the working directory.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds every runtime setting of the server.
type Config struct {
	AppPort           string
	DBDriver          string
	DatabaseDSN       string
	JWTSecret         string
	RabbitMQURL       string
	SessionExpiration time.Duration
	SeedCatalog       bool
}

// Load reads the configuration. Environment variables win over the file.
func Load() (Config, error) {
	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "autocare.db")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("SESSION_EXPIRATION", "24h")
	v.SetDefault("SEED_CATALOG", true)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	v.AutomaticEnv()

	cfg := Config{
		AppPort:           v.GetString("APP_PORT"),
		DBDriver:          v.GetString("DB_DRIVER"),
		DatabaseDSN:       v.GetString("DATABASE_DSN"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		RabbitMQURL:       v.GetString("RABBITMQ_URL"),
		SessionExpiration: v.GetDuration("SESSION_EXPIRATION"),
		SeedCatalog:       v.GetBool("SEED_CATALOG"),
	}
	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		return Config{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.SessionExpiration <= 0 {
		return Config{}, fmt.Errorf("SESSION_EXPIRATION must be positive, got %s", cfg.SessionExpiration)
	}
	return cfg, nil
}
