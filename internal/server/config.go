package server

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the demo server configuration.
type Config struct {
	Addr            string        `envconfig:"FETCH_SERVER_ADDR" default:":8080"`
	MaxDelay        time.Duration `envconfig:"FETCH_SERVER_MAX_DELAY" default:"10s"`
	ShutdownTimeout time.Duration `envconfig:"FETCH_SERVER_SHUTDOWN_TIMEOUT" default:"5s"`
	CORSOrigins     []string      `envconfig:"FETCH_SERVER_CORS_ORIGINS" default:"http://localhost:*,http://127.0.0.1:*"`
	Logging         LogConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Addr:            ":8080",
		MaxDelay:        10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		CORSOrigins:     []string{"http://localhost:*", "http://127.0.0.1:*"},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
