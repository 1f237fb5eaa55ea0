package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Orgdesk Admin"`
		Locale   string `envconfig:"APP_LOCALE" default:"pt-BR"`
		LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	}

	API struct {
		BaseURL   string        `envconfig:"API_BASE_URL" default:"http://localhost:8000/api"`
		Timeout   time.Duration `envconfig:"API_TIMEOUT" default:"30s"`
		RateLimit float64       `envconfig:"API_RATE_LIMIT" default:"10"`
		RateBurst int           `envconfig:"API_RATE_BURST" default:"20"`
	}

	Session struct {
		Driver string `envconfig:"SESSION_DB_DRIVER" default:"sqlite"`
		DSN    string `envconfig:"SESSION_DB_DSN" default:"orgdesk.db"`
	}

	Sync struct {
		Port           int      `envconfig:"SYNC_PORT" default:"8090"`
		Schedule       string   `envconfig:"SYNC_SCHEDULE" default:"@every 5m"`
		AllowedOrigins []string `envconfig:"SYNC_ALLOWED_ORIGINS" default:"http://localhost:3000"`
		Fencing        bool     `envconfig:"SYNC_FENCING" default:"true"`
	}
}

// Level maps LOG_LEVEL onto a slog level. Unknown values mean info.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.App.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	return slog.LevelInfo
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
