package config

import (
	"time"

	"github.com/alexisbeaulieu97/recipedia/internal/mealdb"
	"github.com/alexisbeaulieu97/recipedia/internal/storage"
	"github.com/alexisbeaulieu97/recipedia/internal/theme"
)

// Environment selects development or production behaviour.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// Config is the user configuration, read from YAML and overridden by
// RECIPEDIA_* environment variables.
type Config struct {
	Environment Environment     `yaml:"environment" env:"RECIPEDIA_ENV" validate:"required,oneof=development production"`
	API         APIConfig       `yaml:"api"`
	Storage     StorageConfig   `yaml:"storage"`
	Theme       ThemeConfig     `yaml:"theme"`
	Log         LogConfig       `yaml:"log"`
	Telemetry   TelemetryConfig `yaml:"telemetry"`
}

// APIConfig points the client at TheMealDB.
type APIConfig struct {
	BaseURL string        `yaml:"base_url" env:"RECIPEDIA_API_BASE_URL" validate:"required,http_url"`
	Timeout time.Duration `yaml:"timeout" env:"RECIPEDIA_API_TIMEOUT" validate:"gt=0"`
}

// StorageConfig selects the persistent key/value backend. An empty Path is
// resolved under the application directory.
type StorageConfig struct {
	Driver    string `yaml:"driver" env:"RECIPEDIA_STORAGE_DRIVER" validate:"required,storage_driver"`
	Path      string `yaml:"path" env:"RECIPEDIA_STORAGE_PATH"`
	Namespace string `yaml:"namespace" env:"RECIPEDIA_STORAGE_NAMESPACE" validate:"required,namespace"`
}

// ThemeConfig configures the theme preference.
type ThemeConfig struct {
	StorageKey string `yaml:"storage_key" env:"RECIPEDIA_THEME_STORAGE_KEY" validate:"required"`
	// Default applies when no preference has been stored.
	Default string `yaml:"default" env:"RECIPEDIA_THEME_DEFAULT" validate:"omitempty,theme_mode"`
}

// LogConfig configures the zerolog logger.
type LogConfig struct {
	Level string `yaml:"level" env:"RECIPEDIA_LOG_LEVEL" validate:"required,log_level"`
	// File receives logs while the TUI owns the terminal.
	File          string `yaml:"file" env:"RECIPEDIA_LOG_FILE"`
	HumanReadable bool   `yaml:"human_readable" env:"RECIPEDIA_LOG_HUMAN"`
}

// TelemetryConfig toggles OpenTelemetry export.
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled" env:"RECIPEDIA_TELEMETRY_ENABLED"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Environment: EnvProduction,
		API: APIConfig{
			BaseURL: mealdb.DefaultBaseURL,
			Timeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Driver:    string(storage.DriverFile),
			Namespace: "recipedia",
		},
		Theme: ThemeConfig{
			StorageKey: theme.DefaultStorageKey,
			Default:    string(theme.ModeSystem),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Development reports whether verbose diagnostics are wanted.
func (c *Config) Development() bool {
	return c.Environment == EnvDevelopment
}
