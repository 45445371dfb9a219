package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Conflict policies governing overwrites of a newer stored record
const (
	PolicyAuto = "auto"
	PolicyAsk  = "ask"
)

// Config holds all application configuration
type Config struct {
	// Storage configuration
	Storage StorageConfig

	// Editor session configuration
	Editor EditorConfig

	// Logging configuration
	Log LogConfig
}

// StorageConfig holds article store settings
type StorageConfig struct {
	Path        string
	KeyPrefix   string
	MaxArticles int
}

// EditorConfig holds session behavior settings
type EditorConfig struct {
	ConflictPolicy   string
	AutosaveInterval time.Duration
	DraftMaxAge      time.Duration
	WordCountLow     int
	WordCountHigh    int
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Format string // "json" or "pretty"
}

// Load reads configuration from environment variables. The session reads
// this once at startup and honors it for its lifetime.
func Load() (*Config, error) {
	cfg := &Config{
		Storage: StorageConfig{
			Path:        getEnv("STORAGE_PATH", "./data/draftdesk.db"),
			KeyPrefix:   getEnv("STORAGE_KEY_PREFIX", "draftdesk_"),
			MaxArticles: getIntEnv("MAX_ARTICLES", 200),
		},
		Editor: EditorConfig{
			ConflictPolicy:   getEnv("CONFLICT_POLICY", PolicyAuto),
			AutosaveInterval: time.Duration(getIntEnv("AUTOSAVE_INTERVAL_MS", 30000)) * time.Millisecond,
			DraftMaxAge:      time.Duration(getIntEnv("DRAFT_MAX_AGE_HOURS", 24)) * time.Hour,
			WordCountLow:     getIntEnv("WORDCOUNT_LOW", 100),
			WordCountHigh:    getIntEnv("WORDCOUNT_HIGH", 5000),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Storage.Path == "" {
		return fmt.Errorf("STORAGE_PATH is required")
	}
	if c.Storage.MaxArticles <= 0 {
		return fmt.Errorf("MAX_ARTICLES must be positive")
	}
	if c.Editor.ConflictPolicy != PolicyAuto && c.Editor.ConflictPolicy != PolicyAsk {
		return fmt.Errorf("CONFLICT_POLICY must be %q or %q", PolicyAuto, PolicyAsk)
	}
	if c.Editor.AutosaveInterval <= 0 {
		return fmt.Errorf("AUTOSAVE_INTERVAL_MS must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
