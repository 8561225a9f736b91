// Package cli provides common CLI initialization utilities.
// This package consolidates repeated initialization patterns across
// cmd/kassa and cmd/kassa-worker.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"kassa/internal/backend"
	"kassa/internal/config"
	applog "kassa/internal/log"
	"kassa/internal/storage"
)

// SetupLogger initializes structured logging for a binary and installs it as
// the process-wide default.
func SetupLogger(component string) *applog.Logger {
	logger := applog.New(slog.LevelInfo, component)
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

// InitStorage opens the configured KV backend.
// Returns the store or exits the process on failure.
func InitStorage(logger *applog.Logger, cfg *config.Config) storage.KV {
	kv, err := backend.Open(backend.Config{
		Type:         backend.Type(cfg.StorageBackend),
		SQLiteDBPath: cfg.SQLiteDBPath,
		DataDir:      cfg.DataDir,
	}, logger.Logger)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err, "backend", cfg.StorageBackend)
		os.Exit(1)
	}
	return kv
}
