// Package backend selects and opens the durable storage the ledger runs on.
package backend

import (
	"fmt"
	"log/slog"

	"kassa/internal/storage"
)

// Type represents the configured storage backend.
type Type string

const (
	SQLite Type = "sqlite"
	File   Type = "file"
	Memory Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case SQLite, File, Memory:
		return true
	default:
		return false
	}
}

// Config holds what each backend needs to open.
type Config struct {
	Type         Type
	SQLiteDBPath string
	DataDir      string
}

// Open creates the configured KV store. The caller owns Close on the result.
func Open(cfg Config, logger *slog.Logger) (storage.KV, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid storage backend: %s", cfg.Type)
	}

	switch cfg.Type {
	case SQLite:
		kv, err := storage.NewSQLiteKV(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("Initialized sqlite storage", "db_path", cfg.SQLiteDBPath)
		return kv, nil

	case File:
		kv, err := storage.NewFileKV(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initialize file backend: %w", err)
		}
		logger.Info("Initialized file storage", "data_dir", cfg.DataDir)
		return kv, nil

	default:
		logger.Info("Initialized in-memory storage; data will not survive restarts")
		return storage.NewMemoryKV(), nil
	}
}
