package store

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

const (
	EngineJSON   = "json"
	EngineSQLite = "sqlite"
	EngineMemory = "memory"
)

// NewByEngine opens the KV engine selected by configuration.
func NewByEngine(ctx context.Context, engine, path string, logger *slog.Logger) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineSQLite:
		return NewSQLiteStore(ctx, path)
	case EngineJSON:
		return NewJSONStore(path, logger)
	case EngineMemory:
		return NewMemoryStore(), nil
	default:
		return nil, errors.New("unsupported store engine: " + engine)
	}
}
