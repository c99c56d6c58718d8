// Package storage provides the key-value slots the task collection is
// persisted in.
package storage

import (
	"context"
	"errors"
	"fmt"

	"todo-widget/app/config"
)

// ErrUnknownBackend is returned by Open for a backend name it does not know.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Backend is a string key-value store. Get reports ok=false for absent keys.
type Backend interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close(ctx context.Context) error
}

// Open creates the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg config.Storage) (Backend, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemory(), nil
	case config.BackendSQLite:
		return OpenSQLite(ctx, cfg.SQLitePath)
	case config.BackendRedis:
		return OpenRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case config.BackendNeo4j:
		driver, err := config.InitNeo4j(cfg)
		if err != nil {
			return nil, fmt.Errorf("init neo4j driver: %w", err)
		}
		if err := driver.VerifyConnectivity(ctx); err != nil {
			_ = driver.Close(ctx)
			return nil, fmt.Errorf("connect neo4j: %w", err)
		}
		return NewNeo4j(driver), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
