// internal/store/store.go
package store

import (
	"context"
	"fmt"
	"time"

	"startup-analyst/internal/common/config"
	"startup-analyst/internal/common/database"
	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/models"
)

const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Store keeps completed analyses by id.
type Store interface {
	Put(ctx context.Context, analysis *models.StoredAnalysis) error
	// Get returns an ANALYSIS_NOT_FOUND error for unknown ids.
	Get(ctx context.Context, id string) (*models.StoredAnalysis, error)
	Count(ctx context.Context) (int, error)
}

// New builds the configured backend. The returned close function releases
// any connection the backend opened.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store.Backend {
	case "", BackendMemory:
		log.Info("using in-memory analysis store", nil)
		return NewMemoryStore(), noop, nil

	case BackendRedis:
		client, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return nil, noop, err
		}
		if err := client.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, noop, err
		}
		ttl := time.Duration(cfg.Store.TTL) * time.Second
		log.Info("using redis analysis store", map[string]interface{}{
			"address": cfg.Database.Redis.Address,
			"prefix":  cfg.Store.KeyPrefix,
			"ttl":     ttl.String(),
		})
		return NewRedisStore(client, cfg.Store.KeyPrefix, ttl), client.Close, nil

	case BackendPostgres:
		client, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, noop, err
		}
		if err := client.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("postgres ping failed: %w", err)
		}
		s := NewPostgresStore(client)
		if err := s.EnsureSchema(ctx); err != nil {
			_ = client.Close()
			return nil, noop, err
		}
		log.Info("using postgres analysis store", map[string]interface{}{
			"host":     cfg.Database.Postgres.Host,
			"database": cfg.Database.Postgres.Database,
		})
		return s, client.Close, nil
	}

	return nil, noop, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}
