// internal/store/redis.go
package store

import (
	"context"
	stderrors "errors"
	"time"

	"startup-analyst/internal/common/database"
	"startup-analyst/internal/common/errors"
	"startup-analyst/internal/models"
)

// RedisStore keeps each analysis as a JSON value under prefix+id and tracks
// ids in a set for counting.
type RedisStore struct {
	client *database.RedisClient
	prefix string
	ttl    time.Duration
}

func NewRedisStore(client *database.RedisClient, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

func (s *RedisStore) indexKey() string {
	return s.prefix + "ids"
}

func (s *RedisStore) Put(ctx context.Context, analysis *models.StoredAnalysis) error {
	if err := s.client.SetJSON(ctx, s.key(analysis.ID), analysis, s.ttl); err != nil {
		return errors.NewStoreWriteFailedError(analysis.ID, err)
	}
	if err := s.client.Client.SAdd(ctx, s.indexKey(), analysis.ID).Err(); err != nil {
		return errors.NewStoreWriteFailedError(analysis.ID, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*models.StoredAnalysis, error) {
	var analysis models.StoredAnalysis
	err := s.client.GetJSON(ctx, s.key(id), &analysis)
	if stderrors.Is(err, database.ErrCacheMiss) {
		return nil, errors.NewAnalysisNotFoundError(id)
	}
	if err != nil {
		return nil, errors.NewStoreReadFailedError(id, err)
	}
	return &analysis, nil
}

// Count reports ids ever stored. With a TTL this can exceed the live keys.
func (s *RedisStore) Count(ctx context.Context) (int, error) {
	n, err := s.client.Client.SCard(ctx, s.indexKey()).Result()
	if err != nil {
		return 0, errors.NewStoreReadFailedError("*", err)
	}
	return int(n), nil
}
