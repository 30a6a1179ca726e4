// File: services/session/redis.go
package session

import (
	"context"
	"fmt"
	"time"

	"carepro/models"
	"carepro/utils"

	"github.com/go-redis/redis/v8"
)

// RedisStore persists session records in Redis. Each flow owns two keys: the
// serialized record and an access-token marker. Both are written in one
// transaction so concurrent readers never observe a half-applied session.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Load(ctx context.Context, flowID string) (*models.SessionRecord, error) {
	data, err := s.client.Get(ctx, utils.SessionKeyPrefix+flowID).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session record: %w", err)
	}

	// A record without its token marker is not a valid session.
	if _, err := s.client.Get(ctx, utils.TokenKeyPrefix+flowID).Result(); err == redis.Nil {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to read token marker: %w", err)
	}

	return decodeRecord([]byte(data))
}

func (s *RedisStore) Save(ctx context.Context, flowID string, record *models.SessionRecord) error {
	record.LastUpdatedAt = time.Now()
	data, err := encodeRecord(record)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, utils.SessionKeyPrefix+flowID, data, s.ttl)
	pipe.Set(ctx, utils.TokenKeyPrefix+flowID, utils.HashToken(record.AccessToken), s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, flowID string) error {
	if err := s.client.Del(ctx, utils.SessionKeyPrefix+flowID, utils.TokenKeyPrefix+flowID).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
