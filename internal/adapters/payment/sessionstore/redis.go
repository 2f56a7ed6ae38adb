package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"eventregistration/internal/domain"
)

const keyPrefix = "payment:session:"

// RedisStore keeps session metadata in Redis with a fixed TTL, so every API
// instance can reconcile a session opened by any other.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis returns a Redis-backed metadata store. Entries expire after ttl.
func NewRedis(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, md domain.SessionMetadata) error {
	raw, err := json.Marshal(md)
	if err != nil {
		return fmt.Errorf("marshal session metadata: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+sessionID, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session metadata: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (*domain.SessionMetadata, error) {
	raw, err := s.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session metadata: %w", err)
	}
	var md domain.SessionMetadata
	if err := json.Unmarshal(raw, &md); err != nil {
		return nil, fmt.Errorf("decode session metadata: %w", err)
	}
	return &md, nil
}
