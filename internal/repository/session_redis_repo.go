package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"smartparking/internal/entities"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "web_session:"

// RedisSessionRepository relies on key TTLs for expiry, so DeleteExpired
// has nothing to do.
type RedisSessionRepository struct {
	client *redis.Client
}

func OpenRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return client, nil
}

func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func (r *RedisSessionRepository) Save(ctx context.Context, s *entities.Session) error {
	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+sessionKey(s.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("error saving session: %w", err)
	}
	return nil
}

func (r *RedisSessionRepository) Get(ctx context.Context, id string) (*entities.Session, error) {
	payload, err := r.client.Get(ctx, sessionKeyPrefix+sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("error loading session: %w", err)
	}
	var s entities.Session
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	s.ID = id
	return &s, nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+sessionKey(id)).Err(); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	return nil
}

func (r *RedisSessionRepository) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}
