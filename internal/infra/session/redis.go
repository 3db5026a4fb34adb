package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore はセッションblobをRedisに置く実装。
// キーは session:<sid>:<key>、書き込みごとにTTLを延長する。
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(sessionID, key string) string {
	return fmt.Sprintf("session:%s:%s", sessionID, key)
}

func (s *RedisStore) Get(ctx context.Context, sessionID string, key string) ([]byte, bool, error) {
	v, err := s.client.Get(ctx, redisKey(sessionID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (s *RedisStore) Put(ctx context.Context, sessionID string, key string, value []byte) error {
	return s.client.Set(ctx, redisKey(sessionID, key), value, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string, key string) error {
	return s.client.Del(ctx, redisKey(sessionID, key)).Err()
}
