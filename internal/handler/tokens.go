package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore tracks revoked token ids until their natural expiration.
type TokenStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type RedisTokenStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTokenStore(client *redis.Client, operationTimeout time.Duration) *RedisTokenStore {
	return &RedisTokenStore{
		client: client,
		ttl:    operationTimeout,
	}
}

func revokedTokenKey(jti string) string {
	return fmt.Sprintf("revoked_token_%s", jti)
}

func (s *RedisTokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, s.ttl)
	defer cancel()

	return s.client.Set(ctx, revokedTokenKey(jti), 1, ttl).Err()
}

func (s *RedisTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.ttl)
	defer cancel()

	n, err := s.client.Exists(ctx, revokedTokenKey(jti)).Result()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}
