package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-redis/redis/v8"
	"energytrack.app/config"
	"energytrack.app/errors"
)

const (
	resetCodeKeyPrefix  = "password_reset:"
	resetTokenKeyPrefix = "password_reset_verified:"
)

// RedisResetStore keeps password-reset codes and verification tokens in
// redis with their own expirations
type RedisResetStore struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisResetStore connects to redis and verifies the connection
func NewRedisResetStore(cfg *config.RedisConfig) (*RedisResetStore, error) {
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.NewConfigurationError("failed to connect to redis", err)
	}

	slog.Info("Redis reset store connected", "addr", cfg.Addr)

	return &RedisResetStore{
		client: client,
		ctx:    ctx,
	}, nil
}

// NewRedisResetStoreWithClient wraps an existing client, used by tests
func NewRedisResetStoreWithClient(client *redis.Client) *RedisResetStore {
	return &RedisResetStore{
		client: client,
		ctx:    context.Background(),
	}
}

// SaveResetCode stores a reset code under the user's email
func (s *RedisResetStore) SaveResetCode(email, code string, ttl time.Duration) error {
	return s.client.Set(s.ctx, resetCodeKeyPrefix+email, code, ttl).Err()
}

// GetResetCode returns the stored code, or empty string when absent or expired
func (s *RedisResetStore) GetResetCode(email string) (string, error) {
	val, err := s.client.Get(s.ctx, resetCodeKeyPrefix+email).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return val, nil
}

// DeleteResetCode removes a stored code
func (s *RedisResetStore) DeleteResetCode(email string) error {
	return s.client.Del(s.ctx, resetCodeKeyPrefix+email).Err()
}

// SaveResetToken stores the post-verification token under the user's email
func (s *RedisResetStore) SaveResetToken(email, token string, ttl time.Duration) error {
	return s.client.Set(s.ctx, resetTokenKeyPrefix+email, token, ttl).Err()
}

// GetResetToken returns the stored token, or empty string when absent or expired
func (s *RedisResetStore) GetResetToken(email string) (string, error) {
	val, err := s.client.Get(s.ctx, resetTokenKeyPrefix+email).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return val, nil
}

// DeleteResetToken removes a stored token
func (s *RedisResetStore) DeleteResetToken(email string) error {
	return s.client.Del(s.ctx, resetTokenKeyPrefix+email).Err()
}

// Close shuts down the redis connection
func (s *RedisResetStore) Close() error {
	return s.client.Close()
}
