package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"real_estate/pkg/logger"
)

// TokenRepository tracks revoked token ids until the tokens would have
// expired anyway.
type TokenRepository interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type tokenRepository struct {
	redis *redis.Client
	log   logger.Logger
}

func NewTokenRepository(redis *redis.Client, log logger.Logger) TokenRepository {
	return &tokenRepository{redis: redis, log: log}
}

func revokedKey(jti string) string {
	return "revoked:" + jti
}

func (r *tokenRepository) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.redis.Set(ctx, revokedKey(jti), "1", ttl).Err(); err != nil {
		r.log.Error("Failed to revoke token", "error", err)
		return err
	}
	return nil
}

func (r *tokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := r.redis.Exists(ctx, revokedKey(jti)).Result()
	if err != nil {
		r.log.Error("Failed to check token revocation", "error", err)
		return false, err
	}
	return n > 0, nil
}
