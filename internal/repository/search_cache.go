package repository

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"real_estate/internal/domain"
	"real_estate/pkg/logger"
)

const searchVersionKey = "listing:search:version"

// SearchCache stores search result pages. Invalidate bumps a version
// counter that is part of every key, so all earlier pages become
// unreachable and age out through their TTL. A caller resolves the key
// once before querying and stores under that same key, so a page read
// before a write is never filed under the post-write version.
type SearchCache interface {
	Key(ctx context.Context, filter domain.ListingFilter) (string, error)
	Get(ctx context.Context, key string) ([]*domain.Listing, bool, error)
	Set(ctx context.Context, key string, listings []*domain.Listing) error
	Invalidate(ctx context.Context) error
}

type searchCache struct {
	redis *redis.Client
	ttl   time.Duration
	log   logger.Logger
}

func NewSearchCache(redis *redis.Client, ttl time.Duration, log logger.Logger) SearchCache {
	return &searchCache{redis: redis, ttl: ttl, log: log}
}

func (c *searchCache) Key(ctx context.Context, filter domain.ListingFilter) (string, error) {
	version, err := c.redis.Get(ctx, searchVersionKey).Int64()
	if err != nil && err != redis.Nil {
		c.log.Error("Failed to read search cache version", "error", err)
		return "", err
	}

	filter.Normalize()
	hash := md5.Sum([]byte(filter.CacheKey()))
	return fmt.Sprintf("listing:search:v%d:%s", version, hex.EncodeToString(hash[:])), nil
}

func (c *searchCache) Get(ctx context.Context, key string) ([]*domain.Listing, bool, error) {
	data, err := c.redis.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		c.log.Error("Failed to read search cache", "error", err)
		return nil, false, err
	}

	var listings []*domain.Listing
	if err := json.Unmarshal(data, &listings); err != nil {
		c.log.Warn("Dropping corrupt search cache entry", "key", key, "error", err)
		c.redis.Del(ctx, key)
		return nil, false, nil
	}
	return listings, true, nil
}

func (c *searchCache) Set(ctx context.Context, key string, listings []*domain.Listing) error {
	if c.ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(listings)
	if err != nil {
		return err
	}
	if err := c.redis.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.log.Error("Failed to write search cache", "error", err)
		return err
	}
	return nil
}

func (c *searchCache) Invalidate(ctx context.Context) error {
	if err := c.redis.Incr(ctx, searchVersionKey).Err(); err != nil {
		c.log.Error("Failed to invalidate search cache", "error", err)
		return err
	}
	return nil
}
