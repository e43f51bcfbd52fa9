package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"real_estate/internal/domain"
	"real_estate/pkg/logger"
)

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestSearchCacheRoundTripAndInvalidate(t *testing.T) {
	_, client := newMiniredis(t)
	cache := NewSearchCache(client, time.Minute, logger.Discard())
	ctx := context.Background()

	filter := domain.ListingFilter{Kind: domain.ListingKindRent}
	key, err := cache.Key(ctx, filter)
	require.NoError(t, err)

	_, hit, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, hit)

	listings := []*domain.Listing{{Name: "Loft", ImageURLs: []string{}}}
	require.NoError(t, cache.Set(ctx, key, listings))

	got, hit, err := cache.Get(ctx, key)
	require.NoError(t, err)
	require.True(t, hit)
	require.Len(t, got, 1)
	assert.Equal(t, "Loft", got[0].Name)

	// Same filter spelled differently resolves to the same key.
	same, err := cache.Key(ctx, domain.ListingFilter{Kind: domain.ListingKindRent, Limit: 9, SortField: "createdAt"})
	require.NoError(t, err)
	assert.Equal(t, key, same)

	require.NoError(t, cache.Invalidate(ctx))
	next, err := cache.Key(ctx, filter)
	require.NoError(t, err)
	assert.NotEqual(t, key, next)
	_, hit, err = cache.Get(ctx, next)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestSearchCachePageStoredUnderPreWriteKey(t *testing.T) {
	_, client := newMiniredis(t)
	cache := NewSearchCache(client, time.Minute, logger.Discard())
	ctx := context.Background()
	filter := domain.ListingFilter{}

	key, err := cache.Key(ctx, filter)
	require.NoError(t, err)

	// A write invalidates while the page for key is being computed.
	require.NoError(t, cache.Invalidate(ctx))
	require.NoError(t, cache.Set(ctx, key, []*domain.Listing{}))

	next, err := cache.Key(ctx, filter)
	require.NoError(t, err)
	_, hit, err := cache.Get(ctx, next)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestSearchCacheEntriesExpire(t *testing.T) {
	mr, client := newMiniredis(t)
	cache := NewSearchCache(client, 30*time.Second, logger.Discard())
	ctx := context.Background()

	key, err := cache.Key(ctx, domain.ListingFilter{})
	require.NoError(t, err)
	require.NoError(t, cache.Set(ctx, key, []*domain.Listing{}))
	mr.FastForward(31 * time.Second)

	_, hit, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRateLimitHit(t *testing.T) {
	mr, client := newMiniredis(t)
	repo := NewRateLimitRepository(client, logger.Discard())
	ctx := context.Background()

	for i := int64(1); i <= 3; i++ {
		count, ttl, err := repo.Hit(ctx, "1.2.3.4", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, i, count)
		assert.True(t, ttl > 0 && ttl <= time.Minute)
	}

	mr.FastForward(time.Minute + time.Second)
	count, _, err := repo.Hit(ctx, "1.2.3.4", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTokenRevocation(t *testing.T) {
	mr, client := newMiniredis(t)
	repo := NewTokenRepository(client, logger.Discard())
	ctx := context.Background()

	revoked, err := repo.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, repo.Revoke(ctx, "abc", time.Hour))
	revoked, err = repo.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(time.Hour + time.Second)
	revoked, err = repo.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)
}
