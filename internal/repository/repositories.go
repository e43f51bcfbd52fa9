package repository

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"real_estate/pkg/logger"
)

type Repositories struct {
	User        UserRepository
	Listing     ListingRepository
	Saved       SavedRepository
	Preferences PreferencesRepository
	Chat        ChatRepository
	Audit       AuditRepository
	RateLimit   RateLimitRepository
	SearchCache SearchCache
	Token       TokenRepository
}

// NewRepositories wires the Postgres-backed stores. Redis always backs the
// counters, the search cache and token revocation.
func NewRepositories(db *pgxpool.Pool, redis *redis.Client, searchTTL time.Duration, log logger.Logger) *Repositories {
	repos := &Repositories{
		User:        NewUserRepository(db, log),
		Listing:     NewListingRepository(db, log),
		Saved:       NewSavedRepository(db, log),
		Preferences: NewPreferencesRepository(db, log),
		Chat:        NewChatRepository(db, log),
		Audit:       NewAuditRepository(db, log),
	}
	repos.AttachRedis(redis, searchTTL, log)

	log.Info("Postgres repositories initialized")
	return repos
}

// AttachRedis fills in the Redis-backed stores.
func (r *Repositories) AttachRedis(redis *redis.Client, searchTTL time.Duration, log logger.Logger) {
	r.RateLimit = NewRateLimitRepository(redis, log)
	r.SearchCache = NewSearchCache(redis, searchTTL, log)
	r.Token = NewTokenRepository(redis, log)
}
