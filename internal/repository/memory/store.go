// Package memory holds in-process implementations of the repository
// interfaces. They back local runs with DATABASE_DRIVER=memory and the
// service and handler tests.
package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"real_estate/internal/domain"
	"real_estate/internal/repository"
	"real_estate/pkg/logger"
)

// store is the shared state. Cross-collection effects such as deleting a
// user run under one lock.
type store struct {
	mu sync.RWMutex

	users       map[uuid.UUID]*domain.User
	listings    map[uuid.UUID]*domain.Listing
	saved       map[uuid.UUID][]savedRow
	preferences map[uuid.UUID]*domain.Preferences
	rooms       map[uuid.UUID]*domain.ChatRoom
	messages    map[uuid.UUID][]*domain.Message
	audit       []*domain.AuditLog
}

type savedRow struct {
	listingID uuid.UUID
	savedAt   time.Time
}

func newStore() *store {
	return &store{
		users:       make(map[uuid.UUID]*domain.User),
		listings:    make(map[uuid.UUID]*domain.Listing),
		saved:       make(map[uuid.UUID][]savedRow),
		preferences: make(map[uuid.UUID]*domain.Preferences),
		rooms:       make(map[uuid.UUID]*domain.ChatRoom),
		messages:    make(map[uuid.UUID][]*domain.Message),
	}
}

// NewRepositories returns in-memory data stores plus the Redis-backed ones.
func NewRepositories(redis *redis.Client, searchTTL time.Duration, log logger.Logger) *repository.Repositories {
	s := newStore()
	repos := &repository.Repositories{
		User:        &userRepository{s: s},
		Listing:     &listingRepository{s: s},
		Saved:       &savedRepository{s: s},
		Preferences: &preferencesRepository{s: s},
		Chat:        &chatRepository{s: s},
		Audit:       &auditRepository{s: s},
	}
	repos.AttachRedis(redis, searchTTL, log)

	log.Info("In-memory repositories initialized")
	return repos
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func copyUser(u *domain.User) *domain.User {
	c := *u
	if u.Phone != nil {
		phone := *u.Phone
		c.Phone = &phone
	}
	return &c
}

func copyListing(l *domain.Listing) *domain.Listing {
	c := *l
	c.ImageURLs = append([]string{}, l.ImageURLs...)
	if l.DiscountPrice != nil {
		d := *l.DiscountPrice
		c.DiscountPrice = &d
	}
	if l.UserRef != nil {
		ref := *l.UserRef
		c.UserRef = &ref
	}
	c.Owner = nil
	return &c
}

func copyPreferences(p *domain.Preferences) *domain.Preferences {
	c := *p
	c.ListingType = append([]string{}, p.ListingType...)
	c.PropertyTypes = append([]string{}, p.PropertyTypes...)
	c.PreferredCities = append([]string{}, p.PreferredCities...)
	c.User = nil
	return &c
}

func copyRoom(r *domain.ChatRoom) *domain.ChatRoom {
	c := *r
	c.Participants = append([]uuid.UUID{}, r.Participants...)
	c.Members = nil
	return &c
}
