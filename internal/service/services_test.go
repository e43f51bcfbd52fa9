package service

import (
	"context"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"real_estate/internal/config"
	"real_estate/internal/domain"
	"real_estate/internal/repository"
	"real_estate/internal/repository/memory"
	apperrors "real_estate/pkg/errors"
	"real_estate/pkg/logger"
)

type fakeImages struct {
	mu    sync.Mutex
	saved []string
	fail  bool
}

func (f *fakeImages) Save(ctx context.Context, file *multipart.FileHeader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return "", apperrors.Wrap(apperrors.ErrUploadFailed, "Image upload failed")
	}
	url := "/uploads/" + file.Filename
	f.saved = append(f.saved, url)
	return url, nil
}

type testEnv struct {
	svc    *Services
	repos  *repository.Repositories
	images *fakeImages
	redis  *miniredis.Miniredis
	cfg    *config.Config
}

func testConfig() *config.Config {
	return &config.Config{
		JWT:       config.JWTConfig{AccessSecret: "test-secret", AccessTTL: time.Hour, Issuer: "test"},
		Admin:     config.AdminConfig{Email: "admin@estate.test", Password: "admin-pass"},
		Cache:     config.CacheConfig{SearchTTL: time.Minute},
		RateLimit: config.RateLimitConfig{Requests: 3, Window: time.Minute},
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := testConfig()
	log := logger.Discard()
	repos := memory.NewRepositories(client, cfg.Cache.SearchTTL, log)
	images := &fakeImages{}

	return &testEnv{
		svc:    NewServices(repos, images, cfg, log),
		repos:  repos,
		images: images,
		redis:  mr,
		cfg:    cfg,
	}
}

func (e *testEnv) createUser(t *testing.T, name string, broker bool) *domain.User {
	t.Helper()
	u := &domain.User{
		ID:           uuid.New(),
		Username:     name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Avatar:       domain.DefaultAvatarURL,
		IsBroker:     broker,
	}
	require.NoError(t, e.repos.User.Create(context.Background(), u))
	return u
}

func listingInput(name string, price float64, f *domain.Features) *domain.ListingInput {
	return &domain.ListingInput{
		Name:         name,
		Description:  "A place",
		Address:      domain.Address{PropertyName: "Tower", City: "Pune", State: "MH", Country: "India"},
		Features:     f,
		RegularPrice: price,
		Type:         "Apartment",
		Size:         domain.Size{Value: 900},
	}
}

func (e *testEnv) createListing(t *testing.T, broker *domain.User, name string, price float64, f *domain.Features) *domain.Listing {
	t.Helper()
	l, err := e.svc.Listing.Create(context.Background(), broker, listingInput(name, price, f), nil)
	require.NoError(t, err)
	return l
}
