package service

import (
	"context"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"real_estate/internal/domain"
	"real_estate/internal/repository"
	apperrors "real_estate/pkg/errors"
	"real_estate/pkg/logger"
)

func TestCreateListingRequiresBroker(t *testing.T) {
	env := newTestEnv(t)
	buyer := env.createUser(t, "buyer", false)

	_, err := env.svc.Listing.Create(context.Background(), buyer, listingInput("Flat", 100, nil), nil)
	assert.Equal(t, http.StatusUnauthorized, apperrors.HTTPStatusFromError(err))
}

func TestCreateListingDefaults(t *testing.T) {
	env := newTestEnv(t)
	broker := env.createUser(t, "broker", true)

	in := listingInput("Flat", 100, nil)
	in.ImageURLs = []string{"https://img/1.png"}
	files := []*multipart.FileHeader{{Filename: "2.png"}}

	l, err := env.svc.Listing.Create(context.Background(), broker, in, files)
	require.NoError(t, err)
	assert.True(t, l.Features.Sell)
	assert.False(t, l.Verified)
	assert.Equal(t, domain.ListingStatusAvailable, l.Status)
	assert.Equal(t, domain.SizeUnitSqft, l.Size.Unit)
	assert.Equal(t, []string{"https://img/1.png", "/uploads/2.png"}, l.ImageURLs)
	require.NotNil(t, l.UserRef)
	assert.Equal(t, broker.ID, *l.UserRef)
}

func TestCreateListingUploadLimits(t *testing.T) {
	env := newTestEnv(t)
	broker := env.createUser(t, "broker", true)
	ctx := context.Background()

	files := make([]*multipart.FileHeader, domain.MaxListingImages+1)
	for i := range files {
		files[i] = &multipart.FileHeader{Filename: "x.png"}
	}
	_, err := env.svc.Listing.Create(ctx, broker, listingInput("Flat", 100, nil), files)
	assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatusFromError(err))

	env.images.fail = true
	_, err = env.svc.Listing.Create(ctx, broker, listingInput("Flat", 100, nil), files[:1])
	assert.Equal(t, http.StatusInternalServerError, apperrors.HTTPStatusFromError(err))
	assert.Equal(t, "Image upload failed", apperrors.Message(err))
}

func TestEditAndDeleteAreOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.createUser(t, "owner", true)
	other := env.createUser(t, "other", true)
	l := env.createListing(t, owner, "Flat", 100, nil)

	_, err := env.svc.Listing.Edit(ctx, other.ID, l.ID, listingInput("Mine now", 100, nil), nil)
	assert.Equal(t, http.StatusUnauthorized, apperrors.HTTPStatusFromError(err))
	assert.Equal(t, http.StatusUnauthorized, apperrors.HTTPStatusFromError(env.svc.Listing.Delete(ctx, other.ID, l.ID)))

	_, err = env.svc.Listing.Edit(ctx, owner.ID, uuid.New(), listingInput("x", 100, nil), nil)
	assert.Equal(t, http.StatusNotFound, apperrors.HTTPStatusFromError(err))

	in := listingInput("Renamed", 120, &domain.Features{Rent: true})
	in.Status = domain.ListingStatusRented
	edited, err := env.svc.Listing.Edit(ctx, owner.ID, l.ID, in, nil)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", edited.Name)
	assert.Equal(t, domain.ListingStatusRented, edited.Status)
	assert.True(t, edited.Features.Rent)
	assert.False(t, edited.Features.Sell)

	require.NoError(t, env.svc.Listing.Delete(ctx, owner.ID, l.ID))
	_, err = env.svc.Listing.Get(ctx, l.ID)
	assert.Equal(t, http.StatusNotFound, apperrors.HTTPStatusFromError(err))
}

func TestGetPopulatesOwner(t *testing.T) {
	env := newTestEnv(t)
	owner := env.createUser(t, "owner", true)
	l := env.createListing(t, owner, "Flat", 100, nil)

	got, err := env.svc.Listing.Get(context.Background(), l.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Owner)
	assert.Equal(t, "owner", got.Owner.Username)
	assert.Equal(t, owner.Email, got.Owner.Email)
	assert.Nil(t, got.Owner.Phone)
}

func TestSearchByKindAndCacheInvalidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	broker := env.createUser(t, "broker", true)

	empty, err := env.svc.Listing.Search(ctx, domain.ListingFilter{Limit: 9})
	require.NoError(t, err)
	assert.Empty(t, empty)

	sale := env.createListing(t, broker, "Sale", 5000000, &domain.Features{Sell: true})
	env.createListing(t, broker, "Rental", 20000, &domain.Features{Rent: true})

	sales, err := env.svc.Listing.Search(ctx, domain.ListingFilter{Kind: domain.ListingKindSale})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, sale.ID, sales[0].ID)

	rentals, err := env.svc.Listing.Search(ctx, domain.ListingFilter{Kind: domain.ListingKindRent})
	require.NoError(t, err)
	require.Len(t, rentals, 1)
	for _, l := range rentals {
		assert.True(t, l.Features.Rent)
		assert.NotEqual(t, sale.ID, l.ID)
	}

	all, err := env.svc.Listing.Search(ctx, domain.ListingFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// A new listing must show up even though the previous page is cached.
	env.createListing(t, broker, "Third", 100, nil)
	all, err = env.svc.Listing.Search(ctx, domain.ListingFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

// midQueryListings runs during once inside the first Search call, after
// the rows have been read.
type midQueryListings struct {
	repository.ListingRepository
	during func()
}

func (r *midQueryListings) Search(ctx context.Context, filter domain.ListingFilter) ([]*domain.Listing, error) {
	listings, err := r.ListingRepository.Search(ctx, filter)
	if r.during != nil {
		during := r.during
		r.during = nil
		during()
	}
	return listings, err
}

func TestSearchAfterConcurrentWriteIsFresh(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	broker := env.createUser(t, "broker", true)

	repo := &midQueryListings{ListingRepository: env.repos.Listing}
	svc := NewListingService(repo, env.repos.User, env.repos.SearchCache, env.images, logger.Discard())

	repo.during = func() {
		_, err := env.svc.Listing.Create(ctx, broker, listingInput("Landed mid-query", 100, nil), nil)
		require.NoError(t, err)
	}

	first, err := svc.Search(ctx, domain.ListingFilter{})
	require.NoError(t, err)
	assert.Empty(t, first)

	second, err := svc.Search(ctx, domain.ListingFilter{})
	require.NoError(t, err)
	assert.Len(t, second, 1)
}
