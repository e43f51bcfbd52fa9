package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"real_estate/internal/domain"
	"real_estate/internal/repository"
	apperrors "real_estate/pkg/errors"
	"real_estate/pkg/logger"
)

type ListingService interface {
	Create(ctx context.Context, actor *domain.User, in *domain.ListingInput, files []*multipart.FileHeader) (*domain.Listing, error)
	Edit(ctx context.Context, actorID, id uuid.UUID, in *domain.ListingInput, files []*multipart.FileHeader) (*domain.Listing, error)
	Delete(ctx context.Context, actorID, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	Search(ctx context.Context, filter domain.ListingFilter) ([]*domain.Listing, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Listing, error)
}

type listingService struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	cache       repository.SearchCache
	images      ImageStore
	log         logger.Logger
}

func NewListingService(listingRepo repository.ListingRepository, userRepo repository.UserRepository, cache repository.SearchCache, images ImageStore, log logger.Logger) ListingService {
	return &listingService{
		listingRepo: listingRepo,
		userRepo:    userRepo,
		cache:       cache,
		images:      images,
		log:         log,
	}
}

func (s *listingService) Create(ctx context.Context, actor *domain.User, in *domain.ListingInput, files []*multipart.FileHeader) (*domain.Listing, error) {
	if !actor.IsBroker {
		return nil, apperrors.Unauthorized("Only brokers can create listings")
	}

	uploaded, err := s.upload(ctx, files)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ownerID := actor.ID
	listing := &domain.Listing{
		ID:        uuid.New(),
		UserRef:   &ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	in.Apply(listing, append(append([]string{}, in.ImageURLs...), uploaded...))

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	s.log.Info("Listing created", "listing_id", listing.ID, "owner_id", ownerID)
	return listing, nil
}

func (s *listingService) Edit(ctx context.Context, actorID, id uuid.UUID, in *domain.ListingInput, files []*multipart.FileHeader) (*domain.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "No Listings found")
	}
	if !listing.IsOwnedBy(actorID) {
		return nil, apperrors.Unauthorized("You can only update your own listings!")
	}

	uploaded, err := s.upload(ctx, files)
	if err != nil {
		return nil, err
	}

	in.Apply(listing, append(append([]string{}, in.ImageURLs...), uploaded...))
	if err := s.listingRepo.Update(ctx, listing); err != nil {
		return nil, notFoundAs(err, "No Listings found")
	}
	s.invalidate(ctx)

	return listing, nil
}

func (s *listingService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return notFoundAs(err, "No Listings found")
	}
	if !listing.IsOwnedBy(actorID) {
		return apperrors.Unauthorized("You can only delete your own listings!")
	}

	if err := s.listingRepo.Delete(ctx, id); err != nil {
		return notFoundAs(err, "No Listings found")
	}
	s.invalidate(ctx)

	s.log.Info("Listing deleted", "listing_id", id)
	return nil
}

func (s *listingService) Get(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "No Listings found")
	}
	if err := populateOwners(ctx, s.userRepo, []*domain.Listing{listing}); err != nil {
		return nil, err
	}
	return listing, nil
}

// Search reads through the cache. A cache failure degrades to a direct
// query. The key is fixed before the query runs, so a write that lands
// mid-query invalidates the page being stored.
func (s *listingService) Search(ctx context.Context, filter domain.ListingFilter) ([]*domain.Listing, error) {
	filter.Normalize()

	key, err := s.cache.Key(ctx, filter)
	if err == nil {
		if cached, hit, err := s.cache.Get(ctx, key); err == nil && hit {
			return cached, nil
		}
	}

	listings, err := s.listingRepo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	if key != "" {
		if err := s.cache.Set(ctx, key, listings); err != nil {
			s.log.Warn("Failed to cache search results", "error", err)
		}
	}
	return listings, nil
}

func (s *listingService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Listing, error) {
	return s.listingRepo.ListByOwner(ctx, ownerID)
}

func (s *listingService) upload(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) > domain.MaxListingImages {
		return nil, apperrors.BadRequest(fmt.Sprintf("You can upload at most %d images", domain.MaxListingImages))
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		url, err := s.images.Save(ctx, file)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

func (s *listingService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("Failed to invalidate search cache", "error", err)
	}
}

// populateOwners fills Owner on every listing with a single user lookup.
// Listings whose owner is gone are left unpopulated.
func populateOwners(ctx context.Context, userRepo repository.UserRepository, listings []*domain.Listing) error {
	ids := make([]uuid.UUID, 0, len(listings))
	seen := make(map[uuid.UUID]bool, len(listings))
	for _, l := range listings {
		if l.UserRef != nil && !seen[*l.UserRef] {
			seen[*l.UserRef] = true
			ids = append(ids, *l.UserRef)
		}
	}

	users, err := userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, l := range listings {
		if l.UserRef == nil {
			continue
		}
		if u, ok := users[*l.UserRef]; ok {
			l.Owner = u.OwnerSummary()
		}
	}
	return nil
}
