package service

import (
	"context"

	"github.com/google/uuid"

	"real_estate/internal/domain"
	"real_estate/internal/repository"
	"real_estate/pkg/logger"
)

// AdminService is the moderation surface behind the admin token.
type AdminService interface {
	ListListings(ctx context.Context) ([]*domain.Listing, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	ToggleVerified(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error)
	DeleteUser(ctx context.Context, userID uuid.UUID) error
	DeleteListing(ctx context.Context, listingID uuid.UUID) error
	UserListings(ctx context.Context, userID uuid.UUID) ([]*domain.Listing, error)
}

type adminService struct {
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	cache       repository.SearchCache
	audit       AuditService
	log         logger.Logger
}

func NewAdminService(listingRepo repository.ListingRepository, userRepo repository.UserRepository, cache repository.SearchCache, audit AuditService, log logger.Logger) AdminService {
	return &adminService{
		listingRepo: listingRepo,
		userRepo:    userRepo,
		cache:       cache,
		audit:       audit,
		log:         log,
	}
}

func (s *adminService) ListListings(ctx context.Context) ([]*domain.Listing, error) {
	listings, err := s.listingRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := populateOwners(ctx, s.userRepo, listings); err != nil {
		return nil, err
	}
	return listings, nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *adminService) ToggleVerified(ctx context.Context, listingID uuid.UUID) (*domain.Listing, error) {
	listing, err := s.listingRepo.ToggleVerified(ctx, listingID)
	if err != nil {
		return nil, notFoundAs(err, "Listing not found")
	}
	s.invalidate(ctx)
	s.record(ctx, domain.EventTypeListingVerifyToggled, listingID, map[string]interface{}{"verified": listing.Verified})
	return listing, nil
}

// DeleteUser detaches the user's listings before removing the account, so
// the listings stay readable without an owner.
func (s *adminService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return notFoundAs(err, "User not found")
	}

	detached, err := s.listingRepo.DetachOwner(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return notFoundAs(err, "User not found")
	}
	if detached > 0 {
		s.invalidate(ctx)
	}

	s.record(ctx, domain.EventTypeUserDeleted, userID, map[string]interface{}{"detached_listings": detached})
	return nil
}

func (s *adminService) DeleteListing(ctx context.Context, listingID uuid.UUID) error {
	if err := s.listingRepo.Delete(ctx, listingID); err != nil {
		return notFoundAs(err, "Listing not found")
	}
	s.invalidate(ctx)
	s.record(ctx, domain.EventTypeListingDeleted, listingID, nil)
	return nil
}

func (s *adminService) UserListings(ctx context.Context, userID uuid.UUID) ([]*domain.Listing, error) {
	return s.listingRepo.ListByOwner(ctx, userID)
}

func (s *adminService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("Failed to invalidate search cache", "error", err)
	}
}

// record writes an audit row. Failures are logged by the audit service and
// never fail the admin call.
func (s *adminService) record(ctx context.Context, eventType string, target uuid.UUID, payload map[string]interface{}) {
	_ = s.audit.LogEvent(ctx, domain.ActorRoleAdmin, eventType, target.String(), payload)
}
