package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"real_estate/internal/domain"
	"real_estate/internal/repository"
	apperrors "real_estate/pkg/errors"
	"real_estate/pkg/logger"
)

type SavedService interface {
	Save(ctx context.Context, actorID, userID, listingID uuid.UUID) error
	Unsave(ctx context.Context, actorID, userID, listingID uuid.UUID) error
	// List returns the user's saved listings in the order they were saved.
	List(ctx context.Context, actorID, userID uuid.UUID) (*domain.SavedListings, error)
}

type savedService struct {
	savedRepo   repository.SavedRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	log         logger.Logger
}

func NewSavedService(savedRepo repository.SavedRepository, listingRepo repository.ListingRepository, userRepo repository.UserRepository, log logger.Logger) SavedService {
	return &savedService{
		savedRepo:   savedRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		log:         log,
	}
}

func (s *savedService) Save(ctx context.Context, actorID, userID, listingID uuid.UUID) error {
	if actorID != userID {
		return apperrors.Unauthorized("You can only save listings to your own account!")
	}
	if _, err := s.listingRepo.GetByID(ctx, listingID); err != nil {
		return notFoundAs(err, "Listing not found")
	}

	if err := s.savedRepo.Add(ctx, userID, listingID); err != nil {
		var dup *repository.DuplicateError
		if errors.As(err, &dup) {
			return apperrors.BadRequest("This listing is already saved by the user.")
		}
		return err
	}
	return nil
}

func (s *savedService) Unsave(ctx context.Context, actorID, userID, listingID uuid.UUID) error {
	if actorID != userID {
		return apperrors.Unauthorized("You can only change your own saved listings!")
	}
	if err := s.savedRepo.Remove(ctx, userID, listingID); err != nil {
		return notFoundAs(err, "Listing is not saved")
	}
	return nil
}

func (s *savedService) List(ctx context.Context, actorID, userID uuid.UUID) (*domain.SavedListings, error) {
	if actorID != userID {
		return nil, apperrors.Unauthorized("You can only view your own saved listings!")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, "User not found")
	}

	ids, err := s.savedRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	byID, err := s.listingRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	listings := make([]*domain.Listing, 0, len(ids))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			listings = append(listings, l)
		}
	}

	return &domain.SavedListings{User: user.OwnerSummary(), Listings: listings}, nil
}
