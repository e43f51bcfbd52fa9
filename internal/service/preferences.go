package service

import (
	"context"

	"github.com/google/uuid"

	"real_estate/internal/domain"
	"real_estate/internal/repository"
	apperrors "real_estate/pkg/errors"
	"real_estate/pkg/logger"
)

type PreferencesService interface {
	// Save upserts the actor's preferences and reports whether they were
	// created by this call.
	Save(ctx context.Context, actorID uuid.UUID, in *domain.PreferencesInput) (*domain.Preferences, bool, error)
	Get(ctx context.Context, actorID, userID uuid.UUID) (*domain.Preferences, error)
}

type preferencesService struct {
	prefsRepo repository.PreferencesRepository
	log       logger.Logger
}

func NewPreferencesService(prefsRepo repository.PreferencesRepository, log logger.Logger) PreferencesService {
	return &preferencesService{
		prefsRepo: prefsRepo,
		log:       log,
	}
}

func (s *preferencesService) Save(ctx context.Context, actorID uuid.UUID, in *domain.PreferencesInput) (*domain.Preferences, bool, error) {
	prefs := in.ToPreferences(actorID)
	if prefs.MinPrice > prefs.MaxPrice {
		return nil, false, apperrors.BadRequest("minPrice cannot exceed maxPrice")
	}
	if prefs.MinSize > prefs.MaxSize {
		return nil, false, apperrors.BadRequest("minSize cannot exceed maxSize")
	}

	created, err := s.prefsRepo.Upsert(ctx, prefs)
	if err != nil {
		return nil, false, err
	}
	return prefs, created, nil
}

func (s *preferencesService) Get(ctx context.Context, actorID, userID uuid.UUID) (*domain.Preferences, error) {
	if actorID != userID {
		return nil, apperrors.Unauthorized("You can only view your own preferences!")
	}

	prefs, err := s.prefsRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, notFoundAs(err, "Preferences not found")
	}
	return prefs, nil
}
