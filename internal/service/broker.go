package service

import (
	"context"

	"github.com/google/uuid"

	"real_estate/internal/domain"
	"real_estate/internal/repository"
	apperrors "real_estate/pkg/errors"
	"real_estate/pkg/logger"
)

// BrokerService backs the broker dashboards. Every call requires a broker.
type BrokerService interface {
	AllPreferences(ctx context.Context, actor *domain.User) ([]*domain.Preferences, error)
	InterestedUsers(ctx context.Context, actor *domain.User, brokerID uuid.UUID) ([]*domain.InterestedUser, error)
	PreferenceAnalytics(ctx context.Context, actor *domain.User) (*domain.PreferenceAnalytics, error)
}

type brokerService struct {
	prefsRepo   repository.PreferencesRepository
	listingRepo repository.ListingRepository
	savedRepo   repository.SavedRepository
	userRepo    repository.UserRepository
	log         logger.Logger
}

func NewBrokerService(prefsRepo repository.PreferencesRepository, listingRepo repository.ListingRepository, savedRepo repository.SavedRepository, userRepo repository.UserRepository, log logger.Logger) BrokerService {
	return &brokerService{
		prefsRepo:   prefsRepo,
		listingRepo: listingRepo,
		savedRepo:   savedRepo,
		userRepo:    userRepo,
		log:         log,
	}
}

func requireBroker(actor *domain.User) error {
	if actor == nil || !actor.IsBroker {
		return apperrors.Unauthorized("Broker access required")
	}
	return nil
}

func (s *brokerService) AllPreferences(ctx context.Context, actor *domain.User) ([]*domain.Preferences, error) {
	if err := requireBroker(actor); err != nil {
		return nil, err
	}

	prefs, err := s.prefsRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(prefs))
	for _, p := range prefs {
		ids = append(ids, p.UserID)
	}
	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range prefs {
		if u, ok := users[p.UserID]; ok {
			p.User = u.Summary()
		}
	}
	return prefs, nil
}

func (s *brokerService) InterestedUsers(ctx context.Context, actor *domain.User, brokerID uuid.UUID) ([]*domain.InterestedUser, error) {
	if err := requireBroker(actor); err != nil {
		return nil, err
	}
	if actor.ID != brokerID {
		return nil, apperrors.Unauthorized("You can only view your own listings' audience!")
	}

	listings, err := s.listingRepo.ListByOwner(ctx, brokerID)
	if err != nil {
		return nil, err
	}
	thumbs := make(map[uuid.UUID]*domain.ListingThumb, len(listings))
	ids := make([]uuid.UUID, 0, len(listings))
	for _, l := range listings {
		thumbs[l.ID] = &domain.ListingThumb{ID: l.ID, Name: l.Name, Image: l.FirstImage()}
		ids = append(ids, l.ID)
	}

	entries, err := s.savedRepo.ListByListings(ctx, ids)
	if err != nil {
		return nil, err
	}

	var order []uuid.UUID
	matched := make(map[uuid.UUID][]*domain.ListingThumb)
	for _, e := range entries {
		if _, ok := matched[e.UserID]; !ok {
			order = append(order, e.UserID)
		}
		matched[e.UserID] = append(matched[e.UserID], thumbs[e.ListingID])
	}

	users, err := s.userRepo.GetByIDs(ctx, order)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.InterestedUser, 0, len(order))
	for _, id := range order {
		u, ok := users[id]
		if !ok {
			continue
		}
		result = append(result, &domain.InterestedUser{User: u.Summary(), MatchedListings: matched[id]})
	}
	return result, nil
}

func (s *brokerService) PreferenceAnalytics(ctx context.Context, actor *domain.User) (*domain.PreferenceAnalytics, error) {
	if err := requireBroker(actor); err != nil {
		return nil, err
	}

	prefs, err := s.prefsRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return domain.AnalyzePreferences(prefs), nil
}
