package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"real_estate/internal/domain"
	apperrors "real_estate/pkg/errors"
)

type preferencesRepository struct {
	s *store
}

func (r *preferencesRepository) Upsert(ctx context.Context, p *domain.Preferences) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	existing, ok := r.s.preferences[p.UserID]
	if ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	r.s.preferences[p.UserID] = copyPreferences(p)
	return !ok, nil
}

func (r *preferencesRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.Preferences, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.preferences[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return copyPreferences(p), nil
}

func (r *preferencesRepository) List(ctx context.Context) ([]*domain.Preferences, error) {
	r.s.mu.RLock()
	prefs := make([]*domain.Preferences, 0, len(r.s.preferences))
	for _, p := range r.s.preferences {
		prefs = append(prefs, copyPreferences(p))
	}
	r.s.mu.RUnlock()

	sort.Slice(prefs, func(i, j int) bool {
		return prefs[i].CreatedAt.Before(prefs[j].CreatedAt)
	})
	return prefs, nil
}
