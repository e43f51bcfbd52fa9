package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"real_estate/internal/repository"
	apperrors "real_estate/pkg/errors"
)

type savedRepository struct {
	s *store
}

func (r *savedRepository) Add(ctx context.Context, userID, listingID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, row := range r.s.saved[userID] {
		if row.listingID == listingID {
			return &repository.DuplicateError{Field: "listing"}
		}
	}
	r.s.saved[userID] = append(r.s.saved[userID], savedRow{listingID: listingID, savedAt: time.Now()})
	return nil
}

func (r *savedRepository) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rows := r.s.saved[userID]
	for i, row := range rows {
		if row.listingID == listingID {
			r.s.saved[userID] = append(rows[:i:i], rows[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *savedRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := make([]uuid.UUID, 0, len(r.s.saved[userID]))
	for _, row := range r.s.saved[userID] {
		ids = append(ids, row.listingID)
	}
	return ids, nil
}

func (r *savedRepository) ListByListings(ctx context.Context, listingIDs []uuid.UUID) ([]repository.SavedEntry, error) {
	wanted := make(map[uuid.UUID]bool, len(listingIDs))
	for _, id := range listingIDs {
		wanted[id] = true
	}

	r.s.mu.RLock()
	entries := []repository.SavedEntry{}
	for userID, rows := range r.s.saved {
		for _, row := range rows {
			if wanted[row.listingID] {
				entries = append(entries, repository.SavedEntry{UserID: userID, ListingID: row.listingID, SavedAt: row.savedAt})
			}
		}
	}
	r.s.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].SavedAt.Equal(entries[j].SavedAt) {
			return entries[i].SavedAt.Before(entries[j].SavedAt)
		}
		return entries[i].UserID.String() < entries[j].UserID.String()
	})
	return entries, nil
}
