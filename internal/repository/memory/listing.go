package memory

import (
	"bytes"
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"real_estate/internal/domain"
	apperrors "real_estate/pkg/errors"
)

type listingRepository struct {
	s *store
}

func (r *listingRepository) Create(ctx context.Context, l *domain.Listing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	if l.UpdatedAt.IsZero() {
		l.UpdatedAt = now
	}
	r.s.listings[l.ID] = copyListing(l)
	return nil
}

func (r *listingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.listings[id]
	if !ok {
		return nil, apperrors.ErrListingNotFound
	}
	return copyListing(l), nil
}

func (r *listingRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Listing, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	result := make(map[uuid.UUID]*domain.Listing, len(ids))
	for _, id := range ids {
		if l, ok := r.s.listings[id]; ok {
			result[id] = copyListing(l)
		}
	}
	return result, nil
}

func (r *listingRepository) Update(ctx context.Context, l *domain.Listing) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.listings[l.ID]
	if !ok {
		return apperrors.ErrListingNotFound
	}

	updated := copyListing(l)
	updated.UserRef = existing.UserRef
	updated.Verified = existing.Verified
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	r.s.listings[l.ID] = updated

	l.UpdatedAt = updated.UpdatedAt
	return nil
}

func (r *listingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.listings[id]; !ok {
		return apperrors.ErrListingNotFound
	}
	delete(r.s.listings, id)
	for userID, rows := range r.s.saved {
		kept := rows[:0]
		for _, row := range rows {
			if row.listingID != id {
				kept = append(kept, row)
			}
		}
		r.s.saved[userID] = kept
	}
	return nil
}

func (r *listingRepository) Search(ctx context.Context, filter domain.ListingFilter) ([]*domain.Listing, error) {
	filter.Normalize()

	r.s.mu.RLock()
	matched := []*domain.Listing{}
	for _, l := range r.s.listings {
		if filter.Matches(l) {
			matched = append(matched, copyListing(l))
		}
	}
	r.s.mu.RUnlock()

	sortListings(matched, filter.SortField, filter.Ascending)

	if filter.Offset >= len(matched) {
		return []*domain.Listing{}, nil
	}
	end := filter.Offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[filter.Offset:end], nil
}

// sortListings orders like the SQL builder: the chosen column, then id,
// with missing discount prices always last.
func sortListings(listings []*domain.Listing, field string, asc bool) {
	sort.SliceStable(listings, func(i, j int) bool {
		a, b := listings[i], listings[j]
		if field == "discountPrice" && (a.DiscountPrice == nil) != (b.DiscountPrice == nil) {
			return b.DiscountPrice == nil
		}
		c := compareListings(a, b, field)
		if c == 0 {
			c = bytes.Compare(a.ID[:], b.ID[:])
		}
		if asc {
			return c < 0
		}
		return c > 0
	})
}

func compareListings(a, b *domain.Listing, field string) int {
	switch field {
	case "updatedAt":
		return compareTime(a.UpdatedAt, b.UpdatedAt)
	case "regularPrice":
		return compareFloat(a.RegularPrice, b.RegularPrice)
	case "discountPrice":
		if a.DiscountPrice == nil || b.DiscountPrice == nil {
			return 0
		}
		return compareFloat(*a.DiscountPrice, *b.DiscountPrice)
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "bedrooms":
		return a.Bedrooms - b.Bedrooms
	case "bathrooms":
		return a.Bathrooms - b.Bathrooms
	default:
		return compareTime(a.CreatedAt, b.CreatedAt)
	}
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func (r *listingRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Listing, error) {
	r.s.mu.RLock()
	listings := []*domain.Listing{}
	for _, l := range r.s.listings {
		if l.IsOwnedBy(ownerID) {
			listings = append(listings, copyListing(l))
		}
	}
	r.s.mu.RUnlock()

	sortListings(listings, domain.DefaultSortField, false)
	return listings, nil
}

func (r *listingRepository) List(ctx context.Context) ([]*domain.Listing, error) {
	r.s.mu.RLock()
	listings := make([]*domain.Listing, 0, len(r.s.listings))
	for _, l := range r.s.listings {
		listings = append(listings, copyListing(l))
	}
	r.s.mu.RUnlock()

	sortListings(listings, domain.DefaultSortField, false)
	return listings, nil
}

func (r *listingRepository) ToggleVerified(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.listings[id]
	if !ok {
		return nil, apperrors.ErrListingNotFound
	}
	l.Verified = !l.Verified
	l.UpdatedAt = time.Now()
	return copyListing(l), nil
}

func (r *listingRepository) DetachOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for _, l := range r.s.listings {
		if l.IsOwnedBy(ownerID) {
			l.UserRef = nil
			n++
		}
	}
	return n, nil
}
