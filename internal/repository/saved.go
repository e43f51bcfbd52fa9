package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	apperrors "real_estate/pkg/errors"
	"real_estate/pkg/logger"
)

// SavedEntry is one (user, listing) pair from a user's saved set.
type SavedEntry struct {
	UserID    uuid.UUID
	ListingID uuid.UUID
	SavedAt   time.Time
}

type SavedRepository interface {
	Add(ctx context.Context, userID, listingID uuid.UUID) error
	Remove(ctx context.Context, userID, listingID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	ListByListings(ctx context.Context, listingIDs []uuid.UUID) ([]SavedEntry, error)
}

type savedRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewSavedRepository(db *pgxpool.Pool, log logger.Logger) SavedRepository {
	return &savedRepository{db: db, log: log}
}

func (r *savedRepository) Add(ctx context.Context, userID, listingID uuid.UUID) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO saved_listings (user_id, listing_id, saved_at) VALUES ($1, $2, $3)`,
		userID, listingID, time.Now(),
	)
	if err != nil {
		if field, ok := uniqueViolationField(err); ok {
			return &DuplicateError{Field: field}
		}
		r.log.Error("Failed to save listing", "error", err)
		return err
	}
	return nil
}

func (r *savedRepository) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM saved_listings WHERE user_id = $1 AND listing_id = $2`,
		userID, listingID,
	)
	if err != nil {
		r.log.Error("Failed to unsave listing", "error", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *savedRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT listing_id FROM saved_listings WHERE user_id = $1 ORDER BY saved_at, listing_id`,
		userID,
	)
	if err != nil {
		r.log.Error("Failed to list saved listings", "error", err)
		return nil, err
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			r.log.Error("Failed to scan saved listing", "error", err)
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *savedRepository) ListByListings(ctx context.Context, listingIDs []uuid.UUID) ([]SavedEntry, error) {
	entries := []SavedEntry{}
	if len(listingIDs) == 0 {
		return entries, nil
	}

	rows, err := r.db.Query(ctx,
		`SELECT user_id, listing_id, saved_at FROM saved_listings WHERE listing_id = ANY($1) ORDER BY saved_at, user_id`,
		listingIDs,
	)
	if err != nil {
		r.log.Error("Failed to list savers of listings", "error", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var e SavedEntry
		if err := rows.Scan(&e.UserID, &e.ListingID, &e.SavedAt); err != nil {
			r.log.Error("Failed to scan saved entry", "error", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
