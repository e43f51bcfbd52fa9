package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"real_estate/internal/domain"
	apperrors "real_estate/pkg/errors"
	"real_estate/pkg/logger"
)

type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Listing, error)
	Update(ctx context.Context, listing *domain.Listing) error
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, filter domain.ListingFilter) ([]*domain.Listing, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Listing, error)
	List(ctx context.Context) ([]*domain.Listing, error)
	ToggleVerified(ctx context.Context, id uuid.UUID) (*domain.Listing, error)
	DetachOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type listingRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewListingRepository(db *pgxpool.Pool, log logger.Logger) ListingRepository {
	return &listingRepository{db: db, log: log}
}

const listingColumns = `id, name, description, property_name, city, state, country, ` +
	`feature_sell, feature_rent, feature_parking, feature_furnished, feature_offer, ` +
	`regular_price, discount_price, bedrooms, bathrooms, type, status, size_value, size_unit, ` +
	`image_urls, user_ref, verified, created_at, updated_at`

func scanListing(row pgx.Row) (*domain.Listing, error) {
	l := &domain.Listing{}
	err := row.Scan(
		&l.ID, &l.Name, &l.Description,
		&l.Address.PropertyName, &l.Address.City, &l.Address.State, &l.Address.Country,
		&l.Features.Sell, &l.Features.Rent, &l.Features.Parking, &l.Features.Furnished, &l.Features.Offer,
		&l.RegularPrice, &l.DiscountPrice, &l.Bedrooms, &l.Bathrooms, &l.Type, &l.Status,
		&l.Size.Value, &l.Size.Unit, &l.ImageURLs, &l.UserRef, &l.Verified, &l.CreatedAt, &l.UpdatedAt,
	)
	if l.ImageURLs == nil {
		l.ImageURLs = []string{}
	}
	return l, err
}

func collectListings(rows pgx.Rows) ([]*domain.Listing, error) {
	defer rows.Close()

	listings := []*domain.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (r *listingRepository) Create(ctx context.Context, l *domain.Listing) error {
	query := `
		INSERT INTO listings (` + listingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		l.ID, l.Name, l.Description,
		l.Address.PropertyName, l.Address.City, l.Address.State, l.Address.Country,
		l.Features.Sell, l.Features.Rent, l.Features.Parking, l.Features.Furnished, l.Features.Offer,
		l.RegularPrice, l.DiscountPrice, l.Bedrooms, l.Bathrooms, l.Type, l.Status,
		l.Size.Value, l.Size.Unit, l.ImageURLs, l.UserRef, l.Verified, l.CreatedAt, l.UpdatedAt,
	).Scan(&l.CreatedAt, &l.UpdatedAt)

	if err != nil {
		r.log.Error("Failed to create listing", "error", err)
		return err
	}

	return nil
}

func (r *listingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`

	l, err := scanListing(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrListingNotFound
		}
		r.log.Error("Failed to get listing by ID", "error", err)
		return nil, err
	}

	return l, nil
}

func (r *listingRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.Listing, error) {
	result := make(map[uuid.UUID]*domain.Listing, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.db.Query(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = ANY($1)`, ids)
	if err != nil {
		r.log.Error("Failed to get listings by IDs", "error", err)
		return nil, err
	}

	listings, err := collectListings(rows)
	if err != nil {
		r.log.Error("Failed to scan listings", "error", err)
		return nil, err
	}
	for _, l := range listings {
		result[l.ID] = l
	}
	return result, nil
}

func (r *listingRepository) Update(ctx context.Context, l *domain.Listing) error {
	query := `
		UPDATE listings
		SET name = $2, description = $3, property_name = $4, city = $5, state = $6, country = $7,
		    feature_sell = $8, feature_rent = $9, feature_parking = $10, feature_furnished = $11, feature_offer = $12,
		    regular_price = $13, discount_price = $14, bedrooms = $15, bathrooms = $16, type = $17, status = $18,
		    size_value = $19, size_unit = $20, image_urls = $21, updated_at = $22
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		l.ID, l.Name, l.Description,
		l.Address.PropertyName, l.Address.City, l.Address.State, l.Address.Country,
		l.Features.Sell, l.Features.Rent, l.Features.Parking, l.Features.Furnished, l.Features.Offer,
		l.RegularPrice, l.DiscountPrice, l.Bedrooms, l.Bathrooms, l.Type, l.Status,
		l.Size.Value, l.Size.Unit, l.ImageURLs, time.Now(),
	).Scan(&l.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrListingNotFound
		}
		r.log.Error("Failed to update listing", "error", err)
		return err
	}

	return nil
}

func (r *listingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete listing", "error", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrListingNotFound
	}
	return nil
}

func (r *listingRepository) Search(ctx context.Context, filter domain.ListingFilter) ([]*domain.Listing, error) {
	query, args := BuildSearchQuery(filter)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to search listings", "error", err)
		return nil, err
	}

	listings, err := collectListings(rows)
	if err != nil {
		r.log.Error("Failed to scan listings", "error", err)
		return nil, err
	}
	return listings, nil
}

func (r *listingRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Listing, error) {
	query := `SELECT ` + listingColumns + ` FROM listings WHERE user_ref = $1 ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		r.log.Error("Failed to list listings by owner", "error", err)
		return nil, err
	}

	listings, err := collectListings(rows)
	if err != nil {
		r.log.Error("Failed to scan listings", "error", err)
		return nil, err
	}
	return listings, nil
}

func (r *listingRepository) List(ctx context.Context) ([]*domain.Listing, error) {
	rows, err := r.db.Query(ctx, `SELECT `+listingColumns+` FROM listings ORDER BY created_at DESC, id DESC`)
	if err != nil {
		r.log.Error("Failed to list listings", "error", err)
		return nil, err
	}

	listings, err := collectListings(rows)
	if err != nil {
		r.log.Error("Failed to scan listings", "error", err)
		return nil, err
	}
	return listings, nil
}

func (r *listingRepository) ToggleVerified(ctx context.Context, id uuid.UUID) (*domain.Listing, error) {
	query := `
		UPDATE listings SET verified = NOT verified, updated_at = now()
		WHERE id = $1
		RETURNING ` + listingColumns

	l, err := scanListing(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrListingNotFound
		}
		r.log.Error("Failed to toggle listing verification", "error", err)
		return nil, err
	}
	return l, nil
}

func (r *listingRepository) DetachOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `UPDATE listings SET user_ref = NULL WHERE user_ref = $1`, ownerID)
	if err != nil {
		r.log.Error("Failed to detach listings from owner", "error", err)
		return 0, err
	}
	return tag.RowsAffected(), nil
}
