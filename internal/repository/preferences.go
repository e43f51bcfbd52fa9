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

type PreferencesRepository interface {
	// Upsert stores p as the user's only preferences and reports whether a
	// new row was created.
	Upsert(ctx context.Context, p *domain.Preferences) (bool, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (*domain.Preferences, error)
	List(ctx context.Context) ([]*domain.Preferences, error)
}

type preferencesRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewPreferencesRepository(db *pgxpool.Pool, log logger.Logger) PreferencesRepository {
	return &preferencesRepository{db: db, log: log}
}

const preferencesColumns = `id, user_id, listing_type, property_types, preferred_cities, ` +
	`min_price, max_price, min_size, max_size, unit, bedrooms, bathrooms, ` +
	`furnished, parking, offer_only, created_at, updated_at`

func scanPreferences(row pgx.Row) (*domain.Preferences, error) {
	p := &domain.Preferences{}
	err := row.Scan(
		&p.ID, &p.UserID, &p.ListingType, &p.PropertyTypes, &p.PreferredCities,
		&p.MinPrice, &p.MaxPrice, &p.MinSize, &p.MaxSize, &p.Unit, &p.Bedrooms, &p.Bathrooms,
		&p.Furnished, &p.Parking, &p.OfferOnly, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *preferencesRepository) Upsert(ctx context.Context, p *domain.Preferences) (bool, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()

	// xmax = 0 only for a freshly inserted row.
	query := `
		INSERT INTO preferences (` + preferencesColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16)
		ON CONFLICT (user_id) DO UPDATE SET
			listing_type = EXCLUDED.listing_type,
			property_types = EXCLUDED.property_types,
			preferred_cities = EXCLUDED.preferred_cities,
			min_price = EXCLUDED.min_price,
			max_price = EXCLUDED.max_price,
			min_size = EXCLUDED.min_size,
			max_size = EXCLUDED.max_size,
			unit = EXCLUDED.unit,
			bedrooms = EXCLUDED.bedrooms,
			bathrooms = EXCLUDED.bathrooms,
			furnished = EXCLUDED.furnished,
			parking = EXCLUDED.parking,
			offer_only = EXCLUDED.offer_only,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at, updated_at, (xmax = 0)
	`

	var created bool
	err := r.db.QueryRow(ctx, query,
		p.ID, p.UserID, p.ListingType, p.PropertyTypes, p.PreferredCities,
		p.MinPrice, p.MaxPrice, p.MinSize, p.MaxSize, p.Unit, p.Bedrooms, p.Bathrooms,
		p.Furnished, p.Parking, p.OfferOnly, now,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt, &created)

	if err != nil {
		r.log.Error("Failed to upsert preferences", "error", err)
		return false, err
	}
	return created, nil
}

func (r *preferencesRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*domain.Preferences, error) {
	p, err := scanPreferences(r.db.QueryRow(ctx,
		`SELECT `+preferencesColumns+` FROM preferences WHERE user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		r.log.Error("Failed to get preferences", "error", err)
		return nil, err
	}
	return p, nil
}

func (r *preferencesRepository) List(ctx context.Context) ([]*domain.Preferences, error) {
	rows, err := r.db.Query(ctx, `SELECT `+preferencesColumns+` FROM preferences ORDER BY created_at`)
	if err != nil {
		r.log.Error("Failed to list preferences", "error", err)
		return nil, err
	}
	defer rows.Close()

	prefs := []*domain.Preferences{}
	for rows.Next() {
		p, err := scanPreferences(rows)
		if err != nil {
			r.log.Error("Failed to scan preferences", "error", err)
			return nil, err
		}
		prefs = append(prefs, p)
	}
	return prefs, rows.Err()
}
