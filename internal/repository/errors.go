package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	apperrors "real_estate/pkg/errors"
)

// DuplicateError reports a unique-key collision on Field.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	return e.Field + " already exists"
}

func (e *DuplicateError) Unwrap() error {
	return apperrors.ErrConflict
}

const uniqueViolation = "23505"

// uniqueViolationField returns the column behind a unique violation, using
// constraint names of the form <table>_<column>_key or <table>_pkey.
func uniqueViolationField(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return "", false
	}
	switch pgErr.ConstraintName {
	case "users_username_key":
		return "username", true
	case "users_email_key":
		return "email", true
	case "users_phone_key":
		return "phone", true
	case "saved_listings_pkey":
		return "listing", true
	case "preferences_user_id_key":
		return "preferences", true
	default:
		return pgErr.ConstraintName, true
	}
}
