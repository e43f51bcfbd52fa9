package service

import (
	"errors"
	"net/http"

	apperrors "real_estate/pkg/errors"
)

// notFoundAs replaces a repository not-found sentinel with a client message.
func notFoundAs(err error, message string) error {
	if apperrors.HTTPStatusFromError(err) == http.StatusNotFound {
		var apiErr *apperrors.APIError
		if errors.As(err, &apiErr) {
			return err
		}
		return apperrors.NotFound(message)
	}
	return err
}
