package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	apperrors "real_estate/pkg/errors"
)

// fail hands err to middleware.ErrorHandler, which renders it.
func fail(c *gin.Context, err error) {
	c.Error(err)
}

func paramUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		fail(c, apperrors.BadRequest("Invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

func parseUUID(value, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, apperrors.BadRequest("Invalid " + field)
	}
	return id, nil
}

// bindError turns a binding failure into a 400 naming the first bad field.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if fe.Tag() == "required" {
			return apperrors.BadRequest(fmt.Sprintf("%s is required", fe.Field()))
		}
		return apperrors.BadRequest(fmt.Sprintf("%s is invalid", fe.Field()))
	}
	return apperrors.BadRequest("Invalid request body")
}
