package service

import (
	"context"
	"errors"
	"mime/multipart"
	"net/mail"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"real_estate/internal/domain"
	"real_estate/internal/repository"
	apperrors "real_estate/pkg/errors"
	"real_estate/pkg/logger"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

type UserService interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// Update changes the profile of targetID. Empty fields are left alone;
	// an empty phone pointer value clears the phone.
	Update(ctx context.Context, actorID, targetID uuid.UUID, upd domain.UserUpdate, avatar *multipart.FileHeader) (*domain.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	images   ImageStore
	log      logger.Logger
}

func NewUserService(userRepo repository.UserRepository, images ImageStore, log logger.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		images:   images,
		log:      log,
	}
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "User not found")
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, actorID, targetID uuid.UUID, upd domain.UserUpdate, avatar *multipart.FileHeader) (*domain.User, error) {
	if actorID != targetID {
		return nil, apperrors.Unauthorized("Unauthorized user")
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, notFoundAs(err, "User not found")
	}

	if username := strings.TrimSpace(upd.Username); username != "" {
		user.Username = username
	}
	if email := strings.ToLower(strings.TrimSpace(upd.Email)); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, apperrors.BadRequest("Invalid email format")
		}
		user.Email = email
	}
	if upd.Phone != nil {
		phone := strings.TrimSpace(*upd.Phone)
		switch {
		case phone == "":
			user.Phone = nil
		case !phonePattern.MatchString(phone):
			return nil, apperrors.BadRequest("Phone number must be exactly 10 digits")
		default:
			user.Phone = &phone
		}
	}

	if avatar != nil {
		url, err := s.images.Save(ctx, avatar)
		if err != nil {
			return nil, err
		}
		user.Avatar = url
	} else if upd.Avatar != nil && *upd.Avatar != "" {
		user.Avatar = *upd.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, duplicateUserError(err)
	}

	s.log.Info("User profile updated", "user_id", user.ID)
	return user, nil
}
