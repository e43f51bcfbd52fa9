package domain

import (
	"time"

	"github.com/google/uuid"
)

const DefaultAvatarURL = "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_1280.png"

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Phone        *string   `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Avatar       string    `json:"avatar"`
	IsBroker     bool      `json:"isBroker"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserSummary is the populated form of a user reference.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email,omitempty"`
	Phone    *string   `json:"phone,omitempty"`
	Avatar   string    `json:"avatar"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Phone:    u.Phone,
		Avatar:   u.Avatar,
	}
}

// OwnerSummary is the listing owner shape: no phone.
func (u *User) OwnerSummary() *UserSummary {
	s := u.Summary()
	s.Phone = nil
	return s
}

// ChatSummary is the participant shape shown in chat lists: no contact details.
func (u *User) ChatSummary() *UserSummary {
	return &UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Avatar:   u.Avatar,
	}
}

type UserUpdate struct {
	Username string  `json:"username" form:"username"`
	Email    string  `json:"email" form:"email"`
	Phone    *string `json:"phone" form:"phone"`
	Avatar   *string `json:"avatar" form:"avatar"`
}
