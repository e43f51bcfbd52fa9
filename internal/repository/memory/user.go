package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"real_estate/internal/domain"
	"real_estate/internal/repository"
	apperrors "real_estate/pkg/errors"
)

type userRepository struct {
	s *store
}

// conflict reports the first unique field u collides on, ignoring itself.
func (r *userRepository) conflict(u *domain.User) string {
	for _, other := range r.s.users {
		if other.ID == u.ID {
			continue
		}
		switch {
		case other.Username == u.Username:
			return "username"
		case other.Email == u.Email:
			return "email"
		case u.Phone != nil && other.Phone != nil && *other.Phone == *u.Phone:
			return "phone"
		}
	}
	return ""
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user.Email = normalizeEmail(user.Email)
	if _, ok := r.s.users[user.ID]; ok {
		return &repository.DuplicateError{Field: "id"}
	}
	if field := r.conflict(user); field != "" {
		return &repository.DuplicateError{Field: field}
	}

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.UpdatedAt.IsZero() {
		user.UpdatedAt = now
	}
	r.s.users[user.ID] = copyUser(user)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return copyUser(u), nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make(map[uuid.UUID]*domain.User, len(ids))
	for _, id := range ids {
		if u, ok := r.s.users[id]; ok {
			users[id] = copyUser(u)
		}
	}
	return users, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	email = normalizeEmail(email)
	for _, u := range r.s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *userRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepository) List(ctx context.Context) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]*domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, copyUser(u))
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.users[user.ID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Email = normalizeEmail(user.Email)
	if field := r.conflict(user); field != "" {
		return &repository.DuplicateError{Field: field}
	}

	updated := copyUser(existing)
	updated.Username = user.Username
	updated.Email = user.Email
	updated.Phone = user.Phone
	updated.Avatar = user.Avatar
	updated.UpdatedAt = time.Now()
	r.s.users[user.ID] = updated

	user.UpdatedAt = updated.UpdatedAt
	return nil
}

// Delete mirrors the foreign keys of the SQL schema: listings are detached,
// the saved set and preferences go with the user.
func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.s.users, id)
	delete(r.s.saved, id)
	delete(r.s.preferences, id)
	for _, l := range r.s.listings {
		if l.IsOwnedBy(id) {
			l.UserRef = nil
		}
	}
	return nil
}
