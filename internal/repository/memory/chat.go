package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"real_estate/internal/domain"
	apperrors "real_estate/pkg/errors"
)

type chatRepository struct {
	s *store
}

func (r *chatRepository) FindRoomByPair(ctx context.Context, a, b uuid.UUID) (*domain.ChatRoom, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	key := domain.PairKey(a, b)
	var found *domain.ChatRoom
	for _, room := range r.s.rooms {
		if domain.PairKey(room.Participants[0], room.Participants[1]) != key {
			continue
		}
		if found == nil || room.CreatedAt.Before(found.CreatedAt) {
			found = room
		}
	}
	if found == nil {
		return nil, apperrors.ErrRoomNotFound
	}
	return copyRoom(found), nil
}

func (r *chatRepository) CreateRoom(ctx context.Context, room *domain.ChatRoom) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.rooms[room.ID] = copyRoom(room)
	return nil
}

func (r *chatRepository) GetRoom(ctx context.Context, id uuid.UUID) (*domain.ChatRoom, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	room, ok := r.s.rooms[id]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}
	return copyRoom(room), nil
}

func (r *chatRepository) UpdateLastMessage(ctx context.Context, roomID uuid.UUID, body string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	room, ok := r.s.rooms[roomID]
	if !ok {
		return apperrors.ErrRoomNotFound
	}
	room.LastMessage = body
	room.LastUpdated = at
	return nil
}

func (r *chatRepository) ListRoomsForUser(ctx context.Context, userID uuid.UUID) ([]*domain.ChatRoom, error) {
	r.s.mu.RLock()
	rooms := []*domain.ChatRoom{}
	for _, room := range r.s.rooms {
		if room.HasParticipant(userID) {
			rooms = append(rooms, copyRoom(room))
		}
	}
	r.s.mu.RUnlock()

	sort.SliceStable(rooms, func(i, j int) bool {
		return rooms[i].LastUpdated.After(rooms[j].LastUpdated)
	})
	return rooms, nil
}

func (r *chatRepository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.rooms[msg.ChatRoomID]; !ok {
		return apperrors.ErrRoomNotFound
	}
	c := *msg
	r.s.messages[msg.ChatRoomID] = append(r.s.messages[msg.ChatRoomID], &c)
	return nil
}

func (r *chatRepository) ListMessages(ctx context.Context, roomID uuid.UUID) ([]*domain.Message, error) {
	r.s.mu.RLock()
	messages := make([]*domain.Message, 0, len(r.s.messages[roomID]))
	for _, m := range r.s.messages[roomID] {
		c := *m
		messages = append(messages, &c)
	}
	r.s.mu.RUnlock()

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
	return messages, nil
}
