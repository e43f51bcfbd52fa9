package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"real_estate/internal/domain"
	"real_estate/internal/repository"
	apperrors "real_estate/pkg/errors"
	"real_estate/pkg/logger"
)

type ChatService interface {
	// StartChat returns the room for the unordered pair {a, b}, creating it
	// when none exists. Lookup and insert are separate steps, so two
	// concurrent calls for a new pair can both create a room.
	StartChat(ctx context.Context, a, b uuid.UUID) (*domain.ChatRoom, error)
	GetRoom(ctx context.Context, roomID uuid.UUID) (*domain.ChatRoom, error)
	// SendMessage stores the message, then updates the room preview. The
	// two writes are not atomic.
	SendMessage(ctx context.Context, roomID, senderID uuid.UUID, body string) (*domain.Message, error)
	ListMessages(ctx context.Context, roomID uuid.UUID) ([]*domain.Message, error)
	ListRoomsForUser(ctx context.Context, userID uuid.UUID) ([]*domain.ChatRoom, error)
}

type chatService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
	log      logger.Logger
}

func NewChatService(chatRepo repository.ChatRepository, userRepo repository.UserRepository, log logger.Logger) ChatService {
	return &chatService{
		chatRepo: chatRepo,
		userRepo: userRepo,
		log:      log,
	}
}

func (s *chatService) StartChat(ctx context.Context, a, b uuid.UUID) (*domain.ChatRoom, error) {
	room, err := s.chatRepo.FindRoomByPair(ctx, a, b)
	if err == nil {
		return room, nil
	}
	if !errors.Is(err, apperrors.ErrRoomNotFound) {
		return nil, err
	}

	now := time.Now()
	room = &domain.ChatRoom{
		ID:           uuid.New(),
		Participants: []uuid.UUID{a, b},
		LastMessage:  "",
		LastUpdated:  now,
		CreatedAt:    now,
	}
	if err := s.chatRepo.CreateRoom(ctx, room); err != nil {
		return nil, err
	}

	s.log.Info("Chat room created", "room_id", room.ID)
	return room, nil
}

func (s *chatService) GetRoom(ctx context.Context, roomID uuid.UUID) (*domain.ChatRoom, error) {
	room, err := s.chatRepo.GetRoom(ctx, roomID)
	if err != nil {
		return nil, notFoundAs(err, "Chatroom not found")
	}
	return room, nil
}

func (s *chatService) SendMessage(ctx context.Context, roomID, senderID uuid.UUID, body string) (*domain.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, apperrors.BadRequest("Message cannot be empty")
	}

	room, err := s.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:         uuid.New(),
		ChatRoomID: room.ID,
		SenderID:   senderID,
		ReceiverID: room.OtherParticipant(senderID),
		Body:       body,
		IsRead:     false,
		Timestamp:  time.Now(),
	}
	if err := s.chatRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	if err := s.chatRepo.UpdateLastMessage(ctx, room.ID, body, msg.Timestamp); err != nil {
		s.log.Error("Message stored but room preview not updated", "room_id", room.ID, "message_id", msg.ID, "error", err)
		return nil, err
	}

	return msg, nil
}

func (s *chatService) ListMessages(ctx context.Context, roomID uuid.UUID) ([]*domain.Message, error) {
	return s.chatRepo.ListMessages(ctx, roomID)
}

func (s *chatService) ListRoomsForUser(ctx context.Context, userID uuid.UUID) ([]*domain.ChatRoom, error) {
	rooms, err := s.chatRepo.ListRoomsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var ids []uuid.UUID
	seen := make(map[uuid.UUID]bool)
	for _, room := range rooms {
		for _, p := range room.Participants {
			if !seen[p] {
				seen[p] = true
				ids = append(ids, p)
			}
		}
	}

	users, err := s.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, room := range rooms {
		room.Members = make([]*domain.UserSummary, 0, len(room.Participants))
		for _, p := range room.Participants {
			if u, ok := users[p]; ok {
				room.Members = append(room.Members, u.ChatSummary())
			}
		}
	}
	return rooms, nil
}
