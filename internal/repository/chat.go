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

type ChatRepository interface {
	FindRoomByPair(ctx context.Context, a, b uuid.UUID) (*domain.ChatRoom, error)
	CreateRoom(ctx context.Context, room *domain.ChatRoom) error
	GetRoom(ctx context.Context, id uuid.UUID) (*domain.ChatRoom, error)
	UpdateLastMessage(ctx context.Context, roomID uuid.UUID, body string, at time.Time) error
	ListRoomsForUser(ctx context.Context, userID uuid.UUID) ([]*domain.ChatRoom, error)
	CreateMessage(ctx context.Context, msg *domain.Message) error
	ListMessages(ctx context.Context, roomID uuid.UUID) ([]*domain.Message, error)
}

type chatRepository struct {
	db  *pgxpool.Pool
	log logger.Logger
}

func NewChatRepository(db *pgxpool.Pool, log logger.Logger) ChatRepository {
	return &chatRepository{db: db, log: log}
}

const roomColumns = `id, participant_a, participant_b, last_message, last_updated, created_at`

func scanRoom(row pgx.Row) (*domain.ChatRoom, error) {
	room := &domain.ChatRoom{Participants: make([]uuid.UUID, 2)}
	err := row.Scan(&room.ID, &room.Participants[0], &room.Participants[1],
		&room.LastMessage, &room.LastUpdated, &room.CreatedAt)
	return room, err
}

func (r *chatRepository) FindRoomByPair(ctx context.Context, a, b uuid.UUID) (*domain.ChatRoom, error) {
	query := `SELECT ` + roomColumns + ` FROM chat_rooms WHERE pair_key = $1 ORDER BY created_at LIMIT 1`

	room, err := scanRoom(r.db.QueryRow(ctx, query, domain.PairKey(a, b)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoomNotFound
		}
		r.log.Error("Failed to find chat room", "error", err)
		return nil, err
	}
	return room, nil
}

func (r *chatRepository) CreateRoom(ctx context.Context, room *domain.ChatRoom) error {
	query := `
		INSERT INTO chat_rooms (id, participant_a, participant_b, pair_key, last_message, last_updated, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		room.ID, room.Participants[0], room.Participants[1],
		domain.PairKey(room.Participants[0], room.Participants[1]),
		room.LastMessage, room.LastUpdated, room.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create chat room", "error", err)
		return err
	}
	return nil
}

func (r *chatRepository) GetRoom(ctx context.Context, id uuid.UUID) (*domain.ChatRoom, error) {
	room, err := scanRoom(r.db.QueryRow(ctx, `SELECT `+roomColumns+` FROM chat_rooms WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoomNotFound
		}
		r.log.Error("Failed to get chat room", "error", err)
		return nil, err
	}
	return room, nil
}

func (r *chatRepository) UpdateLastMessage(ctx context.Context, roomID uuid.UUID, body string, at time.Time) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE chat_rooms SET last_message = $2, last_updated = $3 WHERE id = $1`,
		roomID, body, at,
	)
	if err != nil {
		r.log.Error("Failed to update chat room preview", "error", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRoomNotFound
	}
	return nil
}

func (r *chatRepository) ListRoomsForUser(ctx context.Context, userID uuid.UUID) ([]*domain.ChatRoom, error) {
	query := `
		SELECT ` + roomColumns + ` FROM chat_rooms
		WHERE participant_a = $1 OR participant_b = $1
		ORDER BY last_updated DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to list chat rooms", "error", err)
		return nil, err
	}
	defer rows.Close()

	rooms := []*domain.ChatRoom{}
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			r.log.Error("Failed to scan chat room", "error", err)
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *chatRepository) CreateMessage(ctx context.Context, msg *domain.Message) error {
	query := `
		INSERT INTO messages (id, chat_room_id, sender_id, receiver_id, body, is_read, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		msg.ID, msg.ChatRoomID, msg.SenderID, msg.ReceiverID, msg.Body, msg.IsRead, msg.Timestamp,
	)
	if err != nil {
		r.log.Error("Failed to create message", "error", err)
		return err
	}
	return nil
}

func (r *chatRepository) ListMessages(ctx context.Context, roomID uuid.UUID) ([]*domain.Message, error) {
	query := `
		SELECT id, chat_room_id, sender_id, receiver_id, body, is_read, sent_at
		FROM messages
		WHERE chat_room_id = $1
		ORDER BY sent_at ASC
	`

	rows, err := r.db.Query(ctx, query, roomID)
	if err != nil {
		r.log.Error("Failed to get messages", "error", err)
		return nil, err
	}
	defer rows.Close()

	messages := []*domain.Message{}
	for rows.Next() {
		msg := &domain.Message{}
		err := rows.Scan(&msg.ID, &msg.ChatRoomID, &msg.SenderID, &msg.ReceiverID,
			&msg.Body, &msg.IsRead, &msg.Timestamp)
		if err != nil {
			r.log.Error("Failed to scan message", "error", err)
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}
