package domain

import (
	"time"

	"github.com/google/uuid"
)

type ChatRoom struct {
	ID           uuid.UUID      `json:"id"`
	Participants []uuid.UUID    `json:"participants"`
	Members      []*UserSummary `json:"members,omitempty"`
	LastMessage  string         `json:"lastMessage"`
	LastUpdated  time.Time      `json:"lastUpdated"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// HasParticipant reports whether userID is one of the room's two members.
func (r *ChatRoom) HasParticipant(userID uuid.UUID) bool {
	for _, p := range r.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// OtherParticipant is the receiver of a message from senderID. In a room
// where both slots hold the same user it is the sender.
func (r *ChatRoom) OtherParticipant(senderID uuid.UUID) uuid.UUID {
	for _, p := range r.Participants {
		if p != senderID {
			return p
		}
	}
	return senderID
}

// PairKey identifies the unordered participant pair.
func PairKey(a, b uuid.UUID) string {
	x, y := a.String(), b.String()
	if y < x {
		x, y = y, x
	}
	return x + ":" + y
}

// Message is immutable once created. IsRead is stored but no operation
// changes it.
type Message struct {
	ID         uuid.UUID `json:"id"`
	ChatRoomID uuid.UUID `json:"chatRoomId"`
	SenderID   uuid.UUID `json:"senderId"`
	ReceiverID uuid.UUID `json:"receiverId"`
	Body       string    `json:"message"`
	IsRead     bool      `json:"isRead"`
	Timestamp  time.Time `json:"timestamp"`
}
