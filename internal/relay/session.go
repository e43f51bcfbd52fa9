package relay

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512 * 1024
	sendBuffer     = 256
)

// Session is one websocket connection. rooms is guarded by the hub mutex.
type Session struct {
	ID     uuid.UUID
	UserID uuid.UUID

	hub   *Hub
	conn  *websocket.Conn
	send  chan []byte
	rooms map[string]bool
}

func NewSession(hub *Hub, conn *websocket.Conn, userID uuid.UUID) *Session {
	return &Session{
		ID:     uuid.New(),
		UserID: userID,
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		rooms:  make(map[string]bool),
	}
}

// Serve registers the session and pumps it until the connection closes.
// It blocks on the read side.
func (h *Hub) Serve(ctx context.Context, conn *websocket.Conn, userID uuid.UUID) {
	s := NewSession(h, conn, userID)
	h.Register(s)
	go s.writePump()
	s.readPump(ctx)
}

func (s *Session) readPump(ctx context.Context) {
	defer func() {
		s.hub.Unregister(s)
		s.conn.Close()
	}()

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.hub.log.Warn("Relay read failed", "session_id", s.ID, "error", err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			s.sendError(ErrInvalidEnvelope)
			continue
		}
		if err := s.handle(ctx, &env); err != nil {
			s.sendError(err)
		}
	}
}

func (s *Session) handle(ctx context.Context, env *Envelope) error {
	switch env.Event {
	case EventJoinRoom:
		room, err := roomFromData(env.Data)
		if err != nil {
			return err
		}
		s.hub.Join(s, room)
		return nil

	case EventLeaveRoom:
		room, err := roomFromData(env.Data)
		if err != nil {
			return err
		}
		s.hub.Leave(s, room)
		return nil

	case EventSendMessage:
		var payload ChatPayload
		if err := json.Unmarshal(env.Data, &payload); err != nil {
			return ErrInvalidEnvelope
		}
		if payload.ChatRoomID == "" {
			return ErrMissingRoom
		}
		frame, err := receiveFrame(env.Data)
		if err != nil {
			return err
		}
		if err := s.hub.Broadcast(ctx, payload.ChatRoomID, frame); err != nil {
			s.hub.log.Error("Relay broadcast failed", "room", payload.ChatRoomID, "error", err)
		}
		return nil

	default:
		return ErrUnknownEvent
	}
}

func (s *Session) sendError(err error) {
	frame, encErr := encode(EventError, map[string]string{"message": err.Error()})
	if encErr != nil {
		return
	}
	s.enqueue(frame)
}

// enqueue is safe against a concurrent Unregister closing the queue.
func (s *Session) enqueue(frame []byte) error {
	s.hub.mu.RLock()
	defer s.hub.mu.RUnlock()

	if _, ok := s.hub.sessions[s.ID]; !ok {
		return nil
	}
	select {
	case s.send <- frame:
		return nil
	default:
		return ErrSessionQueueFull
	}
}

func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
