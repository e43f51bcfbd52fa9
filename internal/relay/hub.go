package relay

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"real_estate/pkg/logger"
)

// Hub owns the room subscription table for this instance. Frames are
// published through the Fanout and delivered back to local sessions.
type Hub struct {
	fanout Fanout
	log    logger.Logger

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	rooms    map[string]map[uuid.UUID]*Session
}

// NewHub subscribes to the fan-out before returning, so nothing published
// after construction is missed.
func NewHub(ctx context.Context, fanout Fanout, log logger.Logger) (*Hub, error) {
	h := &Hub{
		fanout:   fanout,
		log:      log,
		sessions: make(map[uuid.UUID]*Session),
		rooms:    make(map[string]map[uuid.UUID]*Session),
	}
	if err := fanout.Subscribe(ctx, h.deliver); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Hub) Register(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sessions[s.ID] = s
	h.log.Debug("Relay session registered", "session_id", s.ID, "user_id", s.UserID)
}

// Unregister drops the session from every room and closes its queue.
// Calling it twice is harmless.
func (h *Hub) Unregister(s *Session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[s.ID]; !ok {
		return
	}
	for room := range s.rooms {
		h.removeFromRoomLocked(s, room)
	}
	delete(h.sessions, s.ID)
	close(s.send)

	h.log.Debug("Relay session unregistered", "session_id", s.ID, "user_id", s.UserID)
}

func (h *Hub) Join(s *Session, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[s.ID]; !ok {
		return
	}
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[uuid.UUID]*Session)
		h.rooms[room] = members
	}
	members[s.ID] = s
	s.rooms[room] = true
}

func (h *Hub) Leave(s *Session, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.removeFromRoomLocked(s, room)
}

func (h *Hub) removeFromRoomLocked(s *Session, room string) {
	delete(s.rooms, room)
	members, ok := h.rooms[room]
	if !ok {
		return
	}
	delete(members, s.ID)
	if len(members) == 0 {
		delete(h.rooms, room)
	}
}

// Broadcast publishes frame to every subscriber of room on every instance.
func (h *Hub) Broadcast(ctx context.Context, room string, frame []byte) error {
	return h.fanout.Publish(ctx, room, frame)
}

// deliver never blocks. A session whose queue is full misses the frame.
func (h *Hub) deliver(room string, frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, s := range h.rooms[room] {
		select {
		case s.send <- frame:
		default:
			h.log.Warn("Relay session queue full, dropping frame", "session_id", s.ID, "room", room)
		}
	}
}

func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

func (h *Hub) RoomSize(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// Stop closes the fan-out and every session queue. Writers then send a
// close frame and drop their connections.
func (h *Hub) Stop() error {
	err := h.fanout.Close()

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, s := range h.sessions {
		close(s.send)
		delete(h.sessions, id)
	}
	h.rooms = make(map[string]map[uuid.UUID]*Session)
	return err
}
