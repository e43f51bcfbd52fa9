package relay

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"real_estate/pkg/logger"
)

func newLocalHub(t *testing.T) *Hub {
	t.Helper()
	hub, err := NewHub(context.Background(), NewLocalFanout(), logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { hub.Stop() })
	return hub
}

func newTestSession(hub *Hub) *Session {
	s := NewSession(hub, nil, uuid.New())
	hub.Register(s)
	return s
}

func receive(t *testing.T, s *Session) []byte {
	t.Helper()
	select {
	case frame, ok := <-s.send:
		require.True(t, ok, "session queue closed")
		return frame
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame")
		return nil
	}
}

func assertNothing(t *testing.T, s *Session) {
	t.Helper()
	select {
	case frame := <-s.send:
		t.Fatalf("unexpected frame %s", frame)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcastReachesRoomSubscribersOnly(t *testing.T) {
	hub := newLocalHub(t)
	ctx := context.Background()
	a, b, outsider := newTestSession(hub), newTestSession(hub), newTestSession(hub)

	hub.Join(a, "room-1")
	hub.Join(b, "room-1")
	hub.Join(outsider, "room-2")
	assert.Equal(t, 2, hub.RoomSize("room-1"))

	require.NoError(t, hub.Broadcast(ctx, "room-1", []byte("hello")))
	assert.Equal(t, []byte("hello"), receive(t, a))
	assert.Equal(t, []byte("hello"), receive(t, b))
	assertNothing(t, outsider)
}

func TestLeaveAndUnregister(t *testing.T) {
	hub := newLocalHub(t)
	ctx := context.Background()
	a, b := newTestSession(hub), newTestSession(hub)
	hub.Join(a, "room-1")
	hub.Join(a, "room-2")
	hub.Join(b, "room-1")

	hub.Leave(b, "room-1")
	require.NoError(t, hub.Broadcast(ctx, "room-1", []byte("x")))
	receive(t, a)
	assertNothing(t, b)

	assert.Equal(t, 2, hub.SessionCount())
	hub.Unregister(a)
	hub.Unregister(a)
	assert.Equal(t, 1, hub.SessionCount())
	assert.Equal(t, 0, hub.RoomSize("room-1"))
	assert.Equal(t, 0, hub.RoomSize("room-2"))

	_, open := <-a.send
	assert.False(t, open)
}

func TestJoinAfterUnregisterIsIgnored(t *testing.T) {
	hub := newLocalHub(t)
	s := newTestSession(hub)
	hub.Unregister(s)

	hub.Join(s, "room-1")
	assert.Equal(t, 0, hub.RoomSize("room-1"))
}

func TestFullQueueDropsFrame(t *testing.T) {
	hub := newLocalHub(t)
	ctx := context.Background()
	slow, fast := newTestSession(hub), newTestSession(hub)
	hub.Join(slow, "room-1")
	hub.Join(fast, "room-1")

	for i := 0; i < sendBuffer; i++ {
		slow.send <- []byte("filler")
	}

	done := make(chan struct{})
	go func() {
		hub.Broadcast(ctx, "room-1", []byte("late"))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked on a full queue")
	}
	assert.Equal(t, []byte("late"), receive(t, fast))
	assert.Len(t, slow.send, sendBuffer)
}

func TestHandleRejectsBadEnvelopes(t *testing.T) {
	hub := newLocalHub(t)
	s := newTestSession(hub)
	ctx := context.Background()

	assert.ErrorIs(t, s.handle(ctx, &Envelope{Event: "dance"}), ErrUnknownEvent)
	assert.ErrorIs(t, s.handle(ctx, &Envelope{Event: EventJoinRoom, Data: []byte(`""`)}), ErrMissingRoom)
	assert.ErrorIs(t, s.handle(ctx, &Envelope{Event: EventJoinRoom, Data: []byte(`{}`)}), ErrInvalidEnvelope)
	assert.ErrorIs(t, s.handle(ctx, &Envelope{Event: EventSendMessage, Data: []byte(`{"message":"hi"}`)}), ErrMissingRoom)
}

func TestSendMessageIsRebroadcastVerbatim(t *testing.T) {
	hub := newLocalHub(t)
	ctx := context.Background()
	sender := newTestSession(hub)
	hub.Join(sender, "room-1")

	data := []byte(`{"chatRoomId":"room-1","message":"hi","senderId":"u1","extra":1}`)
	require.NoError(t, sender.handle(ctx, &Envelope{Event: EventSendMessage, Data: data}))

	assert.JSONEq(t, `{"event":"receive_message","data":{"chatRoomId":"room-1","message":"hi","senderId":"u1","extra":1}}`, string(receive(t, sender)))
}
