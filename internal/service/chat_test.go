package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "real_estate/pkg/errors"
)

func TestStartChatIsOrderIndependent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	first, err := env.svc.Chat.StartChat(ctx, a, b)
	require.NoError(t, err)
	assert.Equal(t, "", first.LastMessage)

	again, err := env.svc.Chat.StartChat(ctx, a, b)
	require.NoError(t, err)
	reversed, err := env.svc.Chat.StartChat(ctx, b, a)
	require.NoError(t, err)

	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, first.ID, reversed.ID)
}

func TestSelfChatReceiverIsSender(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a := uuid.New()

	room, err := env.svc.Chat.StartChat(ctx, a, a)
	require.NoError(t, err)

	msg, err := env.svc.Chat.SendMessage(ctx, room.ID, a, "note to self")
	require.NoError(t, err)
	assert.Equal(t, a, msg.ReceiverID)
}

func TestSendMessageOrderingAndPreview(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	room, err := env.svc.Chat.StartChat(ctx, a, b)
	require.NoError(t, err)

	bodies := []string{"hi", "is the flat available?", "yes"}
	senders := []uuid.UUID{a, a, b}
	for i, body := range bodies {
		msg, err := env.svc.Chat.SendMessage(ctx, room.ID, senders[i], body)
		require.NoError(t, err)
		assert.False(t, msg.IsRead)
		if senders[i] == a {
			assert.Equal(t, b, msg.ReceiverID)
		} else {
			assert.Equal(t, a, msg.ReceiverID)
		}
	}

	messages, err := env.svc.Chat.ListMessages(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	for i := 1; i < len(messages); i++ {
		assert.False(t, messages[i].Timestamp.Before(messages[i-1].Timestamp))
	}
	assert.Equal(t, "yes", messages[2].Body)

	got, err := env.svc.Chat.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, "yes", got.LastMessage)
	assert.False(t, got.LastUpdated.Before(messages[2].Timestamp))
}

func TestSendMessageErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Chat.SendMessage(ctx, uuid.New(), uuid.New(), "hello")
	assert.Equal(t, http.StatusNotFound, apperrors.HTTPStatusFromError(err))

	room, err := env.svc.Chat.StartChat(ctx, uuid.New(), uuid.New())
	require.NoError(t, err)
	_, err = env.svc.Chat.SendMessage(ctx, room.ID, room.Participants[0], "   ")
	assert.Equal(t, http.StatusBadRequest, apperrors.HTTPStatusFromError(err))
}

func TestListRoomsForUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	me := env.createUser(t, "me", false)
	broker1 := env.createUser(t, "broker1", true)
	broker2 := env.createUser(t, "broker2", true)

	older, err := env.svc.Chat.StartChat(ctx, me.ID, broker1.ID)
	require.NoError(t, err)
	newer, err := env.svc.Chat.StartChat(ctx, broker2.ID, me.ID)
	require.NoError(t, err)

	time.Sleep(2 * time.Millisecond)
	_, err = env.svc.Chat.SendMessage(ctx, older.ID, me.ID, "bump")
	require.NoError(t, err)

	rooms, err := env.svc.Chat.ListRoomsForUser(ctx, me.ID)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, older.ID, rooms[0].ID)
	assert.Equal(t, newer.ID, rooms[1].ID)

	require.Len(t, rooms[0].Members, 2)
	for _, m := range rooms[0].Members {
		assert.Empty(t, m.Email)
		assert.NotEmpty(t, m.Username)
	}

	none, err := env.svc.Chat.ListRoomsForUser(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}
