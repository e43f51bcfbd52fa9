package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *testServer) startChat(t *testing.T, actor, a, b account) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/chats/start", map[string]string{"userId1": a.ID.String(), "userId2": b.ID.String()}, actor.Token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode(t, w)["id"].(string)
}

func (s *testServer) send(t *testing.T, sender account, roomID, body string) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(t, http.MethodPost, "/api/chats/send", map[string]string{
		"chatRoomId": roomID,
		"senderId":   sender.ID.String(),
		"message":    body,
	}, sender.Token)
}

func TestStartChatIsPairStable(t *testing.T) {
	s := newTestServer(t)
	buyer := s.signup(t, "buyer")
	b := s.broker(t, "agent")

	first := s.startChat(t, buyer, buyer, b)
	assert.Equal(t, first, s.startChat(t, buyer, b, buyer))
	assert.Equal(t, first, s.startChat(t, b, b, buyer))

	outsider := s.signup(t, "outsider")
	w := s.do(t, http.MethodPost, "/api/chats/start", map[string]string{"userId1": buyer.ID.String(), "userId2": b.ID.String()}, outsider.Token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/chats/start", map[string]string{"userId1": "x", "userId2": b.ID.String()}, buyer.Token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMessagesAndRoomPreview(t *testing.T) {
	s := newTestServer(t)
	buyer := s.signup(t, "buyer")
	b := s.broker(t, "agent")
	room := s.startChat(t, buyer, buyer, b)

	w := s.send(t, buyer, room, "Is it available?")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	msg := decode(t, w)
	assert.Equal(t, b.ID.String(), msg["receiverId"])
	assert.Equal(t, false, msg["isRead"])

	time.Sleep(2 * time.Millisecond)
	require.Equal(t, http.StatusCreated, s.send(t, b, room, "Yes").Code)

	w = s.do(t, http.MethodGet, "/api/chats/"+room+"/messages", nil, buyer.Token)
	require.Equal(t, http.StatusOK, w.Code)
	messages := decodeList(t, w)
	require.Len(t, messages, 2)
	assert.Equal(t, "Is it available?", messages[0]["message"])
	assert.Equal(t, "Yes", messages[1]["message"])

	w = s.do(t, http.MethodGet, "/api/chats/my/"+buyer.ID.String(), nil, buyer.Token)
	require.Equal(t, http.StatusOK, w.Code)
	rooms := decodeList(t, w)
	require.Len(t, rooms, 1)
	assert.Equal(t, "Yes", rooms[0]["lastMessage"])
	assert.Len(t, rooms[0]["members"], 2)
}

func TestChatParticipantGates(t *testing.T) {
	s := newTestServer(t)
	buyer := s.signup(t, "buyer")
	b := s.broker(t, "agent")
	outsider := s.signup(t, "outsider")
	room := s.startChat(t, buyer, buyer, b)

	assert.Equal(t, http.StatusUnauthorized, s.send(t, outsider, room, "hi").Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/chats/"+room+"/messages", nil, outsider.Token).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/chats/my/"+buyer.ID.String(), nil, outsider.Token).Code)

	// Sending as someone else is refused.
	w := s.do(t, http.MethodPost, "/api/chats/send", map[string]string{"chatRoomId": room, "senderId": b.ID.String(), "message": "hi"}, buyer.Token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	assert.Equal(t, http.StatusBadRequest, s.send(t, buyer, room, "   ").Code)
}

func TestWebSocketRelay(t *testing.T) {
	s := newTestServer(t)
	buyer := s.signup(t, "buyer")
	b := s.broker(t, "agent")
	room := s.startChat(t, buyer, buyer, b)

	srv := httptest.NewServer(s.router)
	t.Cleanup(srv.Close)
	base := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token="

	_, resp, err := websocket.DefaultDialer.Dial(base+"garbage", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	dial := func(a account) *websocket.Conn {
		conn, _, err := websocket.DefaultDialer.Dial(base+a.Token, nil)
		require.NoError(t, err)
		t.Cleanup(func() { conn.Close() })
		return conn
	}
	join := func(conn *websocket.Conn) {
		require.NoError(t, conn.WriteJSON(map[string]interface{}{"event": "join_room", "data": room}))
	}

	left, right := dial(buyer), dial(b)
	join(left)
	join(right)
	require.Eventually(t, func() bool { return s.hub.RoomSize(room) == 2 }, time.Second, 10*time.Millisecond)

	w := s.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, float64(2), decode(t, w)["relaySessions"])

	payload := map[string]string{"chatRoomId": room, "message": "hello", "senderId": buyer.ID.String()}
	require.NoError(t, left.WriteJSON(map[string]interface{}{"event": "send_message", "data": payload}))

	right.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got struct {
		Event string          `json:"event"`
		Data  json.RawMessage `json:"data"`
	}
	require.NoError(t, right.ReadJSON(&got))
	assert.Equal(t, "receive_message", got.Event)

	var data map[string]string
	require.NoError(t, json.Unmarshal(got.Data, &data))
	assert.Equal(t, payload, data)
}
