package relay

import (
	"encoding/json"
	"strings"
)

const (
	EventJoinRoom       = "join_room"
	EventLeaveRoom      = "leave_room"
	EventSendMessage    = "send_message"
	EventReceiveMessage = "receive_message"
	EventError          = "error"
)

// Envelope is the single frame shape in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ChatPayload is what send_message carries. Only ChatRoomID is inspected;
// the raw data is rebroadcast untouched.
type ChatPayload struct {
	ChatRoomID string `json:"chatRoomId"`
	Message    string `json:"message"`
	SenderID   string `json:"senderId"`
}

func encode(event string, data interface{}) ([]byte, error) {
	env := Envelope{Event: event}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		env.Data = raw
	}
	return json.Marshal(env)
}

// receiveFrame wraps already-encoded send_message data as receive_message.
func receiveFrame(data json.RawMessage) ([]byte, error) {
	return json.Marshal(Envelope{Event: EventReceiveMessage, Data: data})
}

// roomFromData accepts the room id as a JSON string.
func roomFromData(data json.RawMessage) (string, error) {
	var room string
	if err := json.Unmarshal(data, &room); err != nil {
		return "", ErrInvalidEnvelope
	}
	room = strings.TrimSpace(room)
	if room == "" {
		return "", ErrMissingRoom
	}
	return room, nil
}
