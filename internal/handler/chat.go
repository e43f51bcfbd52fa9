package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"real_estate/internal/domain"
	"real_estate/internal/middleware"
	"real_estate/internal/service"
	apperrors "real_estate/pkg/errors"
	"real_estate/pkg/logger"
)

type ChatHandler struct {
	chatService service.ChatService
	log         logger.Logger
}

func NewChatHandler(chatService service.ChatService, log logger.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		log:         log,
	}
}

type StartChatRequest struct {
	UserID1 string `json:"userId1"`
	UserID2 string `json:"userId2"`
}

func (h *ChatHandler) Start(c *gin.Context) {
	var req StartChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	a, err := parseUUID(req.UserID1, "userId1")
	if err != nil {
		fail(c, err)
		return
	}
	b, err := parseUUID(req.UserID2, "userId2")
	if err != nil {
		fail(c, err)
		return
	}

	actor := middleware.CurrentUser(c).ID
	if actor != a && actor != b {
		fail(c, apperrors.Unauthorized("You can only start your own chats"))
		return
	}

	room, err := h.chatService.StartChat(c.Request.Context(), a, b)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

type SendMessageRequest struct {
	ChatRoomID string `json:"chatRoomId"`
	SenderID   string `json:"senderId"`
	Message    string `json:"message"`
}

func (h *ChatHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	roomID, err := parseUUID(req.ChatRoomID, "chatRoomId")
	if err != nil {
		fail(c, err)
		return
	}
	senderID, err := parseUUID(req.SenderID, "senderId")
	if err != nil {
		fail(c, err)
		return
	}
	if senderID != middleware.CurrentUser(c).ID {
		fail(c, apperrors.Unauthorized("You can only send messages as yourself"))
		return
	}

	if _, err := h.participantRoom(c, roomID); err != nil {
		fail(c, err)
		return
	}

	message, err := h.chatService.SendMessage(c.Request.Context(), roomID, senderID, req.Message)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

func (h *ChatHandler) Messages(c *gin.Context) {
	roomID, ok := paramUUID(c, "chatRoomId")
	if !ok {
		return
	}
	if _, err := h.participantRoom(c, roomID); err != nil {
		fail(c, err)
		return
	}

	messages, err := h.chatService.ListMessages(c.Request.Context(), roomID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

func (h *ChatHandler) MyChats(c *gin.Context) {
	userID, ok := paramUUID(c, "userId")
	if !ok {
		return
	}
	if userID != middleware.CurrentUser(c).ID {
		fail(c, apperrors.Unauthorized("You can only view your own chats"))
		return
	}

	rooms, err := h.chatService.ListRoomsForUser(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// participantRoom loads the room and checks the acting user is in it.
func (h *ChatHandler) participantRoom(c *gin.Context, roomID uuid.UUID) (*domain.ChatRoom, error) {
	room, err := h.chatService.GetRoom(c.Request.Context(), roomID)
	if err != nil {
		return nil, err
	}
	if !room.HasParticipant(middleware.CurrentUser(c).ID) {
		return nil, apperrors.Unauthorized("You are not a participant of this chat")
	}
	return room, nil
}
