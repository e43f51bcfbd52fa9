package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"real_estate/internal/relay"
)

const serviceName = "estate-marketplace"

type HealthHandler struct {
	hub *relay.Hub
}

func NewHealthHandler(hub *relay.Hub) *HealthHandler {
	return &HealthHandler{hub: hub}
}

func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"service":       serviceName,
		"relaySessions": h.hub.SessionCount(),
	})
}
