package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"real_estate/internal/middleware"
	"real_estate/internal/service"
	"real_estate/pkg/logger"
)

type BrokerHandler struct {
	brokerService service.BrokerService
	log           logger.Logger
}

func NewBrokerHandler(brokerService service.BrokerService, log logger.Logger) *BrokerHandler {
	return &BrokerHandler{
		brokerService: brokerService,
		log:           log,
	}
}

func (h *BrokerHandler) AllPreferences(c *gin.Context) {
	prefs, err := h.brokerService.AllPreferences(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "preferences": prefs})
}

func (h *BrokerHandler) InterestedUsers(c *gin.Context) {
	brokerID, ok := paramUUID(c, "brokerId")
	if !ok {
		return
	}

	users, err := h.brokerService.InterestedUsers(c.Request.Context(), middleware.CurrentUser(c), brokerID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": users})
}

func (h *BrokerHandler) PreferenceAnalytics(c *gin.Context) {
	analytics, err := h.brokerService.PreferenceAnalytics(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "analytics": analytics})
}
