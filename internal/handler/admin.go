package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"real_estate/internal/service"
	"real_estate/pkg/logger"
)

type AdminHandler struct {
	adminService service.AdminService
	log          logger.Logger
}

func NewAdminHandler(adminService service.AdminService, log logger.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		log:          log,
	}
}

func (h *AdminHandler) Listings(c *gin.Context) {
	listings, err := h.adminService.ListListings(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "listings": listings})
}

func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.adminService.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

func (h *AdminHandler) ToggleVerified(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	listing, err := h.adminService.ToggleVerified(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Verified status updated", "listing": listing})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	h.log.Info("User deleted by admin", "user_id", id)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted successfully"})
}

func (h *AdminHandler) DeleteListing(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteListing(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}

	h.log.Info("Listing deleted by admin", "listing_id", id)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Listing deleted successfully"})
}

func (h *AdminHandler) UserListings(c *gin.Context) {
	id, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	listings, err := h.adminService.UserListings(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "listings": listings})
}
