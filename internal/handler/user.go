package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"real_estate/internal/domain"
	"real_estate/internal/middleware"
	"real_estate/internal/service"
	apperrors "real_estate/pkg/errors"
	"real_estate/pkg/logger"
)

type UserHandler struct {
	userService  service.UserService
	savedService service.SavedService
	prefsService service.PreferencesService
	log          logger.Logger
}

func NewUserHandler(userService service.UserService, savedService service.SavedService, prefsService service.PreferencesService, log logger.Logger) *UserHandler {
	return &UserHandler{
		userService:  userService,
		savedService: savedService,
		prefsService: prefsService,
		log:          log,
	}
}

// Update accepts JSON or a multipart form with an optional "image" file.
func (h *UserHandler) Update(c *gin.Context) {
	targetID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	var upd domain.UserUpdate
	if err := c.ShouldBind(&upd); err != nil {
		fail(c, bindError(err))
		return
	}

	avatar, err := c.FormFile("image")
	if err != nil && !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		fail(c, apperrors.BadRequest("Invalid image upload"))
		return
	}

	user, err := h.userService.Update(c.Request.Context(), middleware.CurrentUser(c).ID, targetID, upd, avatar)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated successfully", "user": user})
}

type SaveListingRequest struct {
	UserID    string `json:"userId"`
	ListingID string `json:"listingId"`
}

func (r *SaveListingRequest) ids() (userID, listingID uuid.UUID, err error) {
	u, err := parseUUID(r.UserID, "userId")
	if err != nil {
		return
	}
	l, err := parseUUID(r.ListingID, "listingId")
	if err != nil {
		return
	}
	return u, l, nil
}

func (h *UserHandler) SaveListing(c *gin.Context) {
	var req SaveListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	userID, listingID, err := req.ids()
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.savedService.Save(c.Request.Context(), middleware.CurrentUser(c).ID, userID, listingID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *UserHandler) UnsaveListing(c *gin.Context) {
	var req SaveListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, bindError(err))
		return
	}
	userID, listingID, err := req.ids()
	if err != nil {
		fail(c, err)
		return
	}

	if err := h.savedService.Unsave(c.Request.Context(), middleware.CurrentUser(c).ID, userID, listingID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *UserHandler) GetSaved(c *gin.Context) {
	userID, ok := paramUUID(c, "id")
	if !ok {
		return
	}

	saved, err := h.savedService.List(c.Request.Context(), middleware.CurrentUser(c).ID, userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "saved": saved})
}

func (h *UserHandler) SavePreferences(c *gin.Context) {
	var in domain.PreferencesInput
	if err := c.ShouldBindJSON(&in); err != nil {
		fail(c, bindError(err))
		return
	}

	prefs, created, err := h.prefsService.Save(c.Request.Context(), middleware.CurrentUser(c).ID, &in)
	if err != nil {
		fail(c, err)
		return
	}

	message := "Preferences updated successfully"
	if created {
		message = "Preferences saved successfully"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "preferences": prefs})
}

func (h *UserHandler) GetPreferences(c *gin.Context) {
	userID, ok := paramUUID(c, "userId")
	if !ok {
		return
	}

	prefs, err := h.prefsService.Get(c.Request.Context(), middleware.CurrentUser(c).ID, userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Preferences fetched successfully", "preferences": prefs})
}
