package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/interno-studio/interno-backend/internal/app/service"
	apperrors "github.com/interno-studio/interno-backend/internal/errors"
	"github.com/interno-studio/interno-backend/internal/middleware"
)

type PreferenceController struct {
	preferenceService service.PreferenceService
}

func NewPreferenceController(preferenceService service.PreferenceService) *PreferenceController {
	return &PreferenceController{
		preferenceService: preferenceService,
	}
}

type SetThemeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

// Get returns the session's preferences
// GET /api/v1/preferences
func (ctrl *PreferenceController) Get(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	theme, err := ctrl.preferenceService.GetTheme(sessionID)
	if err != nil {
		log.Error("Failed to fetch theme", err, map[string]interface{}{
			"session_id": sessionID,
		})
		apperrors.InternalError(c, "Failed to fetch preferences")
		return
	}

	subscribed, err := ctrl.preferenceService.IsSubscribed(sessionID)
	if err != nil {
		apperrors.InternalError(c, "Failed to fetch preferences")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"theme":                 theme,
		"newsletter_subscribed": subscribed,
	})
}

// SetTheme switches between dark and light
// PUT /api/v1/preferences/theme
func (ctrl *PreferenceController) SetTheme(c *gin.Context) {
	sessionID := middleware.GetSessionID(c)

	var req SetThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Theme is required")
		return
	}

	if err := ctrl.preferenceService.SetTheme(sessionID, req.Theme); err != nil {
		if errors.Is(err, service.ErrInvalidTheme) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Theme must be dark or light")
			return
		}
		apperrors.InternalError(c, "Failed to set theme")
		return
	}

	c.JSON(http.StatusOK, gin.H{"theme": req.Theme})
}

// Subscribe signs the session up for the newsletter
// POST /api/v1/newsletter/subscribe
func (ctrl *PreferenceController) Subscribe(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)

	if err := ctrl.preferenceService.SubscribeNewsletter(sessionID); err != nil {
		log.Error("Failed to subscribe to newsletter", err, map[string]interface{}{
			"session_id": sessionID,
		})
		apperrors.InternalError(c, "Failed to subscribe")
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscribed": true})
}
