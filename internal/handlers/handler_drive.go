package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/receiptly/receipt_management_app/internal/apperrors"
	portssvc "github.com/receiptly/receipt_management_app/internal/core/ports/services"
	"github.com/receiptly/receipt_management_app/internal/middleware"
	"github.com/receiptly/receipt_management_app/internal/platform/config"
)

// driveHandler handles the Google Drive connection flow and status.
type driveHandler struct {
	driveService portssvc.DriveSvcFacade
	frontendURL  string
}

func newDriveHandler(ds portssvc.DriveSvcFacade, frontendURL string) *driveHandler {
	return &driveHandler{driveService: ds, frontendURL: frontendURL}
}

// registerDriveRoutes registers the authenticated Drive routes.
func registerDriveRoutes(rg *gin.RouterGroup, driveService portssvc.DriveSvcFacade) {
	h := newDriveHandler(driveService, "")

	drive := rg.Group("/drive")
	{
		drive.GET("/auth", h.authURL)
		drive.GET("/status", h.status)
	}
}

// registerDriveCallbackRoute registers the public OAuth callback Google's
// consent screen redirects the browser to. It cannot carry a bearer token,
// so it lives outside the authenticated group; the state check ties it to a
// consent flow this process started.
func registerDriveCallbackRoute(r *gin.Engine, cfg *config.Config, driveService portssvc.DriveSvcFacade) {
	h := newDriveHandler(driveService, cfg.FrontendBaseURL)
	r.GET("/drive/callback", h.callback)
}

// authURL godoc
// @Summary Start the Google Drive consent flow
// @Description Returns the consent-screen URL for the frontend to open
// @Tags drive
// @Produce json
// @Success 200 {object} map[string]string "Consent URL"
// @Failure 400 {object} map[string]string "OAuth credentials not configured"
// @Security BearerAuth
// @Router /drive/auth [get]
func (h *driveHandler) authURL(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	url, err := h.driveService.AuthURL()
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to build consent URL", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start Drive connection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// callback handles the OAuth redirect and sends the browser back to the
// settings page with the outcome in the query string.
func (h *driveHandler) callback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	state := c.Query("state")
	code := c.Query("code")
	if code == "" || c.Query("error") != "" {
		logger.Warn("Drive consent denied or missing code", slog.String("error", c.Query("error")))
		c.Redirect(http.StatusFound, h.frontendURL+"/settings?drive=error")
		return
	}

	if err := h.driveService.HandleCallback(c.Request.Context(), state, code); err != nil {
		logger.Error("Drive callback failed", slog.String("error", err.Error()))
		c.Redirect(http.StatusFound, h.frontendURL+"/settings?drive=error")
		return
	}

	c.Redirect(http.StatusFound, h.frontendURL+"/settings?drive=connected")
}

// status godoc
// @Summary Report the Drive connection status
// @Description Verifies the stored tokens with a minimal Drive call
// @Tags drive
// @Produce json
// @Success 200 {object} map[string]bool "Connection flag"
// @Security BearerAuth
// @Router /drive/status [get]
func (h *driveHandler) status(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	connected, err := h.driveService.Status(c.Request.Context())
	if err != nil {
		logger.Error("Failed to check Drive status", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check Drive status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"connected": connected})
}
