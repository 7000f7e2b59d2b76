package handlers

import (
	"net/http"

	"github.com/anonto42/ui-crate/backend/internal/middleware"
	"github.com/anonto42/ui-crate/backend/internal/models"
	"github.com/anonto42/ui-crate/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// ProfileHandler serves profile reads and follow toggles
type ProfileHandler struct {
	profileService *services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// RegisterProfileRoutes registers profile procedures
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile.getById", h.GetByID)
	g.POST("/profile.getById", h.GetByID)
	g.POST("/profile.toggleFollow", h.ToggleFollow, middleware.RequireSession())
}

// GetByID responds with the profile summary, or null for unknown ids
func (h *ProfileHandler) GetByID(c echo.Context) error {
	var req models.GetProfileRequest
	if err := bindInput(c, &req); err != nil {
		return err
	}

	summary, found, err := h.profileService.GetByID(c.Request().Context(), req.ID)
	if err != nil {
		return toHTTPError(c, err)
	}
	if !found {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, summary)
}

// ToggleFollow flips whether the caller follows the given user
func (h *ProfileHandler) ToggleFollow(c echo.Context) error {
	var req models.ToggleFollowRequest
	if err := bindInput(c, &req); err != nil {
		return err
	}

	res, err := h.profileService.ToggleFollow(c.Request().Context(), req.UserID)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
