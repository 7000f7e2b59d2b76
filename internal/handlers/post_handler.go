package handlers

import (
	"net/http"

	"github.com/anonto42/ui-crate/backend/internal/middleware"
	"github.com/anonto42/ui-crate/backend/internal/models"
	"github.com/anonto42/ui-crate/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler serves the post mutations
type PostHandler struct {
	postService *services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postService *services.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// RegisterPostRoutes registers post mutations; both require a session.
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/post.create", h.CreatePost, middleware.RequireSession())
	g.POST("/post.toggleLike", h.ToggleLike, middleware.RequireSession())
}

// CreatePost creates a post owned by the caller
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := bindInput(c, &req); err != nil {
		return err
	}

	post, err := h.postService.Create(c.Request().Context(), req.Content)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, post)
}

// ToggleLike flips the caller's like on a post
func (h *PostHandler) ToggleLike(c echo.Context) error {
	var req models.ToggleLikeRequest
	if err := bindInput(c, &req); err != nil {
		return err
	}

	res, err := h.postService.ToggleLike(c.Request().Context(), req.ID)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
