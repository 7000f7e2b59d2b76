package handlers

import (
	"net/http"

	"github.com/anonto42/ui-crate/backend/internal/models"
	"github.com/anonto42/ui-crate/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the paginated feed procedures
type FeedHandler struct {
	feedService *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// RegisterFeedRoutes registers feed procedures. Both accept POST with a JSON
// body or GET with ?input=<json>.
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	for _, method := range []string{http.MethodGet, http.MethodPost} {
		g.Add(method, "/post.infiniteFeed", h.InfiniteFeed)
		g.Add(method, "/post.infiniteProfileFeed", h.InfiniteProfileFeed)
	}
}

// InfiniteFeed returns one page of the global or following-only feed
func (h *FeedHandler) InfiniteFeed(c echo.Context) error {
	var req models.InfiniteFeedRequest
	if err := bindInput(c, &req); err != nil {
		return err
	}

	page, err := h.feedService.InfiniteFeed(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// InfiniteProfileFeed returns one page of a single author's posts
func (h *FeedHandler) InfiniteProfileFeed(c echo.Context) error {
	var req models.InfiniteProfileFeedRequest
	if err := bindInput(c, &req); err != nil {
		return err
	}

	page, err := h.feedService.InfiniteProfileFeed(c.Request().Context(), req)
	if err != nil {
		return toHTTPError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}
