package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/anonto42/ui-crate/backend/internal/services"
	"github.com/anonto42/ui-crate/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps service errors to HTTP errors. Unknown errors are logged
// and reported without detail.
func toHTTPError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	case errors.Is(err, services.ErrPostNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Post not found")
	case errors.Is(err, services.ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	case errors.Is(err, services.ErrSelfFollow), errors.Is(err, services.ErrInvalidContent):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	logger.Log.WithError(err).
		WithField("path", c.Path()).
		Error("procedure failed")
	return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
}

// bindInput decodes procedure input from the JSON body, or from the "input"
// query parameter on GET requests, and validates it.
func bindInput(c echo.Context, req interface{}) error {
	if c.Request().Method == http.MethodGet {
		if raw := c.QueryParam("input"); raw != "" {
			if err := json.Unmarshal([]byte(raw), req); err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid input parameter")
			}
		}
	} else if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return c.Validate(req)
}
