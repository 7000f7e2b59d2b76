package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/anonto42/ui-crate/backend/internal/session"
	"github.com/anonto42/ui-crate/backend/pkg/logger"
	"github.com/labstack/echo/v4"
)

// ErrInvalidToken is returned by authenticators for rejected tokens.
var ErrInvalidToken = errors.New("invalid token")

// Authenticator resolves a bearer token to a user id.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// SessionMiddleware attaches a session to the request context when a valid
// bearer token is present. Requests without an Authorization header proceed
// anonymously; malformed or invalid tokens are rejected.
func SessionMiddleware(authn Authenticator) echo.MiddlewareFunc {
	log := logger.WithComponent("auth")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return next(c)
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must be in Bearer format")
			}

			ctx := c.Request().Context()
			userID, err := authn.Authenticate(ctx, parts[1])
			if err != nil {
				if !errors.Is(err, ErrInvalidToken) {
					log.WithError(err).Error("token verification failed")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			ctx = session.WithSession(ctx, &session.Session{UserID: userID})
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequireSession rejects anonymous requests.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if session.FromContext(c.Request().Context()) == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
			}
			return next(c)
		}
	}
}
