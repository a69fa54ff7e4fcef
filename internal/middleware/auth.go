package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/paprooms/server/internal/auth"
	"github.com/paprooms/server/internal/models"
	"github.com/paprooms/server/internal/repository"
)

const userContextKey = "currentUser"

// RequireAuth resolves the bearer token to a user row and stores it on the
// context. The resolved identity is trusted downstream; services never
// re-derive it.
func RequireAuth(tokens *auth.TokenManager, users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized, no token provided")
			}

			claims, err := tokens.Parse(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "user not found or token invalid")
			}

			SetCurrentUser(c, user)
			return next(c)
		}
	}
}

// OptionalAuth attaches the user when a valid token is present and lets the
// request through anonymously otherwise. Booking creation accepts walk-ins.
func OptionalAuth(tokens *auth.TokenManager, users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := bearerToken(c); token != "" {
				if claims, err := tokens.Parse(token); err == nil {
					if user, err := users.FindByID(c.Request().Context(), claims.UserID); err == nil {
						SetCurrentUser(c, user)
					}
				}
			}
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user, or nil for anonymous requests.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}

// SetCurrentUser is used by the auth middleware and by handler tests.
func SetCurrentUser(c echo.Context, user *models.User) {
	c.Set(userContextKey, user)
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
