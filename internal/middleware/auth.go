package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/yatube/internal/apperrors"
	"github.com/mmynk/yatube/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserIDKey is the request context key for the authenticated user ID.
	UserIDKey contextKey = "user_id"

	// userKey is the gin context key holding the *models.User.
	userKey = "user"
)

// Identifier resolves a session token to a user.
type Identifier interface {
	Identify(ctx context.Context, token string) (*models.User, error)
}

// GetUserID extracts the user ID from the request context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	userID, _ := ctx.Value(UserIDKey).(string)
	return userID
}

// CurrentUser returns the user attached by OptionalAuth, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// SetUser attaches user to the request.
func SetUser(c *gin.Context, user *models.User) {
	c.Set(userKey, user)
	c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), UserIDKey, user.ID))
}

// OptionalAuth identifies the requester from the session cookie if present, but allows
// anonymous requests. Invalid or stale cookies are treated as anonymous.
func OptionalAuth(identifier Identifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		user, err := identifier.Identify(c.Request.Context(), token)
		switch {
		case err == nil:
			SetUser(c, user)
		case errors.Is(err, apperrors.ErrUnauthenticated):
			slog.Debug("Ignoring invalid session cookie", "path", c.Request.URL.Path)
		default:
			slog.Error("Failed to identify session", "path", c.Request.URL.Path, "error", err)
		}

		c.Next()
	}
}

// RequireAuth redirects anonymous requests to loginPath, carrying the original
// request URI in the next query parameter.
func RequireAuth(loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, LoginRedirectURL(loginPath, c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoginRedirectURL builds the login URL that returns to next after signing in.
func LoginRedirectURL(loginPath, next string) string {
	return loginPath + "?" + url.Values{"next": {next}}.Encode()
}
