package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/yatube/internal/apperrors"
	"github.com/mmynk/yatube/internal/middleware"
)

// fail maps err to the matching error page.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		h.render(c, http.StatusNotFound, tmpl404, gin.H{"Path": c.Request.URL.Path})
	case errors.Is(err, apperrors.ErrForbidden):
		h.render(c, http.StatusForbidden, tmpl403, nil)
	case errors.Is(err, apperrors.ErrUnauthenticated):
		h.redirect(c, middleware.LoginRedirectURL(LoginPath, c.Request.URL.RequestURI()))
	default:
		_ = c.Error(err)
		slog.Error("Request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"request_id", middleware.RequestID(c),
			"error", err,
		)
		h.render(c, http.StatusInternalServerError, tmpl500, nil)
	}
	c.Abort()
}

// NotFound renders the 404 page for unknown routes.
func (h *Handler) NotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, tmpl404, gin.H{"Path": c.Request.URL.Path})
}

// Recover renders the 500 page after a panic.
func (h *Handler) Recover(c *gin.Context, recovered any) {
	slog.Error("Panic while handling request",
		"path", c.Request.URL.Path,
		"request_id", middleware.RequestID(c),
		"panic", recovered,
	)
	h.render(c, http.StatusInternalServerError, tmpl500, nil)
	c.Abort()
}
