// Package handler serves the site's HTML pages over gin.
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/yatube/internal/apperrors"
	"github.com/mmynk/yatube/internal/feed"
	"github.com/mmynk/yatube/internal/middleware"
	"github.com/mmynk/yatube/internal/models"
	"github.com/mmynk/yatube/internal/service"
)

// Template names.
const (
	tmplIndex      = "posts/index.html"
	tmplGroup      = "posts/group_list.html"
	tmplProfile    = "posts/profile.html"
	tmplPostDetail = "posts/post_detail.html"
	tmplPostCreate = "posts/post_create.html"
	tmplFollow     = "posts/follow.html"
	tmplLogin      = "users/login.html"
	tmplSignup     = "users/signup.html"
	tmpl403        = "core/403.html"
	tmpl404        = "core/404.html"
	tmpl500        = "core/500.html"
)

// LoginPath is where anonymous requests for protected pages are sent.
const LoginPath = "/auth/login/"

// GroupLister provides the group choices offered on the post form.
type GroupLister interface {
	ListGroups(ctx context.Context) ([]*models.Group, error)
}

// SessionCookie describes the cookie carrying the session token.
type SessionCookie struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// Handler holds the collaborators behind every page.
type Handler struct {
	feed    *feed.Builder
	posts   *service.PostService
	follows *service.FollowService
	auth    *service.AuthService
	groups  GroupLister
	cookie  SessionCookie
}

// New creates a Handler.
func New(
	builder *feed.Builder,
	posts *service.PostService,
	follows *service.FollowService,
	auth *service.AuthService,
	groups GroupLister,
	cookie SessionCookie,
) *Handler {
	return &Handler{
		feed:    builder,
		posts:   posts,
		follows: follows,
		auth:    auth,
		groups:  groups,
		cookie:  cookie,
	}
}

// render adds the current user to data and renders the named template.
func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["User"] = middleware.CurrentUser(c)
	c.HTML(status, name, data)
}

// postID parses the :id route parameter. Malformed ids are reported as not found.
func postID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, apperrors.ErrNotFound
	}
	return id, nil
}

func (h *Handler) redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}
