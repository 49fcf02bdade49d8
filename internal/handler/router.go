package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/mmynk/yatube/internal/middleware"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	Renderer   render.HTMLRender
	Identifier middleware.Identifier
	// Metrics is optional. When set, requests are observed and /metrics is served.
	Metrics *middleware.Metrics
	// MediaRoot is served under MediaPrefix when both are set.
	MediaRoot   string
	MediaPrefix string
}

// NewRouter builds the gin engine with every route of the site.
func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	engine := gin.New()
	engine.HTMLRender = opts.Renderer
	engine.MaxMultipartMemory = 8 << 20

	engine.Use(middleware.Logging())
	if opts.Metrics != nil {
		engine.Use(opts.Metrics.Middleware())
	}
	engine.Use(
		gin.CustomRecovery(h.Recover),
		middleware.OptionalAuth(opts.Identifier, h.cookie.Name),
	)

	engine.GET("/", h.Index)
	engine.GET("/group/:slug/", h.GroupPosts)
	engine.GET("/profile/:username/", h.Profile)
	engine.GET("/posts/:id/", h.PostDetail)

	authed := engine.Group("/", middleware.RequireAuth(LoginPath))
	{
		authed.GET("/create/", h.CreateForm)
		authed.POST("/create/", h.Create)
		authed.GET("/posts/:id/edit/", h.EditForm)
		authed.POST("/posts/:id/edit/", h.Edit)
		authed.POST("/posts/:id/comment/", h.AddComment)
		authed.GET("/follow/", h.FollowIndex)
		authed.GET("/profile/:username/follow/", h.Follow)
		authed.GET("/profile/:username/unfollow/", h.Unfollow)
	}

	auth := engine.Group("/auth")
	{
		auth.GET("/login/", h.LoginForm)
		auth.POST("/login/", h.Login)
		auth.GET("/signup/", h.SignupForm)
		auth.POST("/signup/", h.Signup)
		auth.GET("/logout/", h.Logout)
	}

	if opts.MediaRoot != "" && opts.MediaPrefix != "" {
		engine.Static(opts.MediaPrefix, opts.MediaRoot)
	}

	if opts.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	engine.NoRoute(h.NotFound)

	return engine
}
