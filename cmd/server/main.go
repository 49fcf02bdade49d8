package main

import (
	"flag"
	"html/template"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/yatube/internal/auth"
	"github.com/mmynk/yatube/internal/config"
	"github.com/mmynk/yatube/internal/feed"
	"github.com/mmynk/yatube/internal/handler"
	"github.com/mmynk/yatube/internal/media"
	"github.com/mmynk/yatube/internal/middleware"
	"github.com/mmynk/yatube/internal/server"
	"github.com/mmynk/yatube/internal/service"
	"github.com/mmynk/yatube/internal/storage/sqlstore"
	"github.com/mmynk/yatube/pkg/logging"
	"github.com/mmynk/yatube/web"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "path", *configPath, "error", err)
		os.Exit(1)
	}

	logging.SetupWithLevel(logging.ParseLevel(cfg.Logging.Level))
	gin.SetMode(cfg.Server.Mode)

	dialect, err := sqlstore.ParseDialect(cfg.Database.Driver)
	if err != nil {
		slog.Error("Unsupported database driver", "error", err)
		os.Exit(1)
	}

	store, err := sqlstore.Open(dialect, cfg.Database.DSN)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	slog.Info("Storage initialized", "driver", dialect)

	images, err := media.NewLocalStorage(cfg.Media.Root, cfg.Media.URLPrefix)
	if err != nil {
		slog.Error("Failed to initialize media storage", "root", cfg.Media.Root, "error", err)
		os.Exit(1)
	}

	renderer, err := web.NewRenderer(template.FuncMap{"mediaURL": images.URL})
	if err != nil {
		slog.Error("Failed to parse templates", "error", err)
		os.Exit(1)
	}

	jwtManager := auth.NewJWTManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)
	authService := service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store, slog.Default())

	h := handler.New(
		feed.NewBuilder(store, cfg.Feed.PageSize),
		service.NewPostService(store, images),
		service.NewFollowService(store),
		authService,
		store,
		handler.SessionCookie{
			Name:   cfg.Auth.CookieName,
			MaxAge: jwtManager.TokenDuration(),
			Secure: cfg.Auth.SecureCookie,
		},
	)

	router := handler.NewRouter(h, handler.RouterOptions{
		Renderer:    renderer,
		Identifier:  authService,
		Metrics:     middleware.NewMetrics(),
		MediaRoot:   images.Root(),
		MediaPrefix: images.URLPrefix(),
	})

	srv := server.New(cfg.Server, router, store)
	slog.Info("Server starting", "address", cfg.Addr(), "mode", cfg.Server.Mode)
	if err := srv.Run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
