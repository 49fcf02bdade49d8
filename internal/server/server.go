// Package server runs the HTTP listener and shuts it down on signals.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/yatube/internal/config"
)

// Server serves handler and owns the resources that close with it.
type Server struct {
	http     *http.Server
	closers  []io.Closer
	shutdown time.Duration
}

// New wraps handler with the CORS policy and h2c, and applies the configured timeouts.
// closers are closed after the listener stops, in order.
func New(cfg config.ServerConfig, handler http.Handler, closers ...io.Closer) *Server {
	return &Server{
		http: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      Wrap(cfg, handler),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		closers:  closers,
		shutdown: cfg.ShutdownTimeout,
	}
}

// Wrap applies CORS for the allowed origins and enables cleartext HTTP/2.
func Wrap(cfg config.ServerConfig, handler http.Handler) http.Handler {
	if origins := cfg.Origins(); len(origins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins:   origins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowCredentials: true,
		}).Handler(handler)
	}
	return h2c.NewHandler(handler, &http2.Server{})
}

// Run listens until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.http.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", ln.Addr().String())
		serverErrors <- s.http.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			s.closeResources()
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
		slog.Info("Shutdown requested")
	}

	return s.Shutdown(context.Background())
}

// Shutdown stops accepting requests, waits for in-flight ones and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.shutdown)
	defer cancel()

	var errs []error
	if err := s.http.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
		errs = append(errs, err)
	} else {
		slog.Info("HTTP server stopped")
	}

	if err := s.closeResources(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (s *Server) closeResources() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			slog.Error("Failed to close resource", "error", err)
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}
