package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/yatube/internal/apperrors"
	"github.com/mmynk/yatube/internal/models"
)

type stubIdentifier map[string]*models.User

func (s stubIdentifier) Identify(_ context.Context, token string) (*models.User, error) {
	if token == "broken" {
		return nil, errors.New("database is down")
	}
	user, ok := s[token]
	if !ok {
		return nil, apperrors.ErrUnauthenticated
	}
	return user, nil
}

func newEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestOptionalAuth(t *testing.T) {
	leo := &models.User{ID: "u1", Username: "leo"}
	engine := newEngine()
	engine.Use(OptionalAuth(stubIdentifier{"good": leo}, "session"))
	engine.GET("/", func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, user.Username+":"+GetUserID(c.Request.Context()))
	})

	tests := []struct {
		name   string
		cookie string
		want   string
	}{
		{"no cookie", "", "anonymous"},
		{"valid cookie", "good", "leo:u1"},
		{"invalid cookie", "forged", "anonymous"},
		{"lookup failure", "broken", "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "session", Value: tt.cookie})
			}
			rec := httptest.NewRecorder()
			engine.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestRequireAuthRedirectsWithNext(t *testing.T) {
	engine := newEngine()
	engine.GET("/follow/", RequireAuth("/auth/login/"), func(c *gin.Context) {
		c.String(http.StatusOK, "feed")
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/follow/?page=2", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/auth/login/?next=%2Ffollow%2F%3Fpage%3D2", rec.Header().Get("Location"))
}

func TestRequireAuthPassesIdentifiedUser(t *testing.T) {
	engine := newEngine()
	engine.Use(func(c *gin.Context) {
		SetUser(c, &models.User{ID: "u1", Username: "leo"})
		c.Next()
	})
	engine.GET("/create/", RequireAuth("/auth/login/"), func(c *gin.Context) {
		c.String(http.StatusOK, "form")
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/create/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "form", rec.Body.String())
}

func TestLoggingSetsRequestID(t *testing.T) {
	engine := newEngine()
	engine.Use(Logging())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, RequestID(c))
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	id := rec.Header().Get(RequestIDHeader)
	require.NotEmpty(t, id)
	assert.Equal(t, id, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "given")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	assert.Equal(t, "given", rec.Body.String())
}

func TestMetrics(t *testing.T) {
	metrics := NewMetrics()
	engine := newEngine()
	engine.Use(metrics.Middleware())
	engine.GET("/posts/:id/", func(c *gin.Context) { c.Status(http.StatusOK) })
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	for _, path := range []string{"/posts/1/", "/posts/2/", "/nowhere"} {
		engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `yatube_http_requests_total{method="GET",route="/posts/:id/",status="200"} 2`)
	assert.Contains(t, body, `yatube_http_requests_total{method="GET",route="unmatched",status="404"} 1`)
	assert.Contains(t, body, "yatube_http_request_duration_seconds_bucket")
}
