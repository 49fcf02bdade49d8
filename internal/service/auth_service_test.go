package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/yatube/internal/apperrors"
	"github.com/mmynk/yatube/internal/auth"
	"github.com/mmynk/yatube/internal/models"
)

type memoryUsers struct {
	users map[string]*models.User
	// lookupErr, when set, is returned by username lookups.
	lookupErr error
}

func (m *memoryUsers) CreateUser(_ context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Username == user.Username {
			return apperrors.ErrAlreadyExists
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *memoryUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memoryUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrNotFound
}

func newAuthService(t *testing.T) (*AuthService, *memoryUsers) {
	t.Helper()
	users := &memoryUsers{users: map[string]*models.User{}}
	authenticator := auth.NewPasswordAuthenticator(users).WithCost(bcrypt.MinCost)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewAuthService(authenticator, jwtManager, users, logger), users
}

func TestAuthService(t *testing.T) {
	ctx := context.Background()
	svc, users := newAuthService(t)

	t.Run("signup issues a usable token", func(t *testing.T) {
		session, err := svc.Signup(ctx, SignupForm{Username: "leo", Password: "war-and-peace", PasswordConfirm: "war-and-peace"})
		require.NoError(t, err)
		assert.NotEmpty(t, session.Token)

		user, err := svc.Identify(ctx, session.Token)
		require.NoError(t, err)
		assert.Equal(t, "leo", user.Username)
	})

	t.Run("signup duplicate username", func(t *testing.T) {
		_, err := svc.Signup(ctx, SignupForm{Username: "leo", Password: "another-pass", PasswordConfirm: "another-pass"})
		verr, ok := apperrors.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, msgUsernameTaken, verr.Fields["username"])
	})

	t.Run("signup mismatched passwords", func(t *testing.T) {
		_, err := svc.Signup(ctx, SignupForm{Username: "anna", Password: "one-password", PasswordConfirm: "two-password"})
		verr, ok := apperrors.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, msgPasswordMatch, verr.Fields["password2"])
	})

	t.Run("signup invalid username", func(t *testing.T) {
		_, err := svc.Signup(ctx, SignupForm{Username: "no spaces", Password: "long-enough", PasswordConfirm: "long-enough"})
		verr, ok := apperrors.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, msgInvalidUsername, verr.Fields["username"])
	})

	t.Run("signup weak password", func(t *testing.T) {
		_, err := svc.Signup(ctx, SignupForm{Username: "anna", Password: "short", PasswordConfirm: "short"})
		verr, ok := apperrors.AsValidation(err)
		require.True(t, ok)
		assert.Contains(t, verr.Fields["password1"], "at least 8")
	})

	t.Run("login", func(t *testing.T) {
		session, err := svc.Login(ctx, LoginForm{Username: "leo", Password: "war-and-peace"})
		require.NoError(t, err)
		assert.Equal(t, "leo", session.User.Username)
	})

	t.Run("login wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginForm{Username: "leo", Password: "nope-nope"})
		verr, ok := apperrors.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, msgBadCredentials, verr.Fields["form"])
	})

	t.Run("login storage failure is returned", func(t *testing.T) {
		storageErr := errors.New("connection refused")
		users.lookupErr = storageErr
		defer func() { users.lookupErr = nil }()

		_, err := svc.Login(ctx, LoginForm{Username: "leo", Password: "war-and-peace"})
		require.ErrorIs(t, err, storageErr)
		_, isForm := apperrors.AsValidation(err)
		assert.False(t, isForm)
	})

	t.Run("identify rejects garbage and deleted users", func(t *testing.T) {
		_, err := svc.Identify(ctx, "not-a-token")
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)

		session, err := svc.Login(ctx, LoginForm{Username: "leo", Password: "war-and-peace"})
		require.NoError(t, err)
		delete(users.users, session.User.ID)

		_, err = svc.Identify(ctx, session.Token)
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})
}
