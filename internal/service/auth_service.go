package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/mmynk/yatube/internal/apperrors"
	"github.com/mmynk/yatube/internal/auth"
	"github.com/mmynk/yatube/internal/models"
)

// UserLookup resolves a session back to its user.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// SignupForm is a submitted registration form.
type SignupForm struct {
	Username        string `form:"username" validate:"required,max=150,username"`
	Password        string `form:"password1" validate:"required"`
	PasswordConfirm string `form:"password2" validate:"required,eqfield=Password"`
}

// LoginForm is a submitted login form.
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// Session is an authenticated user together with their signed token.
type Session struct {
	User  *models.User
	Token string
}

// AuthService registers users and issues session tokens.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	users         UserLookup
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, users UserLookup, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		users:         users,
		logger:        logger,
	}
}

// Signup creates a new account and logs it in.
func (s *AuthService) Signup(ctx context.Context, form SignupForm) (*Session, error) {
	form.Username = strings.TrimSpace(form.Username)
	s.logger.Info("Signup request", "username", form.Username)

	if verr := validateForm(form); !verr.Empty() {
		return nil, verr
	}

	user, err := s.authenticator.Register(ctx, form.Username, form.Password)
	if err != nil {
		s.logger.Warn("Registration failed", "username", form.Username, "error", err)
		switch {
		case errors.Is(err, auth.ErrUsernameExists):
			return nil, apperrors.NewValidationError().Add("username", msgUsernameTaken)
		case errors.Is(err, auth.ErrWeakPassword):
			return nil, apperrors.NewValidationError().Add("password1", err.Error())
		}
		return nil, err
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "username", user.Username)
	return s.issue(user)
}

// Login verifies credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, form LoginForm) (*Session, error) {
	form.Username = strings.TrimSpace(form.Username)
	s.logger.Info("Login request", "username", form.Username)

	if verr := validateForm(form); !verr.Empty() {
		return nil, verr
	}

	user, err := s.authenticator.Authenticate(ctx, form.Username, form.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		s.logger.Warn("Login failed", "username", form.Username)
		return nil, apperrors.NewValidationError().Add("form", msgBadCredentials)
	}
	if err != nil {
		s.logger.Error("Login lookup failed", "username", form.Username, "error", err)
		return nil, err
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID)
	return s.issue(user)
}

// Identify returns the user a session token belongs to.
// Invalid tokens and deleted users yield ErrUnauthenticated.
func (s *AuthService) Identify(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtManager.Validate(token)
	if err != nil {
		return nil, apperrors.ErrUnauthenticated
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.ErrUnauthenticated
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issue(user *models.User) (*Session, error) {
	token, err := s.jwtManager.Generate(user)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, err
	}
	return &Session{User: user, Token: token}, nil
}
