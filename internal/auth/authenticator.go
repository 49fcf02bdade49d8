package auth

import (
	"context"

	"github.com/mmynk/yatube/internal/models"
)

// Authenticator defines how accounts are registered and credentials verified.
// The session layer only depends on this, so the credential scheme can change
// without touching handlers.
type Authenticator interface {
	// Register creates a new account for username with the given credential.
	Register(ctx context.Context, username, credential string) (*models.User, error)

	// Authenticate verifies the credential and returns the matching user.
	Authenticate(ctx context.Context, username, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
