// Package access decides whether a requester may perform an action.
package access

import (
	"github.com/mmynk/yatube/internal/apperrors"
	"github.com/mmynk/yatube/internal/models"
)

// RequireIdentity returns ErrUnauthenticated for anonymous requests.
func RequireIdentity(user *models.User) error {
	if user == nil {
		return apperrors.ErrUnauthenticated
	}
	return nil
}

// CanEditPost allows only the author of a post to edit it.
func CanEditPost(user *models.User, post *models.Post) error {
	if err := RequireIdentity(user); err != nil {
		return err
	}
	if post.AuthorID != user.ID {
		return apperrors.ErrForbidden
	}
	return nil
}
