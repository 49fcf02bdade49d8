package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmynk/yatube/internal/apperrors"
	"github.com/mmynk/yatube/internal/models"
)

func TestCanEditPost(t *testing.T) {
	author := &models.User{ID: "author"}
	other := &models.User{ID: "other"}
	post := &models.Post{ID: 1, AuthorID: author.ID}

	assert.NoError(t, CanEditPost(author, post))
	assert.ErrorIs(t, CanEditPost(other, post), apperrors.ErrForbidden)
	assert.ErrorIs(t, CanEditPost(nil, post), apperrors.ErrUnauthenticated)
}

func TestRequireIdentity(t *testing.T) {
	assert.NoError(t, RequireIdentity(&models.User{ID: "u"}))
	assert.ErrorIs(t, RequireIdentity(nil), apperrors.ErrUnauthenticated)
}
