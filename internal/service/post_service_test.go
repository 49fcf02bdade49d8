package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/yatube/internal/apperrors"
	"github.com/mmynk/yatube/internal/media"
	"github.com/mmynk/yatube/internal/models"
)

func TestPostServiceCreate(t *testing.T) {
	ctx := context.Background()
	author := &models.User{ID: "u1", Username: "leo"}

	t.Run("stamps the requester as author", func(t *testing.T) {
		store := &mockStore{}
		store.On("GetGroup", ctx, int64(3)).Return(&models.Group{ID: 3, Slug: "cats"}, nil)
		store.On("CreatePost", ctx, mock.MatchedBy(func(p *models.Post) bool {
			return p.AuthorID == "u1" && p.Text == "hello" && p.GroupID != nil && *p.GroupID == 3
		})).Return(nil)

		post, err := NewPostService(store, nil).Create(ctx, author, PostForm{Text: "  hello  ", Group: "3"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), post.ID)
		store.AssertExpectations(t)
	})

	t.Run("anonymous is refused", func(t *testing.T) {
		_, err := NewPostService(&mockStore{}, nil).Create(ctx, nil, PostForm{Text: "x"})
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("empty text", func(t *testing.T) {
		store := &mockStore{}
		_, err := NewPostService(store, nil).Create(ctx, author, PostForm{Text: "   "})

		verr, ok := apperrors.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, msgRequired, verr.Fields["text"])
		store.AssertNotCalled(t, "CreatePost", mock.Anything, mock.Anything)
	})

	t.Run("text over 400 characters", func(t *testing.T) {
		_, err := NewPostService(&mockStore{}, nil).Create(ctx, author, PostForm{Text: strings.Repeat("я", 401)})

		verr, ok := apperrors.AsValidation(err)
		require.True(t, ok)
		assert.Contains(t, verr.Fields["text"], "at most 400")
	})

	t.Run("400 multibyte characters are accepted", func(t *testing.T) {
		store := &mockStore{}
		store.On("CreatePost", ctx, mock.Anything).Return(nil)

		_, err := NewPostService(store, nil).Create(ctx, author, PostForm{Text: strings.Repeat("я", 400)})
		require.NoError(t, err)
	})

	t.Run("unknown group", func(t *testing.T) {
		store := &mockStore{}
		store.On("GetGroup", ctx, int64(99)).Return(nil, apperrors.ErrNotFound)

		_, err := NewPostService(store, nil).Create(ctx, author, PostForm{Text: "hi", Group: "99"})
		verr, ok := apperrors.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, msgInvalidChoice, verr.Fields["group"])
	})

	t.Run("non numeric group", func(t *testing.T) {
		_, err := NewPostService(&mockStore{}, nil).Create(ctx, author, PostForm{Text: "hi", Group: "cats"})
		verr, ok := apperrors.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, msgInvalidChoice, verr.Fields["group"])
	})

	t.Run("image reference is stored", func(t *testing.T) {
		header := &multipart.FileHeader{Filename: "cat.png"}
		images := &mockImages{}
		images.On("SaveImageFile", header).Return("posts/abc.png", nil)
		store := &mockStore{}
		store.On("CreatePost", ctx, mock.MatchedBy(func(p *models.Post) bool {
			return p.Image == "posts/abc.png"
		})).Return(nil)

		_, err := NewPostService(store, images).Create(ctx, author, PostForm{Text: "cat", Image: header})
		require.NoError(t, err)
		images.AssertExpectations(t)
	})

	t.Run("non image upload is a field error", func(t *testing.T) {
		header := &multipart.FileHeader{Filename: "notes.txt"}
		images := &mockImages{}
		images.On("SaveImageFile", header).Return("", media.ErrNotImage)

		_, err := NewPostService(&mockStore{}, images).Create(ctx, author, PostForm{Text: "cat", Image: header})
		verr, ok := apperrors.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, msgInvalidImage, verr.Fields["image"])
	})
}

func TestPostServiceEdit(t *testing.T) {
	ctx := context.Background()
	author := &models.User{ID: "u1", Username: "leo"}
	other := &models.User{ID: "u2", Username: "fyodor"}
	created := time.Now().Add(-time.Hour)

	existing := func() *models.Post {
		return &models.Post{ID: 7, Text: "old", AuthorID: "u1", CreatedAt: created, Image: "posts/keep.png"}
	}

	t.Run("author edits text and keeps image", func(t *testing.T) {
		store := &mockStore{}
		store.On("GetPost", ctx, int64(7)).Return(existing(), nil)
		store.On("UpdatePost", ctx, mock.MatchedBy(func(p *models.Post) bool {
			return p.Text == "new" && p.AuthorID == "u1" && p.CreatedAt.Equal(created) && p.Image == "posts/keep.png" && p.GroupID == nil
		})).Return(nil)

		_, err := NewPostService(store, nil).Edit(ctx, author, 7, PostForm{Text: "new"})
		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("new image replaces and removes the old one", func(t *testing.T) {
		header := &multipart.FileHeader{Filename: "dog.png"}
		images := &mockImages{}
		images.On("SaveImageFile", header).Return("posts/new.png", nil)
		images.On("Delete", "posts/keep.png").Return(nil)
		store := &mockStore{}
		store.On("GetPost", ctx, int64(7)).Return(existing(), nil)
		store.On("UpdatePost", ctx, mock.MatchedBy(func(p *models.Post) bool {
			return p.Image == "posts/new.png"
		})).Return(nil)

		_, err := NewPostService(store, images).Edit(ctx, author, 7, PostForm{Text: "dog", Image: header})
		require.NoError(t, err)
		images.AssertExpectations(t)
		store.AssertExpectations(t)
	})

	t.Run("failed update keeps the old image", func(t *testing.T) {
		header := &multipart.FileHeader{Filename: "dog.png"}
		images := &mockImages{}
		images.On("SaveImageFile", header).Return("posts/new.png", nil)
		store := &mockStore{}
		store.On("GetPost", ctx, int64(7)).Return(existing(), nil)
		store.On("UpdatePost", ctx, mock.Anything).Return(errors.New("disk full"))

		_, err := NewPostService(store, images).Edit(ctx, author, 7, PostForm{Text: "dog", Image: header})
		require.Error(t, err)
		images.AssertNotCalled(t, "Delete", mock.Anything)
	})

	t.Run("non author is forbidden", func(t *testing.T) {
		store := &mockStore{}
		store.On("GetPost", ctx, int64(7)).Return(existing(), nil)

		_, err := NewPostService(store, nil).Edit(ctx, other, 7, PostForm{Text: "hijack"})
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		store.AssertNotCalled(t, "UpdatePost", mock.Anything, mock.Anything)
	})

	t.Run("missing post", func(t *testing.T) {
		store := &mockStore{}
		store.On("GetPost", ctx, int64(8)).Return(nil, apperrors.ErrNotFound)

		_, err := NewPostService(store, nil).GetForEdit(ctx, author, 8)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("invalid edit leaves post untouched", func(t *testing.T) {
		post := existing()
		store := &mockStore{}
		store.On("GetPost", ctx, int64(7)).Return(post, nil)

		_, err := NewPostService(store, nil).Edit(ctx, author, 7, PostForm{Text: ""})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		assert.Equal(t, "old", post.Text)
		store.AssertNotCalled(t, "UpdatePost", mock.Anything, mock.Anything)
	})
}

func TestPostServiceAddComment(t *testing.T) {
	ctx := context.Background()
	reader := &models.User{ID: "u2", Username: "reader"}

	t.Run("comment is attributed to requester", func(t *testing.T) {
		store := &mockStore{}
		store.On("GetPost", ctx, int64(7)).Return(&models.Post{ID: 7, AuthorID: "u1"}, nil)
		store.On("CreateComment", ctx, mock.MatchedBy(func(c *models.Comment) bool {
			return c.PostID == 7 && c.AuthorID == "u2" && c.Text == "nice"
		})).Return(nil)

		comment, err := NewPostService(store, nil).AddComment(ctx, reader, 7, CommentForm{Text: " nice "})
		require.NoError(t, err)
		assert.Equal(t, "reader", comment.Author.Username)
		store.AssertExpectations(t)
	})

	t.Run("empty comment", func(t *testing.T) {
		store := &mockStore{}
		store.On("GetPost", ctx, int64(7)).Return(&models.Post{ID: 7, AuthorID: "u1"}, nil)

		_, err := NewPostService(store, nil).AddComment(ctx, reader, 7, CommentForm{})
		verr, ok := apperrors.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, msgRequired, verr.Fields["text"])
	})

	t.Run("unknown post", func(t *testing.T) {
		store := &mockStore{}
		store.On("GetPost", ctx, int64(9)).Return(nil, apperrors.ErrNotFound)

		_, err := NewPostService(store, nil).AddComment(ctx, reader, 9, CommentForm{Text: "x"})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
