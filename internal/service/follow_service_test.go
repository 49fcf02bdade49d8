package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/yatube/internal/apperrors"
	"github.com/mmynk/yatube/internal/models"
)

func TestFollowService(t *testing.T) {
	ctx := context.Background()
	reader := &models.User{ID: "r", Username: "reader"}
	writer := &models.User{ID: "w", Username: "writer"}

	t.Run("follow creates edge", func(t *testing.T) {
		store := &mockStore{}
		store.On("GetUserByUsername", ctx, "writer").Return(writer, nil)
		store.On("CreateFollow", ctx, "r", "w").Return(nil)

		author, err := NewFollowService(store).Follow(ctx, reader, "writer")
		require.NoError(t, err)
		assert.Equal(t, "w", author.ID)
		store.AssertExpectations(t)
	})

	t.Run("self follow is a no-op", func(t *testing.T) {
		store := &mockStore{}
		store.On("GetUserByUsername", ctx, "reader").Return(reader, nil)

		_, err := NewFollowService(store).Follow(ctx, reader, "reader")
		require.NoError(t, err)
		store.AssertNotCalled(t, "CreateFollow", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown author", func(t *testing.T) {
		store := &mockStore{}
		store.On("GetUserByUsername", ctx, "ghost").Return(nil, apperrors.ErrNotFound)

		_, err := NewFollowService(store).Follow(ctx, reader, "ghost")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("anonymous", func(t *testing.T) {
		_, err := NewFollowService(&mockStore{}).Follow(ctx, nil, "writer")
		assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
	})

	t.Run("unfollow absent edge", func(t *testing.T) {
		store := &mockStore{}
		store.On("GetUserByUsername", ctx, "writer").Return(writer, nil)
		store.On("DeleteFollow", ctx, "r", "w").Return(apperrors.ErrNotFound)

		_, err := NewFollowService(store).Unfollow(ctx, reader, "writer")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("unfollow existing edge", func(t *testing.T) {
		store := &mockStore{}
		store.On("GetUserByUsername", ctx, "writer").Return(writer, nil)
		store.On("DeleteFollow", ctx, "r", "w").Return(nil)

		_, err := NewFollowService(store).Unfollow(ctx, reader, "writer")
		require.NoError(t, err)
		store.AssertExpectations(t)
	})
}
