package service

import (
	"context"
	"mime/multipart"

	"github.com/stretchr/testify/mock"

	"github.com/mmynk/yatube/internal/models"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetGroup(ctx context.Context, id int64) (*models.Group, error) {
	args := m.Called(ctx, id)
	group, _ := args.Get(0).(*models.Group)
	return group, args.Error(1)
}

func (m *mockStore) CreatePost(ctx context.Context, post *models.Post) error {
	args := m.Called(ctx, post)
	if args.Error(0) == nil {
		post.ID = 1
	}
	return args.Error(0)
}

func (m *mockStore) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	args := m.Called(ctx, id)
	post, _ := args.Get(0).(*models.Post)
	return post, args.Error(1)
}

func (m *mockStore) UpdatePost(ctx context.Context, post *models.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *mockStore) CreateComment(ctx context.Context, comment *models.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *mockStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockStore) CreateFollow(ctx context.Context, followerID, authorID string) error {
	return m.Called(ctx, followerID, authorID).Error(0)
}

func (m *mockStore) DeleteFollow(ctx context.Context, followerID, authorID string) error {
	return m.Called(ctx, followerID, authorID).Error(0)
}

type mockImages struct {
	mock.Mock
}

func (m *mockImages) SaveImageFile(fileHeader *multipart.FileHeader) (string, error) {
	args := m.Called(fileHeader)
	return args.String(0), args.Error(1)
}

func (m *mockImages) Delete(ref string) error {
	return m.Called(ref).Error(0)
}
