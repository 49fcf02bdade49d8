package service

import (
	"context"
	"log/slog"

	"github.com/mmynk/yatube/internal/access"
	"github.com/mmynk/yatube/internal/models"
)

// FollowStore is the persistence FollowService needs.
type FollowStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateFollow(ctx context.Context, followerID, authorID string) error
	DeleteFollow(ctx context.Context, followerID, authorID string) error
}

// FollowService manages follow edges between users.
type FollowService struct {
	store FollowStore
}

// NewFollowService creates a FollowService.
func NewFollowService(store FollowStore) *FollowService {
	return &FollowService{store: store}
}

// Follow subscribes requester to username's posts and returns the followed author.
// Following yourself or someone already followed changes nothing.
func (s *FollowService) Follow(ctx context.Context, requester *models.User, username string) (*models.User, error) {
	if err := access.RequireIdentity(requester); err != nil {
		return nil, err
	}

	author, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if author.ID == requester.ID {
		slog.Debug("Self-follow ignored", "user_id", requester.ID)
		return author, nil
	}

	if err := s.store.CreateFollow(ctx, requester.ID, author.ID); err != nil {
		slog.Error("CreateFollow failed", "follower_id", requester.ID, "author_id", author.ID, "error", err)
		return nil, err
	}

	slog.Info("Follow created", "follower_id", requester.ID, "author_id", author.ID)
	return author, nil
}

// Unfollow removes the edge requester -> username.
// It returns ErrNotFound when the user or the edge does not exist.
func (s *FollowService) Unfollow(ctx context.Context, requester *models.User, username string) (*models.User, error) {
	if err := access.RequireIdentity(requester); err != nil {
		return nil, err
	}

	author, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteFollow(ctx, requester.ID, author.ID); err != nil {
		return nil, err
	}

	slog.Info("Follow removed", "follower_id", requester.ID, "author_id", author.ID)
	return author, nil
}
