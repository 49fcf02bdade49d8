// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/yatube/internal/models"
)

// Store defines the persistence operations used by the blog.
// Lookups of missing rows return an error wrapping apperrors.ErrNotFound and
// unique constraint violations wrap apperrors.ErrAlreadyExists.
type Store interface {
	// CreateUser persists a new user. user.ID must be set.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	// DeleteUser removes a user together with their posts, comments and follow edges.
	DeleteUser(ctx context.Context, id string) error

	// CreateGroup persists a new group and populates group.ID.
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroup(ctx context.Context, id int64) (*models.Group, error)
	GetGroupBySlug(ctx context.Context, slug string) (*models.Group, error)
	ListGroups(ctx context.Context) ([]*models.Group, error)
	// DeleteGroup removes a group; its posts stay and lose their group.
	DeleteGroup(ctx context.Context, id int64) error

	// CreatePost persists a new post and populates post.ID and post.CreatedAt.
	CreatePost(ctx context.Context, post *models.Post) error
	// GetPost retrieves a post with Author and Group populated.
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	// UpdatePost stores text, group and image of an existing post.
	// Author and creation time are immutable.
	UpdatePost(ctx context.Context, post *models.Post) error
	CountPosts(ctx context.Context, filter models.PostFilter) (int, error)
	// ListPosts returns matching posts newest first with Author and Group populated.
	ListPosts(ctx context.Context, filter models.PostFilter, limit, offset int) ([]*models.Post, error)

	// CreateComment persists a new comment and populates comment.ID and comment.CreatedAt.
	CreateComment(ctx context.Context, comment *models.Comment) error
	// ListComments returns the comments of a post newest first with Author populated.
	ListComments(ctx context.Context, postID int64) ([]*models.Comment, error)

	// CreateFollow adds the edge follower -> author. Creating an existing edge succeeds.
	CreateFollow(ctx context.Context, followerID, authorID string) error
	// DeleteFollow removes the edge follower -> author, or returns ErrNotFound.
	DeleteFollow(ctx context.Context, followerID, authorID string) error
	IsFollowing(ctx context.Context, followerID, authorID string) (bool, error)
	CountFollows(ctx context.Context) (int, error)

	// Close releases any resources held by the store.
	Close() error
}
