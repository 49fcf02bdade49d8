// Package feed assembles the paginated post listings shown on the site.
package feed

import (
	"context"
	"fmt"

	"github.com/mmynk/yatube/internal/apperrors"
	"github.com/mmynk/yatube/internal/models"
)

// Store is the subset of storage.Store the builder reads from.
type Store interface {
	GetGroupBySlug(ctx context.Context, slug string) (*models.Group, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	CountPosts(ctx context.Context, filter models.PostFilter) (int, error)
	ListPosts(ctx context.Context, filter models.PostFilter, limit, offset int) ([]*models.Post, error)
	ListComments(ctx context.Context, postID int64) ([]*models.Comment, error)
	IsFollowing(ctx context.Context, followerID, authorID string) (bool, error)
}

// GroupFeed is one page of a group's posts.
type GroupFeed struct {
	Group *models.Group
	Page  *models.Page
}

// ProfileFeed is one page of an author's posts.
type ProfileFeed struct {
	Author *models.User
	Page   *models.Page
	// Following reports whether the requester follows Author. False for anonymous requests.
	Following bool
}

// PostDetail is a single post with its comments.
type PostDetail struct {
	Post *models.Post
	// PostCount is the total number of posts by the post's author.
	PostCount int
	Comments  []*models.Comment
}

// Builder produces feeds ordered newest first.
type Builder struct {
	store    Store
	pageSize int
}

// NewBuilder creates a builder serving pages of pageSize posts.
func NewBuilder(store Store, pageSize int) *Builder {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return &Builder{store: store, pageSize: pageSize}
}

// Index returns a page of every post.
func (b *Builder) Index(ctx context.Context, page string) (*models.Page, error) {
	return b.paginate(ctx, models.PostFilter{}, page)
}

// Group returns a page of the posts published in the group with the given slug.
func (b *Builder) Group(ctx context.Context, slug, page string) (*GroupFeed, error) {
	group, err := b.store.GetGroupBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	p, err := b.paginate(ctx, models.PostFilter{GroupID: &group.ID}, page)
	if err != nil {
		return nil, err
	}

	return &GroupFeed{Group: group, Page: p}, nil
}

// Profile returns a page of posts by username. requester may be nil.
func (b *Builder) Profile(ctx context.Context, username string, requester *models.User, page string) (*ProfileFeed, error) {
	author, err := b.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	p, err := b.paginate(ctx, models.PostFilter{AuthorID: author.ID}, page)
	if err != nil {
		return nil, err
	}

	feed := &ProfileFeed{Author: author, Page: p}
	if requester != nil {
		feed.Following, err = b.store.IsFollowing(ctx, requester.ID, author.ID)
		if err != nil {
			return nil, err
		}
	}

	return feed, nil
}

// Follow returns a page of posts written by authors the requester follows.
func (b *Builder) Follow(ctx context.Context, requester *models.User, page string) (*models.Page, error) {
	if requester == nil {
		return nil, apperrors.ErrUnauthenticated
	}
	return b.paginate(ctx, models.PostFilter{FollowerID: requester.ID}, page)
}

// PostDetail returns a post, its author's post count and its comments newest first.
func (b *Builder) PostDetail(ctx context.Context, id int64) (*PostDetail, error) {
	post, err := b.store.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}

	count, err := b.store.CountPosts(ctx, models.PostFilter{AuthorID: post.AuthorID})
	if err != nil {
		return nil, err
	}

	comments, err := b.store.ListComments(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	return &PostDetail{Post: post, PostCount: count, Comments: comments}, nil
}

func (b *Builder) paginate(ctx context.Context, filter models.PostFilter, raw string) (*models.Page, error) {
	count, err := b.store.CountPosts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count feed: %w", err)
	}

	number, numPages := Paginate(count, b.pageSize, raw)

	posts, err := b.store.ListPosts(ctx, filter, b.pageSize, Offset(number, b.pageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to load feed page: %w", err)
	}

	return &models.Page{
		Posts:    posts,
		Number:   number,
		NumPages: numPages,
		Count:    count,
		PageSize: b.pageSize,
	}, nil
}
