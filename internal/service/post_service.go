package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/mmynk/yatube/internal/access"
	"github.com/mmynk/yatube/internal/apperrors"
	"github.com/mmynk/yatube/internal/media"
	"github.com/mmynk/yatube/internal/models"
)

// PostStore is the persistence PostService needs.
type PostStore interface {
	GetGroup(ctx context.Context, id int64) (*models.Group, error)
	CreatePost(ctx context.Context, post *models.Post) error
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	CreateComment(ctx context.Context, comment *models.Comment) error
}

// ImageSaver stores uploaded images and removes replaced ones.
type ImageSaver interface {
	SaveImageFile(fileHeader *multipart.FileHeader) (string, error)
	Delete(ref string) error
}

// PostForm is a submitted create or edit form.
// It carries no author; the requester is always the author.
type PostForm struct {
	Text  string                `form:"text" validate:"required,max=400"`
	Group string                `form:"group"`
	Image *multipart.FileHeader `form:"-" validate:"-"`
}

// CommentForm is a submitted comment.
type CommentForm struct {
	Text string `form:"text" validate:"required"`
}

// PostService handles authoring posts and comments.
type PostService struct {
	store  PostStore
	images ImageSaver
}

// NewPostService creates a PostService. images may be nil when uploads are disabled.
func NewPostService(store PostStore, images ImageSaver) *PostService {
	return &PostService{store: store, images: images}
}

// Create validates form and stores a new post written by author.
func (s *PostService) Create(ctx context.Context, author *models.User, form PostForm) (*models.Post, error) {
	if err := access.RequireIdentity(author); err != nil {
		return nil, err
	}

	post := &models.Post{AuthorID: author.ID, Author: author}
	if err := s.apply(ctx, post, form); err != nil {
		return nil, err
	}

	if err := s.store.CreatePost(ctx, post); err != nil {
		slog.Error("CreatePost failed", "author_id", author.ID, "error", err)
		return nil, err
	}

	slog.Info("Post created", "post_id", post.ID, "author_id", author.ID)
	return post, nil
}

// GetForEdit loads a post the editor is allowed to change.
func (s *PostService) GetForEdit(ctx context.Context, editor *models.User, postID int64) (*models.Post, error) {
	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := access.CanEditPost(editor, post); err != nil {
		if errors.Is(err, apperrors.ErrForbidden) {
			slog.Warn("Edit refused", "post_id", postID, "user_id", editor.ID, "author_id", post.AuthorID)
		}
		return nil, err
	}

	return post, nil
}

// Edit validates form and updates the post. Only the author may edit.
// Author and creation time never change. A replaced image is removed from media storage.
func (s *PostService) Edit(ctx context.Context, editor *models.User, postID int64, form PostForm) (*models.Post, error) {
	post, err := s.GetForEdit(ctx, editor, postID)
	if err != nil {
		return nil, err
	}

	oldImage := post.Image
	if err := s.apply(ctx, post, form); err != nil {
		return nil, err
	}

	if err := s.store.UpdatePost(ctx, post); err != nil {
		slog.Error("UpdatePost failed", "post_id", postID, "error", err)
		return nil, err
	}

	if oldImage != "" && oldImage != post.Image && s.images != nil {
		if err := s.images.Delete(oldImage); err != nil {
			slog.Warn("Failed to remove replaced image", "post_id", post.ID, "ref", oldImage, "error", err)
		}
	}

	slog.Info("Post updated", "post_id", post.ID)
	return post, nil
}

// AddComment attaches a comment by author to the post.
func (s *PostService) AddComment(ctx context.Context, author *models.User, postID int64, form CommentForm) (*models.Comment, error) {
	if err := access.RequireIdentity(author); err != nil {
		return nil, err
	}

	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	form.Text = strings.TrimSpace(form.Text)
	if verr := validateForm(form); !verr.Empty() {
		return nil, verr
	}

	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: author.ID,
		Text:     form.Text,
		Author:   author,
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		slog.Error("CreateComment failed", "post_id", postID, "error", err)
		return nil, err
	}

	slog.Info("Comment added", "post_id", post.ID, "comment_id", comment.ID, "author_id", author.ID)
	return comment, nil
}

// apply validates form and copies it onto post. post is untouched on failure.
func (s *PostService) apply(ctx context.Context, post *models.Post, form PostForm) error {
	form.Text = strings.TrimSpace(form.Text)
	verr := validateForm(form)

	groupID, err := s.resolveGroup(ctx, form.Group)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		verr.Add("group", msgInvalidChoice)
	}

	if !verr.Empty() {
		return verr
	}

	image := post.Image
	if form.Image != nil && s.images != nil {
		image, err = s.images.SaveImageFile(form.Image)
		if errors.Is(err, media.ErrNotImage) || errors.Is(err, media.ErrImageTooLarge) {
			return verr.Add("image", msgInvalidImage)
		}
		if err != nil {
			return fmt.Errorf("failed to store image: %w", err)
		}
	}

	post.Text = form.Text
	post.GroupID = groupID
	post.Image = image
	return nil
}

// resolveGroup maps the submitted group choice to an id. Empty means no group.
func (s *PostService) resolveGroup(ctx context.Context, raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}

	group, err := s.store.GetGroup(ctx, id)
	if err != nil {
		return nil, err
	}
	return &group.ID, nil
}
