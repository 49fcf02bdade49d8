package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/mmynk/yatube/internal/models"
)

// CreateComment inserts a new comment and sets comment.ID.
func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	query, args, err := s.sb.Insert("comments").
		Columns("post_id", "author_id", "text", "created_at").
		Values(comment.PostID, comment.AuthorID, comment.Text, comment.CreatedAt.UnixNano()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&comment.ID); err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// ListComments returns the comments on a post, newest first.
func (s *Store) ListComments(ctx context.Context, postID int64) ([]*models.Comment, error) {
	query, args, err := s.sb.Select(
		"c.id", "c.post_id", "c.author_id", "c.text", "c.created_at",
		"u.username", "u.created_at",
	).
		From("comments c").
		Join("users u ON u.id = c.author_id").
		Where(squirrel.Eq{"c.post_id": postID}).
		OrderBy("c.created_at DESC", "c.id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		comment := &models.Comment{Author: &models.User{}}
		var createdAt, authorCreatedAt int64
		if err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.AuthorID,
			&comment.Text,
			&createdAt,
			&comment.Author.Username,
			&authorCreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comment.CreatedAt = time.Unix(0, createdAt)
		comment.Author.ID = comment.AuthorID
		comment.Author.CreatedAt = time.Unix(0, authorCreatedAt)
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return comments, nil
}
