package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/mmynk/yatube/internal/apperrors"
	"github.com/mmynk/yatube/internal/models"
)

var postColumns = []string{
	"p.id", "p.text", "p.created_at", "p.author_id", "p.group_id", "p.image",
	"u.username", "u.created_at",
	"g.title", "g.slug", "g.description",
}

// selectPosts joins every post with its author and optional group.
func (s *Store) selectPosts() squirrel.SelectBuilder {
	return s.sb.Select(postColumns...).
		From("posts p").
		Join("users u ON u.id = p.author_id").
		LeftJoin("post_groups g ON g.id = p.group_id")
}

func applyPostFilter(q squirrel.SelectBuilder, filter models.PostFilter) squirrel.SelectBuilder {
	if filter.GroupID != nil {
		q = q.Where(squirrel.Eq{"p.group_id": *filter.GroupID})
	}
	if filter.AuthorID != "" {
		q = q.Where(squirrel.Eq{"p.author_id": filter.AuthorID})
	}
	if filter.FollowerID != "" {
		q = q.Where("p.author_id IN (SELECT f.author_id FROM follows f WHERE f.follower_id = ?)", filter.FollowerID)
	}
	return q
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (*models.Post, error) {
	post := &models.Post{Author: &models.User{}}
	var (
		createdAt       int64
		authorCreatedAt int64
		groupID         sql.NullInt64
		groupTitle      sql.NullString
		groupSlug       sql.NullString
		groupDesc       sql.NullString
	)

	err := row.Scan(
		&post.ID,
		&post.Text,
		&createdAt,
		&post.AuthorID,
		&groupID,
		&post.Image,
		&post.Author.Username,
		&authorCreatedAt,
		&groupTitle,
		&groupSlug,
		&groupDesc,
	)
	if err != nil {
		return nil, err
	}

	post.CreatedAt = time.Unix(0, createdAt)
	post.Author.ID = post.AuthorID
	post.Author.CreatedAt = time.Unix(0, authorCreatedAt)

	if groupID.Valid {
		id := groupID.Int64
		post.GroupID = &id
		post.Group = &models.Group{
			ID:          id,
			Title:       groupTitle.String,
			Slug:        groupSlug.String,
			Description: groupDesc.String,
		}
	}

	return post, nil
}

func nullableGroupID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

// CreatePost inserts a new post and sets post.ID.
// CreatedAt is stamped now unless the caller already set it.
func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}

	query, args, err := s.sb.Insert("posts").
		Columns("text", "created_at", "author_id", "group_id", "image").
		Values(post.Text, post.CreatedAt.UnixNano(), post.AuthorID, nullableGroupID(post.GroupID), post.Image).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&post.ID); err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// GetPost retrieves a post with its author and group.
func (s *Store) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	query, args, err := s.selectPosts().Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	post, err := scanPost(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("post %d: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

// UpdatePost stores the editable fields of a post.
func (s *Store) UpdatePost(ctx context.Context, post *models.Post) error {
	query, args, err := s.sb.Update("posts").
		Set("text", post.Text).
		Set("group_id", nullableGroupID(post.GroupID)).
		Set("image", post.Image).
		Where(squirrel.Eq{"id": post.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	return s.execAffecting(ctx, "post", query, args)
}

// CountPosts returns the number of posts matching filter.
func (s *Store) CountPosts(ctx context.Context, filter models.PostFilter) (int, error) {
	query, args, err := applyPostFilter(s.sb.Select("COUNT(*)").From("posts p"), filter).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// ListPosts returns one window of matching posts, newest first.
func (s *Store) ListPosts(ctx context.Context, filter models.PostFilter, limit, offset int) ([]*models.Post, error) {
	q := applyPostFilter(s.selectPosts(), filter).OrderBy("p.created_at DESC", "p.id DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	if offset > 0 {
		q = q.Offset(uint64(offset))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}

	return posts, nil
}
