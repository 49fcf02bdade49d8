package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
)

// CreateFollow adds the edge follower -> author.
// The insert is a single atomic statement; an existing edge is left untouched.
func (s *Store) CreateFollow(ctx context.Context, followerID, authorID string) error {
	query, args, err := s.sb.Insert("follows").
		Columns("follower_id", "author_id", "created_at").
		Values(followerID, authorID, time.Now().UnixNano()).
		Suffix("ON CONFLICT (follower_id, author_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("failed to create follow: %w", err)
	}

	return nil
}

// DeleteFollow removes the edge follower -> author.
func (s *Store) DeleteFollow(ctx context.Context, followerID, authorID string) error {
	query, args, err := s.sb.Delete("follows").
		Where(squirrel.Eq{"follower_id": followerID, "author_id": authorID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	return s.execAffecting(ctx, "follow", query, args)
}

// IsFollowing reports whether the edge follower -> author exists.
func (s *Store) IsFollowing(ctx context.Context, followerID, authorID string) (bool, error) {
	query, args, err := s.sb.Select("1").
		From("follows").
		Where(squirrel.Eq{"follower_id": followerID, "author_id": authorID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	var one int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return true, nil
}

// CountFollows returns the total number of follow edges.
func (s *Store) CountFollows(ctx context.Context) (int, error) {
	query, args, err := s.sb.Select("COUNT(*)").From("follows").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build query: %w", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count follows: %w", err)
	}
	return count, nil
}
