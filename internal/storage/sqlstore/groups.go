package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/mmynk/yatube/internal/apperrors"
	"github.com/mmynk/yatube/internal/models"
)

var groupColumns = []string{"id", "title", "slug", "description"}

// CreateGroup inserts a new group and sets group.ID.
func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	query, args, err := s.sb.Insert("post_groups").
		Columns("title", "slug", "description").
		Values(group.Title, group.Slug, group.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&group.ID); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("group slug %q: %w", group.Slug, apperrors.ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create group: %w", err)
	}

	return nil
}

// GetGroup retrieves a group by its ID.
func (s *Store) GetGroup(ctx context.Context, id int64) (*models.Group, error) {
	return s.getGroup(ctx, squirrel.Eq{"id": id})
}

// GetGroupBySlug retrieves a group by its slug.
func (s *Store) GetGroupBySlug(ctx context.Context, slug string) (*models.Group, error) {
	return s.getGroup(ctx, squirrel.Eq{"slug": slug})
}

func (s *Store) getGroup(ctx context.Context, where squirrel.Eq) (*models.Group, error) {
	query, args, err := s.sb.Select(groupColumns...).From("post_groups").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	group := &models.Group{}
	err = s.db.QueryRowContext(ctx, query, args...).Scan(
		&group.ID,
		&group.Title,
		&group.Slug,
		&group.Description,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group: %w", apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return group, nil
}

// ListGroups returns all groups ordered by title.
func (s *Store) ListGroups(ctx context.Context) ([]*models.Group, error) {
	query, args, err := s.sb.Select(groupColumns...).From("post_groups").OrderBy("title", "id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.Title, &group.Slug, &group.Description); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating groups: %w", err)
	}

	return groups, nil
}

// DeleteGroup removes a group. Its posts remain with group_id cleared.
func (s *Store) DeleteGroup(ctx context.Context, id int64) error {
	query, args, err := s.sb.Delete("post_groups").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	return s.execAffecting(ctx, "group", query, args)
}
