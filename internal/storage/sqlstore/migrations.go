package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type migration struct {
	version  string
	sqlite   []string
	postgres []string
}

// migrations are applied in order and recorded in schema_migrations.
// Referential rules live here: deleting a user cascades to posts, comments and
// follows; deleting a post cascades to comments; deleting a group nulls posts.group_id.
var migrations = []migration{
	{
		version: "0001_initial",
		sqlite: []string{
			`CREATE TABLE IF NOT EXISTS users (
				id TEXT PRIMARY KEY,
				username TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				created_at INTEGER NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS post_groups (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				title TEXT NOT NULL,
				slug TEXT NOT NULL UNIQUE,
				description TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS posts (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				text TEXT NOT NULL,
				created_at INTEGER NOT NULL,
				author_id TEXT NOT NULL,
				group_id INTEGER,
				image TEXT NOT NULL DEFAULT '',
				FOREIGN KEY (author_id) REFERENCES users(id) ON DELETE CASCADE,
				FOREIGN KEY (group_id) REFERENCES post_groups(id) ON DELETE SET NULL
			)`,
			`CREATE TABLE IF NOT EXISTS comments (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				post_id INTEGER NOT NULL,
				author_id TEXT NOT NULL,
				text TEXT NOT NULL,
				created_at INTEGER NOT NULL,
				FOREIGN KEY (post_id) REFERENCES posts(id) ON DELETE CASCADE,
				FOREIGN KEY (author_id) REFERENCES users(id) ON DELETE CASCADE
			)`,
			`CREATE TABLE IF NOT EXISTS follows (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				follower_id TEXT NOT NULL,
				author_id TEXT NOT NULL,
				created_at INTEGER NOT NULL,
				CONSTRAINT unique_follow UNIQUE (follower_id, author_id),
				FOREIGN KEY (follower_id) REFERENCES users(id) ON DELETE CASCADE,
				FOREIGN KEY (author_id) REFERENCES users(id) ON DELETE CASCADE
			)`,
			`CREATE INDEX IF NOT EXISTS idx_posts_created ON posts(created_at DESC, id DESC)`,
			`CREATE INDEX IF NOT EXISTS idx_posts_author_id ON posts(author_id)`,
			`CREATE INDEX IF NOT EXISTS idx_posts_group_id ON posts(group_id)`,
			`CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id)`,
			`CREATE INDEX IF NOT EXISTS idx_follows_author_id ON follows(author_id)`,
		},
		postgres: []string{
			`CREATE TABLE IF NOT EXISTS users (
				id TEXT PRIMARY KEY,
				username TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				created_at BIGINT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS post_groups (
				id BIGSERIAL PRIMARY KEY,
				title VARCHAR(200) NOT NULL,
				slug VARCHAR(255) NOT NULL UNIQUE,
				description TEXT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS posts (
				id BIGSERIAL PRIMARY KEY,
				text TEXT NOT NULL,
				created_at BIGINT NOT NULL,
				author_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				group_id BIGINT REFERENCES post_groups(id) ON DELETE SET NULL,
				image TEXT NOT NULL DEFAULT ''
			)`,
			`CREATE TABLE IF NOT EXISTS comments (
				id BIGSERIAL PRIMARY KEY,
				post_id BIGINT NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
				author_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				text TEXT NOT NULL,
				created_at BIGINT NOT NULL
			)`,
			`CREATE TABLE IF NOT EXISTS follows (
				id BIGSERIAL PRIMARY KEY,
				follower_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				author_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				created_at BIGINT NOT NULL,
				CONSTRAINT unique_follow UNIQUE (follower_id, author_id)
			)`,
			`CREATE INDEX IF NOT EXISTS idx_posts_created ON posts(created_at DESC, id DESC)`,
			`CREATE INDEX IF NOT EXISTS idx_posts_author_id ON posts(author_id)`,
			`CREATE INDEX IF NOT EXISTS idx_posts_group_id ON posts(group_id)`,
			`CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments(post_id)`,
			`CREATE INDEX IF NOT EXISTS idx_follows_author_id ON follows(author_id)`,
		},
	},
}

// migrate applies every migration not yet recorded in schema_migrations.
func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at BIGINT NOT NULL
	)`); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}

	for _, m := range migrations {
		applied, err := s.isMigrationApplied(ctx, m.version)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		if err := s.applyMigration(ctx, m); err != nil {
			return fmt.Errorf("migration %s: %w", m.version, err)
		}
		slog.Info("sqlstore: migration applied", "version", m.version, "driver", s.dialect)
	}

	return nil
}

func (s *Store) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	query, args, err := s.sb.Select("1").From("schema_migrations").Where("version = ?", version).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build query: %w", err)
	}

	var exists int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return true, nil
}

func (s *Store) applyMigration(ctx context.Context, m migration) error {
	statements := m.sqlite
	if s.dialect == Postgres {
		statements = m.postgres
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute statement: %w", err)
		}
	}

	query, args, err := s.sb.Insert("schema_migrations").
		Columns("version", "applied_at").
		Values(m.version, time.Now().Unix()).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
