package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/mmynk/yatube/internal/apperrors"
	"github.com/mmynk/yatube/internal/auth"
	"github.com/mmynk/yatube/internal/models"
)

// adminStore is what the admin commands change directly.
type adminStore interface {
	CreateGroup(ctx context.Context, group *models.Group) error
	GetGroupBySlug(ctx context.Context, slug string) (*models.Group, error)
	DeleteGroup(ctx context.Context, id int64) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
}

var errUsage = errors.New("usage")

type commands struct {
	store         adminStore
	authenticator auth.Authenticator
	out           io.Writer
}

func (c *commands) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: a command is required", errUsage)
	}

	name, rest := args[0], args[1:]
	switch name {
	case "create-group":
		return c.createGroup(ctx, rest)
	case "delete-group":
		return c.deleteGroup(ctx, rest)
	case "create-user":
		return c.createUser(ctx, rest)
	case "delete-user":
		return c.deleteUser(ctx, rest)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, name)
	}
}

func (c *commands) createGroup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-group", flag.ContinueOnError)
	fs.SetOutput(c.out)
	title := fs.String("title", "", "group title (max 200 characters)")
	slug := fs.String("slug", "", "unique URL identifier")
	description := fs.String("description", "", "group description")
	if err := fs.Parse(args); err != nil {
		return err
	}

	group := &models.Group{
		Title:       strings.TrimSpace(*title),
		Slug:        strings.TrimSpace(*slug),
		Description: *description,
	}
	switch {
	case group.Title == "" || group.Slug == "":
		return fmt.Errorf("%w: -title and -slug are required", errUsage)
	case len([]rune(group.Title)) > 200:
		return fmt.Errorf("%w: title is longer than 200 characters", errUsage)
	}

	if err := c.store.CreateGroup(ctx, group); err != nil {
		if errors.Is(err, apperrors.ErrAlreadyExists) {
			return fmt.Errorf("group with slug %q already exists", group.Slug)
		}
		return err
	}

	slog.Info("Group created", "group_id", group.ID, "slug", group.Slug)
	fmt.Fprintf(c.out, "created group %d (%s)\n", group.ID, group.Slug)
	return nil
}

func (c *commands) deleteGroup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete-group", flag.ContinueOnError)
	fs.SetOutput(c.out)
	slug := fs.String("slug", "", "slug of the group to delete")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *slug == "" {
		return fmt.Errorf("%w: -slug is required", errUsage)
	}

	group, err := c.store.GetGroupBySlug(ctx, *slug)
	if err != nil {
		return err
	}
	if err := c.store.DeleteGroup(ctx, group.ID); err != nil {
		return err
	}

	slog.Info("Group deleted", "group_id", group.ID, "slug", group.Slug)
	fmt.Fprintf(c.out, "deleted group %s; its posts are now ungrouped\n", group.Slug)
	return nil
}

func (c *commands) createUser(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	fs.SetOutput(c.out)
	username := fs.String("username", "", "username")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return fmt.Errorf("%w: -username and -password are required", errUsage)
	}

	user, err := c.authenticator.Register(ctx, *username, *password)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameExists) {
			return fmt.Errorf("user %q already exists", *username)
		}
		return err
	}

	fmt.Fprintf(c.out, "created user %s (%s)\n", user.Username, user.ID)
	return nil
}

func (c *commands) deleteUser(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete-user", flag.ContinueOnError)
	fs.SetOutput(c.out)
	username := fs.String("username", "", "username of the account to delete")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		return fmt.Errorf("%w: -username is required", errUsage)
	}

	user, err := c.store.GetUserByUsername(ctx, *username)
	if err != nil {
		return err
	}
	if err := c.store.DeleteUser(ctx, user.ID); err != nil {
		return err
	}

	slog.Info("User deleted", "user_id", user.ID, "username", user.Username)
	fmt.Fprintf(c.out, "deleted user %s with their posts, comments and follows\n", user.Username)
	return nil
}
