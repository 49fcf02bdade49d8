package models

import "time"

// Post is a single entry authored by a user.
type Post struct {
	// ID is assigned by the store in insertion order.
	ID int64

	// Text is the body of the post, at most 400 characters.
	Text string

	// CreatedAt is set once when the post is first stored.
	CreatedAt time.Time

	// AuthorID references the owning user. Never empty.
	AuthorID string

	// GroupID references the group the post belongs to, nil when ungrouped.
	GroupID *int64

	// Image is an opaque reference to an uploaded image, empty when absent.
	Image string

	// Author and Group are populated on read paths.
	Author *User
	Group  *Group
}

// String returns the first 15 characters of the text.
func (p *Post) String() string {
	runes := []rune(p.Text)
	if len(runes) > 15 {
		return string(runes[:15])
	}
	return p.Text
}

// PostFilter narrows a post listing. Zero value matches every post.
type PostFilter struct {
	// GroupID restricts to posts of one group.
	GroupID *int64

	// AuthorID restricts to posts of one author.
	AuthorID string

	// FollowerID restricts to posts whose author is followed by this user.
	FollowerID string
}
