package models

import "time"

// Comment is a reply to a post.
type Comment struct {
	ID        int64
	PostID    int64
	AuthorID  string
	Text      string
	CreatedAt time.Time

	// Author is populated on read paths.
	Author *User
}

// String returns the comment text.
func (c *Comment) String() string {
	return c.Text
}
