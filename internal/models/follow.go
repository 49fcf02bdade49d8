package models

import "time"

// Follow is a directed edge: FollowerID receives AuthorID's posts in their follow feed.
// At most one edge exists per (FollowerID, AuthorID) pair.
type Follow struct {
	ID         int64
	FollowerID string
	AuthorID   string
	CreatedAt  time.Time
}
