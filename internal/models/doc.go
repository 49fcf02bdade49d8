// Package models defines the core domain models for yatube.
//
// # Models
//
//   - User: a registered author/reader, identified by a UUID and a unique username
//   - Group: a community that posts can optionally belong to, addressed by slug
//   - Post: a short text entry with an optional image, owned by its author
//   - Comment: a reply attached to exactly one post
//   - Follow: a directed "follower receives author's posts" edge
//   - Page: one window of a paginated feed
//
// # Relationships
//
// Relationships are stored as IDs. Read paths that render feeds populate the
// Author and Group pointers on Post so templates need no further lookups.
// Referential rules live in the database schema:
//
//  1. Deleting a user deletes their posts, comments and follow edges
//  2. Deleting a post deletes its comments
//  3. Deleting a group clears the group of its posts
package models
