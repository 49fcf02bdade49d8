package models

// Group is a community that posts can be published into.
// Groups are managed by administrators and outlive the posts that reference them.
type Group struct {
	// ID is the numeric identifier of the group.
	ID int64

	// Title is the display name of the group.
	Title string

	// Slug is the unique URL identifier (e.g. "cats" in /group/cats/).
	Slug string

	// Description is free text shown on the group page.
	Description string
}

// String returns the group title.
func (g *Group) String() string {
	return g.Title
}
