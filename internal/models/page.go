package models

// Page is one window of a paginated post feed.
type Page struct {
	// Posts holds the items on this page, newest first.
	Posts []*Post

	// Number is the 1-based index of this page.
	Number int

	// NumPages is the total number of pages. Always at least 1.
	NumPages int

	// Count is the total number of posts across all pages.
	Count int

	// PageSize is the maximum number of posts per page.
	PageSize int
}

// Len returns the number of posts on this page.
func (p *Page) Len() int {
	return len(p.Posts)
}

// HasNext reports whether a page follows this one.
func (p *Page) HasNext() bool {
	return p.Number < p.NumPages
}

// HasPrevious reports whether a page precedes this one.
func (p *Page) HasPrevious() bool {
	return p.Number > 1
}

// NextNumber returns the number of the following page. Check HasNext first.
func (p *Page) NextNumber() int {
	return p.Number + 1
}

// PreviousNumber returns the number of the preceding page. Check HasPrevious first.
func (p *Page) PreviousNumber() int {
	return p.Number - 1
}

// Numbers returns every page number, used to render page links.
func (p *Page) Numbers() []int {
	numbers := make([]int, p.NumPages)
	for i := range numbers {
		numbers[i] = i + 1
	}
	return numbers
}
