package feeds

import (
	"Quill/internal/core/posts"
)

// DefaultPageSize is the number of posts per listing page unless
// configured otherwise at service construction.
const DefaultPageSize = 10

// Page is a bounded slice of a listing plus the metadata needed to
// compute total page count.
type Page struct {
	Posts      []*posts.PostView `json:"posts"`
	Number     int               `json:"page"`
	Size       int               `json:"pageSize"`
	TotalCount int               `json:"totalCount"`
}

// TotalPages computes the page count with exact integer arithmetic.
// Zero items means zero pages.
func (p *Page) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	return (p.TotalCount + p.Size - 1) / p.Size
}

// HasPrev reports whether a previous page exists
func (p *Page) HasPrev() bool {
	return p.Number > 1
}

// HasNext reports whether a next page exists
func (p *Page) HasNext() bool {
	return p.Number < p.TotalPages()
}

// PrevNumber is the previous page number, for pagination links
func (p *Page) PrevNumber() int {
	return p.Number - 1
}

// NextNumber is the next page number, for pagination links
func (p *Page) NextNumber() int {
	return p.Number + 1
}

// GroupPage is a group listing page together with the resolved group
type GroupPage struct {
	Group *GroupInfo `json:"group"`
	Page
}

// GroupInfo is the group header shown above a group listing
type GroupInfo struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ID          int64  `json:"id"`
}

// AuthorPage is an author listing page together with the resolved author
type AuthorPage struct {
	Author *AuthorInfo `json:"author"`
	Page
}

// AuthorInfo is the author header shown above a profile listing
type AuthorInfo struct {
	Username string `json:"username"`
	ID       int64  `json:"id"`
}
