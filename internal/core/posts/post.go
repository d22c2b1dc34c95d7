package posts

import (
	"time"
)

// Post represents a single authored text entry, optionally assigned to a group.
// The author is assigned at creation and never reassigned; the group may change.
type Post struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	Text      string    `json:"text" db:"text"`
	GroupID   *int64    `json:"groupId,omitempty" db:"group_id"`
	ID        int64     `json:"id" db:"id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
}

// CreatePostRequest represents input for creating a new post.
// AuthorID comes from the authenticated requester, never from the client body.
type CreatePostRequest struct {
	Text     string `json:"text"`
	GroupID  *int64 `json:"groupId,omitempty"`
	AuthorID int64  `json:"-"`
}

// EditPostRequest represents input for editing an existing post.
// RequesterID comes from the authenticated requester; zero means anonymous.
type EditPostRequest struct {
	Text        string `json:"text"`
	GroupID     *int64 `json:"groupId,omitempty"`
	PostID      int64  `json:"-"`
	RequesterID int64  `json:"-"`
}

// PostView is the hydrated read model for listings and detail pages.
// Author and group are joined in a single query by the repository.
type PostView struct {
	CreatedAt time.Time  `json:"createdAt"`
	Text      string     `json:"text"`
	Author    *AuthorRef `json:"author"`
	Group     *GroupRef  `json:"group,omitempty"`
	ID        int64      `json:"id"`
}

// AuthorRef is minimal author info embedded in post views
type AuthorRef struct {
	Username string `json:"username"`
	ID       int64  `json:"id"`
}

// GroupRef is minimal group info embedded in post views
type GroupRef struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
	ID    int64  `json:"id"`
}
