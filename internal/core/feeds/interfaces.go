package feeds

import (
	"context"

	"Quill/internal/core/posts"
)

// Service defines the business logic interface for post listings.
// All three listings share the same contract: reverse-chronological order,
// fixed page size, 1-indexed pages, and an empty page (not an error) past
// the end of the result set.
type Service interface {
	// ListAll returns a page of the global feed
	ListAll(ctx context.Context, page int) (*Page, error)

	// ListByGroup returns a page of posts in the group with the given slug.
	// Returns ErrGroupNotFound if no group matches.
	ListByGroup(ctx context.Context, slug string, page int) (*GroupPage, error)

	// ListByAuthor returns a page of posts by the user with the given username.
	// Returns ErrUserNotFound if no user matches.
	ListByAuthor(ctx context.Context, username string, page int) (*AuthorPage, error)
}

// Repository defines the data access interface for listings.
// Each method returns one hydrated page plus the total item count for the
// filter, so the service can compute page arithmetic exactly.
type Repository interface {
	ListAll(ctx context.Context, limit, offset int) ([]*posts.PostView, int, error)
	ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]*posts.PostView, int, error)
	ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]*posts.PostView, int, error)
}
