package posts

import "context"

// Service defines the business logic interface for post authoring
type Service interface {
	// CreatePost validates and persists a new post.
	// The created post is immediately visible in all matching listings.
	CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error)

	// EditPost validates an edit and applies it in place.
	// Only the post's author may edit; text and group are the only mutable
	// fields. Author and creation timestamp are unchanged.
	EditPost(ctx context.Context, req EditPostRequest) (*Post, error)

	// GetPost retrieves a single hydrated post for detail views
	GetPost(ctx context.Context, id int64) (*PostView, error)
}

// Repository defines the data access interface for posts
type Repository interface {
	// Create inserts a new post and fills in its ID and creation timestamp
	Create(ctx context.Context, post *Post) (*Post, error)

	// GetByID retrieves a post row by identifier
	GetByID(ctx context.Context, id int64) (*Post, error)

	// GetViewByID retrieves a hydrated post (author and group joined)
	GetViewByID(ctx context.Context, id int64) (*PostView, error)

	// Update writes text and group in a single statement.
	// Author and created_at are never touched.
	Update(ctx context.Context, post *Post) (*Post, error)
}
