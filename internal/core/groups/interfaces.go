package groups

import "context"

// Repository defines the data access interface for groups
type Repository interface {
	Create(ctx context.Context, group *Group) (*Group, error)
	GetByID(ctx context.Context, id int64) (*Group, error)
	GetBySlug(ctx context.Context, slug string) (*Group, error)
	List(ctx context.Context) ([]*Group, error)
}

// Service defines the business logic interface for groups
type Service interface {
	// CreateGroup validates and persists a new group
	CreateGroup(ctx context.Context, req CreateGroupRequest) (*Group, error)

	// GetBySlug resolves a group by its URL slug.
	// Returns ErrGroupNotFound if no group matches.
	GetBySlug(ctx context.Context, slug string) (*Group, error)

	// GetByID resolves a group by identifier.
	// Returns ErrGroupNotFound if no group matches.
	GetByID(ctx context.Context, id int64) (*Group, error)

	// ListGroups returns all groups ordered by title
	ListGroups(ctx context.Context) ([]*Group, error)
}
