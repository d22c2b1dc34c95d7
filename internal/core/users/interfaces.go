package users

import "context"

// Repository defines the interface for user data persistence
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetProfileStats retrieves aggregated statistics for a user profile.
	GetProfileStats(ctx context.Context, userID int64) (*ProfileStats, error)
}

// Service defines the interface for user business logic
type Service interface {
	// SignUp registers a new user with a hashed password.
	SignUp(ctx context.Context, req SignUpRequest) (*User, error)

	// Authenticate verifies a username/password pair and returns the user.
	// Returns ErrInvalidCredentials for unknown usernames and wrong passwords alike.
	Authenticate(ctx context.Context, username, password string) (*User, error)

	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetProfile retrieves a user's profile with aggregated statistics.
	GetProfile(ctx context.Context, username string) (*Profile, error)
}
