package users

import (
	"time"
)

// User represents a registered author.
// The password hash never leaves the service and repository layers.
type User struct {
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	ID           int64     `json:"id" db:"id"`
}

// SignUpRequest represents the input for registering a new user
type SignUpRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ProfileStats contains aggregated author statistics shown on profile pages
type ProfileStats struct {
	PostCount int `json:"postCount"`
}

// Profile is the full profile response for an author page
type Profile struct {
	CreatedAt time.Time     `json:"createdAt"`
	Username  string        `json:"username"`
	Stats     *ProfileStats `json:"stats,omitempty"`
	ID        int64         `json:"id"`
}
