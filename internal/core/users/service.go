package users

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	maxUsernameLength = 150
	minPasswordLength = 8
	// bcrypt silently truncates longer inputs
	maxPasswordLength = 72
)

type userService struct {
	repo Repository
}

// NewUserService creates a new user service
func NewUserService(repo Repository) Service {
	return &userService{repo: repo}
}

// SignUp registers a new user after validating the username and password.
// The password is stored as a bcrypt hash.
func (s *userService) SignUp(ctx context.Context, req SignUpRequest) (*User, error) {
	if err := validateUsername(req.Username); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, &User{
		Username:     req.Username,
		PasswordHash: string(hash),
	})
	if err != nil {
		// ErrUsernameTaken passes through for the handler to map
		return nil, err
	}

	return user, nil
}

// Authenticate verifies a username/password pair.
func (s *userService) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// GetProfile retrieves an author's profile with post count
func (s *userService) GetProfile(ctx context.Context, username string) (*Profile, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	stats, err := s.repo.GetProfileStats(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile stats: %w", err)
	}

	return &Profile{
		ID:        user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
		Stats:     stats,
	}, nil
}

// validateUsername checks format requirements for new usernames.
// Allowed characters match the usual web convention: letters, digits, and . _ -
func validateUsername(username string) error {
	if username == "" {
		return &InvalidUsernameError{Username: username, Reason: "username is required"}
	}
	if len(username) > maxUsernameLength {
		return &InvalidUsernameError{Username: username, Reason: fmt.Sprintf("username too long (max %d characters)", maxUsernameLength)}
	}
	for _, c := range username {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '.' || c == '_' || c == '-':
		default:
			return &InvalidUsernameError{Username: username, Reason: "username may only contain letters, digits, and . _ -"}
		}
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return &WeakPasswordError{Reason: fmt.Sprintf("password must be at least %d characters", minPasswordLength)}
	}
	if len(password) > maxPasswordLength {
		return &WeakPasswordError{Reason: fmt.Sprintf("password must be at most %d characters", maxPasswordLength)}
	}
	return nil
}
