package users

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byUsername map[string]*User
	nextID     int64
	postCounts map[int64]int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byUsername: make(map[string]*User),
		postCounts: make(map[int64]int),
		nextID:     1,
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *User) (*User, error) {
	if _, exists := r.byUsername[user.Username]; exists {
		return nil, ErrUsernameTaken
	}
	created := *user
	created.ID = r.nextID
	created.CreatedAt = time.Now().UTC()
	r.nextID++
	r.byUsername[created.Username] = &created
	out := created
	return &out, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	for _, u := range r.byUsername {
		if u.ID == id {
			out := *u
			return &out, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	u, ok := r.byUsername[username]
	if !ok {
		return nil, ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *fakeUserRepo) GetProfileStats(ctx context.Context, userID int64) (*ProfileStats, error) {
	return &ProfileStats{PostCount: r.postCounts[userID]}, nil
}

func TestUserService_SignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a new user with hashed password", func(t *testing.T) {
		repo := newFakeUserRepo()
		service := NewUserService(repo)

		user, err := service.SignUp(ctx, SignUpRequest{
			Username: "alice",
			Password: "correct-horse",
		})
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Equal(t, "alice", user.Username)
		assert.NotEqual(t, "correct-horse", user.PasswordHash)

		err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct-horse"))
		assert.NoError(t, err)
	})

	t.Run("rejects duplicate username", func(t *testing.T) {
		repo := newFakeUserRepo()
		service := NewUserService(repo)

		_, err := service.SignUp(ctx, SignUpRequest{Username: "alice", Password: "password123"})
		require.NoError(t, err)

		_, err = service.SignUp(ctx, SignUpRequest{Username: "alice", Password: "different456"})
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("rejects invalid usernames", func(t *testing.T) {
		repo := newFakeUserRepo()
		service := NewUserService(repo)

		for _, username := range []string{
			"",
			"has space",
			"bad!char",
			"slash/name",
			strings.Repeat("a", maxUsernameLength+1),
		} {
			_, err := service.SignUp(ctx, SignUpRequest{Username: username, Password: "password123"})
			assert.True(t, IsValidationError(err), "username %q should be rejected", username)
		}
	})

	t.Run("accepts dot underscore and hyphen", func(t *testing.T) {
		repo := newFakeUserRepo()
		service := NewUserService(repo)

		_, err := service.SignUp(ctx, SignUpRequest{Username: "a.b_c-d", Password: "password123"})
		assert.NoError(t, err)
	})

	t.Run("rejects weak passwords", func(t *testing.T) {
		repo := newFakeUserRepo()
		service := NewUserService(repo)

		_, err := service.SignUp(ctx, SignUpRequest{Username: "bob", Password: "short"})
		assert.True(t, IsValidationError(err))

		_, err = service.SignUp(ctx, SignUpRequest{Username: "bob", Password: strings.Repeat("x", maxPasswordLength+1)})
		assert.True(t, IsValidationError(err))
	})
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	service := NewUserService(repo)

	_, err := service.SignUp(ctx, SignUpRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := service.Authenticate(ctx, "alice", "password123")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Authenticate(ctx, "alice", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown username maps to the same error", func(t *testing.T) {
		_, err := service.Authenticate(ctx, "mallory", "password123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserService_GetProfile(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	service := NewUserService(repo)

	user, err := service.SignUp(ctx, SignUpRequest{Username: "alice", Password: "password123"})
	require.NoError(t, err)
	repo.postCounts[user.ID] = 4

	profile, err := service.GetProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.Username)
	require.NotNil(t, profile.Stats)
	assert.Equal(t, 4, profile.Stats.PostCount)

	_, err = service.GetProfile(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
