package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Quill/internal/auth"
	"Quill/internal/core/users"
)

type stubUserService struct {
	user    *users.User
	profile *users.Profile
	err     error
}

func (s *stubUserService) SignUp(ctx context.Context, req users.SignUpRequest) (*users.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubUserService) Authenticate(ctx context.Context, username, password string) (*users.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubUserService) GetByID(ctx context.Context, id int64) (*users.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubUserService) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func (s *stubUserService) GetProfile(ctx context.Context, username string) (*users.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.profile, nil
}

func newRouter(service users.Service) chi.Router {
	issuer, err := auth.NewTokenIssuer([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	if err != nil {
		panic(err)
	}
	store := sessions.NewCookieStore([]byte("test-session-secret"))

	r := chi.NewRouter()
	r.Post("/api/signup", NewSignupHandler(service).HandleSignup)
	r.Post("/api/login", NewLoginHandler(service, issuer, store).HandleLogin)
	r.Get("/api/users/{username}", NewProfileHandler(service).HandleGetProfile)
	return r
}

func sampleUser() *users.User {
	return &users.User{
		ID:        1,
		Username:  "alice",
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestHandleSignup(t *testing.T) {
	t.Run("creates account", func(t *testing.T) {
		router := newRouter(&stubUserService{user: sampleUser()})

		body, _ := json.Marshal(map[string]string{"username": "alice", "password": "password123"})
		req := httptest.NewRequest("POST", "/api/signup", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var created users.User
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		assert.Equal(t, "alice", created.Username)
		// Password hash never appears in responses
		assert.NotContains(t, w.Body.String(), "passwordHash")
	})

	t.Run("duplicate username is a 409", func(t *testing.T) {
		router := newRouter(&stubUserService{err: users.ErrUsernameTaken})

		body, _ := json.Marshal(map[string]string{"username": "alice", "password": "password123"})
		req := httptest.NewRequest("POST", "/api/signup", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("invalid username is a 400", func(t *testing.T) {
		router := newRouter(&stubUserService{err: &users.InvalidUsernameError{Username: "bad name", Reason: "spaces"}})

		body, _ := json.Marshal(map[string]string{"username": "bad name", "password": "password123"})
		req := httptest.NewRequest("POST", "/api/signup", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleLogin(t *testing.T) {
	t.Run("returns token and sets session cookie", func(t *testing.T) {
		router := newRouter(&stubUserService{user: sampleUser()})

		body, _ := json.Marshal(map[string]string{"username": "alice", "password": "password123"})
		req := httptest.NewRequest("POST", "/api/login", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var resp loginResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.NotEmpty(t, resp.Token)
		require.NotNil(t, resp.User)
		assert.Equal(t, "alice", resp.User.Username)

		assert.NotEmpty(t, w.Result().Cookies())
	})

	t.Run("bad credentials are a 401", func(t *testing.T) {
		router := newRouter(&stubUserService{err: users.ErrInvalidCredentials})

		body, _ := json.Marshal(map[string]string{"username": "alice", "password": "wrong"})
		req := httptest.NewRequest("POST", "/api/login", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})
}

func TestHandleGetProfile(t *testing.T) {
	t.Run("serves profile with stats", func(t *testing.T) {
		router := newRouter(&stubUserService{profile: &users.Profile{
			ID:       1,
			Username: "alice",
			Stats:    &users.ProfileStats{PostCount: 4},
		}})

		req := httptest.NewRequest("GET", "/api/users/alice", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var profile users.Profile
		require.NoError(t, json.NewDecoder(w.Body).Decode(&profile))
		assert.Equal(t, "alice", profile.Username)
		require.NotNil(t, profile.Stats)
		assert.Equal(t, 4, profile.Stats.PostCount)
	})

	t.Run("unknown username is a 404", func(t *testing.T) {
		router := newRouter(&stubUserService{err: users.ErrUserNotFound})

		req := httptest.NewRequest("GET", "/api/users/nobody", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
