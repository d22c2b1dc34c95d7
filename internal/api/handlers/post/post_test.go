package post

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Quill/internal/api/middleware"
	"Quill/internal/core/posts"
)

// stubPostService returns canned results and records the last request
type stubPostService struct {
	post       *posts.Post
	view       *posts.PostView
	err        error
	lastCreate posts.CreatePostRequest
	lastEdit   posts.EditPostRequest
}

func (s *stubPostService) CreatePost(ctx context.Context, req posts.CreatePostRequest) (*posts.Post, error) {
	s.lastCreate = req
	if s.err != nil {
		return nil, s.err
	}
	return s.post, nil
}

func (s *stubPostService) EditPost(ctx context.Context, req posts.EditPostRequest) (*posts.Post, error) {
	s.lastEdit = req
	if s.err != nil {
		return nil, s.err
	}
	return s.post, nil
}

func (s *stubPostService) GetPost(ctx context.Context, id int64) (*posts.PostView, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.view, nil
}

func newRouter(service posts.Service) chi.Router {
	r := chi.NewRouter()
	r.Post("/api/posts", NewCreateHandler(service).HandleCreate)
	r.Put("/api/posts/{postID}", NewEditHandler(service).HandleEdit)
	r.Get("/api/posts/{postID}", NewGetHandler(service).HandleGet)
	return r
}

func samplePost() *posts.Post {
	return &posts.Post{
		ID:        5,
		Text:      "hello",
		AuthorID:  1,
		CreatedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
	}
}

// authed builds a request carrying an authenticated identity
func authed(method, target string, body []byte, userID int64) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	return req.WithContext(middleware.WithTestIdentity(req.Context(), userID, "alice"))
}

func TestHandleCreate(t *testing.T) {
	t.Run("creates post for authenticated requester", func(t *testing.T) {
		service := &stubPostService{post: samplePost()}
		router := newRouter(service)

		body, _ := json.Marshal(map[string]string{"text": "hello"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authed("POST", "/api/posts", body, 1))

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, int64(1), service.lastCreate.AuthorID)
		assert.Equal(t, "hello", service.lastCreate.Text)

		var created posts.Post
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		assert.Equal(t, int64(5), created.ID)
	})

	t.Run("author in the body is ignored", func(t *testing.T) {
		service := &stubPostService{post: samplePost()}
		router := newRouter(service)

		body := []byte(`{"text":"hello","authorId":99}`)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authed("POST", "/api/posts", body, 1))

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, int64(1), service.lastCreate.AuthorID)
	})

	t.Run("anonymous requester is a 401", func(t *testing.T) {
		service := &stubPostService{post: samplePost()}
		router := newRouter(service)

		body, _ := json.Marshal(map[string]string{"text": "hello"})
		req := httptest.NewRequest("POST", "/api/posts", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		service := &stubPostService{post: samplePost()}
		router := newRouter(service)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, authed("POST", "/api/posts", []byte("{not json"), 1))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation failure is a 400", func(t *testing.T) {
		service := &stubPostService{err: posts.NewValidationError("text", "text is required")}
		router := newRouter(service)

		body, _ := json.Marshal(map[string]string{"text": ""})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authed("POST", "/api/posts", body, 1))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleEdit(t *testing.T) {
	t.Run("author edits own post", func(t *testing.T) {
		service := &stubPostService{post: samplePost()}
		router := newRouter(service)

		body, _ := json.Marshal(map[string]string{"text": "revised"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authed("PUT", "/api/posts/5", body, 1))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(5), service.lastEdit.PostID)
		assert.Equal(t, int64(1), service.lastEdit.RequesterID)
		assert.Equal(t, "revised", service.lastEdit.Text)
	})

	t.Run("non-author is a 403", func(t *testing.T) {
		service := &stubPostService{err: posts.ErrNotAuthor}
		router := newRouter(service)

		body, _ := json.Marshal(map[string]string{"text": "hijacked"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authed("PUT", "/api/posts/5", body, 2))

		assert.Equal(t, http.StatusForbidden, w.Code)

		var resp map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.Equal(t, "NotAuthor", resp["error"])
	})

	t.Run("anonymous requester is a 401", func(t *testing.T) {
		service := &stubPostService{err: posts.ErrAuthRequired}
		router := newRouter(service)

		body, _ := json.Marshal(map[string]string{"text": "anonymous"})
		req := httptest.NewRequest("PUT", "/api/posts/5", bytes.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown post is a 404", func(t *testing.T) {
		service := &stubPostService{err: posts.ErrNotFound}
		router := newRouter(service)

		body, _ := json.Marshal(map[string]string{"text": "whatever"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authed("PUT", "/api/posts/999", body, 1))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("bad post ID is a 400", func(t *testing.T) {
		service := &stubPostService{post: samplePost()}
		router := newRouter(service)

		body, _ := json.Marshal(map[string]string{"text": "x"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authed("PUT", "/api/posts/abc", body, 1))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandleGet(t *testing.T) {
	t.Run("serves the post detail", func(t *testing.T) {
		service := &stubPostService{view: &posts.PostView{
			ID:     5,
			Text:   "hello",
			Author: &posts.AuthorRef{ID: 1, Username: "alice"},
		}}
		router := newRouter(service)

		req := httptest.NewRequest("GET", "/api/posts/5", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var view posts.PostView
		require.NoError(t, json.NewDecoder(w.Body).Decode(&view))
		assert.Equal(t, "alice", view.Author.Username)
	})

	t.Run("unknown post is a 404", func(t *testing.T) {
		service := &stubPostService{err: posts.ErrNotFound}
		router := newRouter(service)

		req := httptest.NewRequest("GET", "/api/posts/999", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
