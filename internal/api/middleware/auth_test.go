package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Quill/internal/auth"
)

func newTestAuth(t *testing.T) (*AuthMiddleware, *auth.TokenIssuer, sessions.Store) {
	t.Helper()
	issuer, err := auth.NewTokenIssuer([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	require.NoError(t, err)
	store := sessions.NewCookieStore([]byte("test-session-secret"))
	return NewAuthMiddleware(store, issuer), issuer, store
}

// identityEcho records the identity the middleware resolved
func identityEcho(gotID *int64, gotName *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*gotID = GetUserID(r)
		*gotName = GetUsername(r)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth(t *testing.T) {
	t.Run("valid bearer token passes identity through", func(t *testing.T) {
		mw, issuer, _ := newTestAuth(t)
		token, err := issuer.Issue(42, "alice")
		require.NoError(t, err)

		var gotID int64
		var gotName string
		handler := mw.RequireAuth(identityEcho(&gotID, &gotName))

		req := httptest.NewRequest("POST", "/api/posts", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(42), gotID)
		assert.Equal(t, "alice", gotName)
	})

	t.Run("missing credentials are a 401", func(t *testing.T) {
		mw, _, _ := newTestAuth(t)
		handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		}))

		req := httptest.NewRequest("POST", "/api/posts", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	})

	t.Run("tampered token is a 401", func(t *testing.T) {
		mw, issuer, _ := newTestAuth(t)
		token, err := issuer.Issue(42, "alice")
		require.NoError(t, err)

		handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler should not run")
		}))

		req := httptest.NewRequest("POST", "/api/posts", nil)
		req.Header.Set("Authorization", "Bearer "+token+"tampered")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("session cookie passes identity through", func(t *testing.T) {
		mw, _, store := newTestAuth(t)

		// Establish a session the way the login handler does
		loginReq := httptest.NewRequest("POST", "/api/login", nil)
		loginW := httptest.NewRecorder()
		session, err := store.Get(loginReq, SessionName)
		require.NoError(t, err)
		session.Values[SessionUserIDKey] = int64(42)
		session.Values[SessionUsernameKey] = "alice"
		require.NoError(t, session.Save(loginReq, loginW))

		var gotID int64
		var gotName string
		handler := mw.RequireAuth(identityEcho(&gotID, &gotName))

		req := httptest.NewRequest("POST", "/api/posts", nil)
		for _, c := range loginW.Result().Cookies() {
			req.AddCookie(c)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(42), gotID)
		assert.Equal(t, "alice", gotName)
	})
}

func TestRequireAuthWeb(t *testing.T) {
	mw, _, _ := newTestAuth(t)
	handler := mw.RequireAuthWeb(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest("GET", "/create", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login?next=/create", w.Header().Get("Location"))
}

func TestOptionalAuth(t *testing.T) {
	t.Run("anonymous requests pass through with zero identity", func(t *testing.T) {
		mw, _, _ := newTestAuth(t)

		var gotID int64
		var gotName string
		handler := mw.OptionalAuth(identityEcho(&gotID, &gotName))

		req := httptest.NewRequest("GET", "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Zero(t, gotID)
		assert.Empty(t, gotName)
	})

	t.Run("bearer token fills identity", func(t *testing.T) {
		mw, issuer, _ := newTestAuth(t)
		token, err := issuer.Issue(7, "bob")
		require.NoError(t, err)

		var gotID int64
		var gotName string
		handler := mw.OptionalAuth(identityEcho(&gotID, &gotName))

		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, int64(7), gotID)
		assert.Equal(t, "bob", gotName)
	})
}
