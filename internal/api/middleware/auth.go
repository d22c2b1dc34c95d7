package middleware

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/sessions"

	"Quill/internal/auth"
)

// Context keys for storing requester identity
type contextKey string

const (
	userIDKey   contextKey = "user_id"
	usernameKey contextKey = "username"
)

// SessionName is the cookie name for web sessions
const SessionName = "quill_session"

// Session value keys
const (
	SessionUserIDKey   = "user_id"
	SessionUsernameKey = "username"
)

// AuthMiddleware resolves the requester's identity from either an API bearer
// token or a web session cookie. Downstream handlers read the identity from
// the request context; a zero user ID means anonymous.
type AuthMiddleware struct {
	store  sessions.Store
	tokens *auth.TokenIssuer
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(store sessions.Store, tokens *auth.TokenIssuer) *AuthMiddleware {
	return &AuthMiddleware{
		store:  store,
		tokens: tokens,
	}
}

// RequireAuth ensures the requester is authenticated.
// Unauthenticated requests get a 401 JSON error; used on API routes.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, username := m.identity(r)
		if userID == 0 {
			writeAuthError(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), userID, username)))
	})
}

// RequireAuthWeb ensures the requester is authenticated.
// Unauthenticated requests are redirected to the login page; used on web routes.
func (m *AuthMiddleware) RequireAuthWeb(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, username := m.identity(r)
		if userID == 0 {
			http.Redirect(w, r, "/login?next="+r.URL.Path, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), userID, username)))
	})
}

// OptionalAuth loads the requester's identity if present, but doesn't require it.
// Used on listing and detail routes that work for anonymous visitors too.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, username := m.identity(r)
		if userID != 0 {
			r = r.WithContext(withIdentity(r.Context(), userID, username))
		}
		next.ServeHTTP(w, r)
	})
}

// identity resolves the requester from a bearer token first, then the
// session cookie. Returns zero for anonymous requesters.
func (m *AuthMiddleware) identity(r *http.Request) (int64, string) {
	if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		claims, err := m.tokens.Verify(token)
		if err != nil {
			log.Printf("[AUTH_FAILURE] type=invalid_token ip=%s method=%s path=%s error=%v",
				r.RemoteAddr, r.Method, r.URL.Path, err)
			return 0, ""
		}
		return claims.UserID, claims.Username
	}

	// Get never fails fatally: a bad cookie yields a fresh empty session
	session, err := m.store.Get(r, SessionName)
	if err != nil || session.IsNew {
		return 0, ""
	}

	userID, ok := session.Values[SessionUserIDKey].(int64)
	if !ok || userID == 0 {
		return 0, ""
	}
	username, _ := session.Values[SessionUsernameKey].(string)
	return userID, username
}

func withIdentity(ctx context.Context, userID int64, username string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, usernameKey, username)
}

// GetUserID returns the authenticated requester's user ID, or zero for anonymous
func GetUserID(r *http.Request) int64 {
	if id, ok := r.Context().Value(userIDKey).(int64); ok {
		return id
	}
	return 0
}

// GetUsername returns the authenticated requester's username, or "" for anonymous
func GetUsername(r *http.Request) string {
	if name, ok := r.Context().Value(usernameKey).(string); ok {
		return name
	}
	return ""
}

// WithTestIdentity injects an identity into a context. Test helper.
func WithTestIdentity(ctx context.Context, userID int64, username string) context.Context {
	return withIdentity(ctx, userID, username)
}

func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   "AuthRequired",
		"message": "Authentication required",
	}); err != nil {
		log.Printf("Failed to encode auth error response: %v", err)
	}
}
