package web

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"Quill/internal/api/middleware"
)

const csrfSessionKey = "csrf_token"

// csrfToken returns the session's CSRF token, minting one on first use.
// The token lives in the server-side session; forms echo it back in a
// hidden field.
func (h *Handlers) csrfToken(w http.ResponseWriter, r *http.Request) (string, error) {
	session, _ := h.store.Get(r, middleware.SessionName)

	if token, ok := session.Values[csrfSessionKey].(string); ok && token != "" {
		return token, nil
	}

	token := uuid.NewString()
	session.Values[csrfSessionKey] = token
	if err := session.Save(r, w); err != nil {
		return "", err
	}
	return token, nil
}

// checkCSRF validates the submitted form token against the session token.
// Writes a 403 and returns false on mismatch.
func (h *Handlers) checkCSRF(w http.ResponseWriter, r *http.Request) bool {
	session, _ := h.store.Get(r, middleware.SessionName)
	expected, _ := session.Values[csrfSessionKey].(string)
	submitted := r.FormValue(csrfFormField)

	if expected == "" || submitted == "" ||
		subtle.ConstantTimeCompare([]byte(expected), []byte(submitted)) != 1 {
		slog.Warn("csrf check failed", "path", r.URL.Path)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return false
	}
	return true
}

// csrfFormField is the hidden input name used by all form templates
const csrfFormField = "csrf_token"
