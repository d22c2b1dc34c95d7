package user

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/sessions"

	"Quill/internal/api/middleware"
	"Quill/internal/auth"
	"Quill/internal/core/users"
)

// LoginHandler verifies credentials, issues an API token, and establishes
// a web session so the same login serves both clients.
type LoginHandler struct {
	service users.Service
	tokens  *auth.TokenIssuer
	store   sessions.Store
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(service users.Service, tokens *auth.TokenIssuer, store sessions.Store) *LoginHandler {
	return &LoginHandler{
		service: service,
		tokens:  tokens,
		store:   store,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  *users.User `json:"user"`
}

// HandleLogin handles POST /api/login
func (h *LoginHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	user, err := h.service.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	token, err := h.tokens.Issue(user.ID, user.Username)
	if err != nil {
		log.Printf("Failed to issue token for user %d: %v", user.ID, err)
		writeError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
		return
	}

	// Best effort: API clients use the token, browsers get a session too
	session, _ := h.store.Get(r, middleware.SessionName)
	session.Values[middleware.SessionUserIDKey] = user.ID
	session.Values[middleware.SessionUsernameKey] = user.Username
	if err := session.Save(r, w); err != nil {
		log.Printf("Failed to save session for user %d: %v", user.ID, err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(loginResponse{Token: token, User: user}); err != nil {
		log.Printf("Failed to encode login response: %v", err)
	}
}
