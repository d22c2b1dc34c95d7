package user

import (
	"encoding/json"
	"log"
	"net/http"

	"Quill/internal/core/users"
)

// SignupHandler handles account registration
type SignupHandler struct {
	service users.Service
}

// NewSignupHandler creates a new signup handler
func NewSignupHandler(service users.Service) *SignupHandler {
	return &SignupHandler{service: service}
}

// HandleSignup handles POST /api/signup
func (h *SignupHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req users.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	created, err := h.service.SignUp(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(created); err != nil {
		log.Printf("Failed to encode signup response: %v", err)
	}
}
