package user

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"Quill/internal/core/users"
)

// ProfileHandler serves author profiles with aggregated stats
type ProfileHandler struct {
	service users.Service
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(service users.Service) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// HandleGetProfile handles GET /api/users/{username}
func (h *ProfileHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if username == "" {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "username is required")
		return
	}

	profile, err := h.service.GetProfile(r.Context(), username)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(profile); err != nil {
		log.Printf("Failed to encode profile response: %v", err)
	}
}
