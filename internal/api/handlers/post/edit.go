package post

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Quill/internal/api/middleware"
	"Quill/internal/core/posts"
)

// EditHandler handles post edit requests
type EditHandler struct {
	service posts.Service
}

// NewEditHandler creates a new edit handler
func NewEditHandler(service posts.Service) *EditHandler {
	return &EditHandler{service: service}
}

// HandleEdit handles PUT /api/posts/{postID}
// Only the post's author may edit; text and group are the only mutable fields.
func (h *EditHandler) HandleEdit(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil || postID <= 0 {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "postID must be a positive integer")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req posts.EditPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err.Error() == "http: request body too large" {
			writeError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge", "Request body too large (max 1MB)")
			return
		}
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	req.PostID = postID
	// Zero means anonymous; the service maps that to an auth-required outcome
	req.RequesterID = middleware.GetUserID(r)

	updated, err := h.service.EditPost(r.Context(), req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(updated); err != nil {
		log.Printf("Failed to encode post edit response: %v", err)
	}
}
