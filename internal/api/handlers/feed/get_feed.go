package feed

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"Quill/internal/core/feeds"
)

// Handler serves the three paginated listings
type Handler struct {
	service feeds.Service
}

// NewHandler creates a new feed handler
func NewHandler(service feeds.Service) *Handler {
	return &Handler{service: service}
}

// pageResponse flattens a listing page and adds the derived page count
type pageResponse struct {
	*feeds.Page
	TotalPages int `json:"totalPages"`
}

type groupPageResponse struct {
	*feeds.GroupPage
	TotalPages int `json:"totalPages"`
}

type authorPageResponse struct {
	*feeds.AuthorPage
	TotalPages int `json:"totalPages"`
}

// HandleListAll serves the global feed
// GET /api/posts?page=1
func (h *Handler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	result, err := h.service.ListAll(r.Context(), page)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, pageResponse{Page: result, TotalPages: result.TotalPages()})
}

// HandleListByGroup serves a group's feed
// GET /api/groups/{slug}/posts?page=1
func (h *Handler) HandleListByGroup(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	slug := chi.URLParam(r, "slug")
	result, err := h.service.ListByGroup(r.Context(), slug, page)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, groupPageResponse{GroupPage: result, TotalPages: result.TotalPages()})
}

// HandleListByAuthor serves an author's feed
// GET /api/users/{username}/posts?page=1
func (h *Handler) HandleListByAuthor(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())
		return
	}

	username := chi.URLParam(r, "username")
	result, err := h.service.ListByAuthor(r.Context(), username, page)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, authorPageResponse{AuthorPage: result, TotalPages: result.TotalPages()})
}

// parsePage reads the page query parameter, defaulting to 1 when absent
func parsePage(r *http.Request) (int, error) {
	pageStr := r.URL.Query().Get("page")
	if pageStr == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		return 0, feeds.NewValidationError("page", "page must be a valid integer")
	}
	return page, nil
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("ERROR: Failed to encode feed response: %v", err)
	}
}
