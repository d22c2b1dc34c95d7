package group

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"Quill/internal/core/groups"
)

// ListHandler serves the group index
type ListHandler struct {
	service groups.Service
}

// NewListHandler creates a new group list handler
func NewListHandler(service groups.Service) *ListHandler {
	return &ListHandler{service: service}
}

type listResponse struct {
	Groups []*groups.Group `json:"groups"`
}

// HandleList handles GET /api/groups
func (h *ListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListGroups(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if result == nil {
		result = []*groups.Group{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(listResponse{Groups: result}); err != nil {
		log.Printf("Failed to encode group list response: %v", err)
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(errorResponse{
		Error:   errorType,
		Message: message,
	}); err != nil {
		log.Printf("Failed to encode error response: %v", err)
	}
}

func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, groups.ErrGroupNotFound):
		writeError(w, http.StatusNotFound, "GroupNotFound", "Group not found")

	case groups.IsValidationError(err):
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	default:
		log.Printf("Unexpected error in group handler: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
