package post

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"Quill/internal/core/posts"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// writeError writes a JSON error response
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

// handleServiceError maps authoring service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, posts.ErrNotFound):
		writeError(w, http.StatusNotFound, "NotFound", "Post not found")

	// The post exists but the requester does not own it; deliberately
	// distinct from NotFound
	case errors.Is(err, posts.ErrNotAuthor):
		writeError(w, http.StatusForbidden, "NotAuthor", "Only the post's author may edit it")

	case errors.Is(err, posts.ErrAuthRequired):
		writeError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")

	case errors.Is(err, posts.ErrGroupNotFound):
		writeError(w, http.StatusBadRequest, "InvalidRequest", "Referenced group does not exist")

	case posts.IsValidationError(err):
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	default:
		log.Printf("Unexpected error in post handler: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
