package feed

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"Quill/internal/core/feeds"
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

// handleServiceError maps listing service errors to HTTP responses
func handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, feeds.ErrGroupNotFound):
		writeError(w, http.StatusNotFound, "GroupNotFound", "Group not found")

	case errors.Is(err, feeds.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "UserNotFound", "User not found")

	case feeds.IsValidationError(err):
		writeError(w, http.StatusBadRequest, "InvalidRequest", err.Error())

	default:
		log.Printf("Unexpected error in feed handler: %v", err)
		writeError(w, http.StatusInternalServerError, "InternalServerError", "An internal error occurred")
	}
}
