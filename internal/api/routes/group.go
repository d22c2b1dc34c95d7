package routes

import (
	"github.com/go-chi/chi/v5"

	"Quill/internal/api/handlers/group"
	"Quill/internal/core/groups"
)

// RegisterGroupRoutes registers the public group index endpoint
func RegisterGroupRoutes(r chi.Router, groupService groups.Service) {
	listHandler := group.NewListHandler(groupService)

	r.Get("/api/groups", listHandler.HandleList)
}
