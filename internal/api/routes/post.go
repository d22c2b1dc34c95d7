package routes

import (
	"github.com/go-chi/chi/v5"

	"Quill/internal/api/handlers/post"
	"Quill/internal/api/middleware"
	"Quill/internal/core/posts"
)

// RegisterPostRoutes registers post detail and authoring endpoints
func RegisterPostRoutes(r chi.Router, service posts.Service, authMiddleware *middleware.AuthMiddleware) {
	createHandler := post.NewCreateHandler(service)
	editHandler := post.NewEditHandler(service)
	getHandler := post.NewGetHandler(service)

	// Post detail is public
	r.Get("/api/posts/{postID}", getHandler.HandleGet)

	// Authoring requires authentication; the service re-checks ownership
	r.With(authMiddleware.RequireAuth).Post("/api/posts", createHandler.HandleCreate)
	r.With(authMiddleware.RequireAuth).Put("/api/posts/{postID}", editHandler.HandleEdit)
}
