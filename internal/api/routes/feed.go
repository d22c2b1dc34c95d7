package routes

import (
	"github.com/go-chi/chi/v5"

	"Quill/internal/api/handlers/feed"
	"Quill/internal/core/feeds"
)

// RegisterFeedRoutes registers the three public listing endpoints
func RegisterFeedRoutes(r chi.Router, feedService feeds.Service) {
	handler := feed.NewHandler(feedService)

	// All three listings are public: anonymous visitors browse freely
	r.Get("/api/posts", handler.HandleListAll)
	r.Get("/api/groups/{slug}/posts", handler.HandleListByGroup)
	r.Get("/api/users/{username}/posts", handler.HandleListByAuthor)
}
