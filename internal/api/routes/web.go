package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"Quill/internal/api/middleware"
	"Quill/internal/core/feeds"
	"Quill/internal/core/groups"
	"Quill/internal/core/posts"
	"Quill/internal/core/users"
	"Quill/internal/web"
)

// RegisterWebRoutes registers the server-rendered pages: listings, post
// detail, authoring forms, and account pages.
func RegisterWebRoutes(
	r chi.Router,
	store sessions.Store,
	feedService feeds.Service,
	postService posts.Service,
	groupService groups.Service,
	userService users.Service,
	authMiddleware *middleware.AuthMiddleware,
) {
	templates, err := web.NewTemplates()
	if err != nil {
		panic("failed to load web templates: " + err.Error())
	}

	handlers := web.NewHandlers(templates, store, feedService, postService, groupService, userService)

	// Public pages; OptionalAuth fills in the nav for logged-in visitors
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.OptionalAuth)

		r.Get("/", handlers.IndexHandler)
		r.Get("/groups", handlers.GroupIndexHandler)
		r.Get("/group/{slug}", handlers.GroupHandler)
		r.Get("/profile/{username}", handlers.ProfileHandler)
		r.Get("/posts/{postID}", handlers.PostDetailHandler)

		r.Get("/login", handlers.LoginPageHandler)
		r.Post("/login", handlers.LoginHandler)
		r.Get("/signup", handlers.SignupPageHandler)
		r.Post("/signup", handlers.SignupHandler)
		r.Post("/logout", handlers.LogoutHandler)
	})

	// Authoring pages require a logged-in user
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequireAuthWeb)

		r.Get("/create", handlers.NewPostHandler)
		r.Post("/create", handlers.CreatePostHandler)
		r.Get("/posts/{postID}/edit", handlers.EditPostFormHandler)
		r.Post("/posts/{postID}/edit", handlers.EditPostHandler)
	})

	// Static assets (stylesheet)
	static := http.StripPrefix("/static/", http.FileServer(http.Dir("static")))
	r.Get("/static/*", static.ServeHTTP)
}
