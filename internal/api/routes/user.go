package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"

	"Quill/internal/api/handlers/user"
	"Quill/internal/auth"
	"Quill/internal/core/users"
)

// RegisterUserRoutes registers signup, login, and profile endpoints
func RegisterUserRoutes(r chi.Router, userService users.Service, tokens *auth.TokenIssuer, store sessions.Store) {
	signupHandler := user.NewSignupHandler(userService)
	loginHandler := user.NewLoginHandler(userService, tokens, store)
	profileHandler := user.NewProfileHandler(userService)

	r.Post("/api/signup", signupHandler.HandleSignup)
	r.Post("/api/login", loginHandler.HandleLogin)
	r.Get("/api/users/{username}", profileHandler.HandleGetProfile)
}
