package wire

import (
	"movie-catalog/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// POST /login - OAuth2 password form, returns a bearer token
	r.Post("/login", authHandler.Login)
}
