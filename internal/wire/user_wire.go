package wire

import (
	"movie-catalog/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	authHandler *adaptor.AuthHandler,
) {
	r.Route("/users", func(r chi.Router) {
		r.Post("/", authHandler.Register) // POST /users - sign up
		r.Get("/{id}", userHandler.GetUser)
	})
}
