package wire

import (
	"movie-catalog/internal/adaptor"
	"movie-catalog/internal/data/repository"
	"movie-catalog/pkg/middleware"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMovie(
	r chi.Router,
	movieHandler *adaptor.MovieHandler,
	repo *repository.Repository,
	tokens *utils.TokenManager,
	log *zap.Logger,
) {
	r.Route("/movies", func(r chi.Router) {
		// ==================== PUBLIC ROUTES ====================
		r.Get("/", movieHandler.GetMovies)
		r.Get("/{id}", movieHandler.GetMovieByID)

		// ==================== PROTECTED ROUTES ====================
		// ownership is checked by the service
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(tokens, repo.User, log))

			r.Post("/", movieHandler.CreateMovie)
			r.Put("/{id}", movieHandler.UpdateMovie)
			r.Delete("/{id}", movieHandler.DeleteMovie)
		})
	})
}
