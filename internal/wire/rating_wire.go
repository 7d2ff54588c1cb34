package wire

import (
	"movie-catalog/internal/adaptor"
	"movie-catalog/internal/data/repository"
	"movie-catalog/pkg/middleware"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireRating(
	r chi.Router,
	ratingHandler *adaptor.RatingHandler,
	repo *repository.Repository,
	tokens *utils.TokenManager,
	log *zap.Logger,
) {
	r.Route("/ratings", func(r chi.Router) {
		r.Get("/{movie_id}", ratingHandler.GetRatings)
		r.With(middleware.Authenticate(tokens, repo.User, log)).Post("/", ratingHandler.RateMovie)
	})
}
