package wire

import (
	"movie-catalog/internal/adaptor"
	"movie-catalog/internal/data/repository"
	"movie-catalog/pkg/middleware"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireComment(
	r chi.Router,
	commentHandler *adaptor.CommentHandler,
	repo *repository.Repository,
	tokens *utils.TokenManager,
	log *zap.Logger,
) {
	auth := middleware.Authenticate(tokens, repo.User, log)

	r.Route("/comments", func(r chi.Router) {
		r.Get("/{movie_id}", commentHandler.GetComments)

		r.With(auth).Post("/", commentHandler.CreateComment)
		r.With(auth).Post("/reply", commentHandler.Reply)
	})
}
