package usecase

import (
	"context"
	"fmt"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Movie   MovieService
	Comment CommentService
	Rating  RatingService
}

func NewService(repo *repository.Repository, tokens *utils.TokenManager, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo.User, tokens, log),
		User:    NewUserService(repo.User, log),
		Movie:   NewMovieService(repo.Movie, log),
		Comment: NewCommentService(repo, log),
		Rating:  NewRatingService(repo, log),
	}
}

func parseID(kind, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, newError(ErrValidation, "Invalid %s id: %s", kind, raw)
	}
	return id, nil
}

// findMovie loads a movie that the request depends on.
func findMovie(ctx context.Context, movies repository.MovieRepository, id uuid.UUID) (*entity.Movie, error) {
	movie, err := movies.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find movie %s: %w", id, err)
	}
	if movie == nil {
		return nil, newError(ErrNotFound, "Movie with id:%s not found", id)
	}
	return movie, nil
}
