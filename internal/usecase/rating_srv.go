package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"
	"movie-catalog/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RatingService interface {
	RateMovie(ctx context.Context, rater *entity.User, req *request.CreateRatingRequest) (*response.RatingResponse, error)
	GetRatings(ctx context.Context, movieID string) (*response.MovieRatingsResponse, error)
}

type ratingService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRatingService(repo *repository.Repository, log *zap.Logger) RatingService {
	return &ratingService{
		repo: repo,
		log:  log.With(zap.String("service", "rating")),
	}
}

func (s *ratingService) RateMovie(ctx context.Context, rater *entity.User, req *request.CreateRatingRequest) (*response.RatingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	movieID, err := parseID("movie", req.MovieID)
	if err != nil {
		return nil, err
	}

	if _, err := findMovie(ctx, s.repo.Movie, movieID); err != nil {
		return nil, err
	}

	existing, err := s.repo.Rating.FindByUserAndMovie(ctx, rater.ID, movieID)
	if err != nil {
		return nil, fmt.Errorf("check existing rating: %w", err)
	}
	if existing != nil {
		return nil, newError(ErrConflict, "User has already rated this movie")
	}

	rating := &entity.Rating{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now().UTC(),
		},
		MovieID: movieID,
		UserID:  rater.ID,
		Score:   req.Score,
	}

	if err := s.repo.Rating.Create(ctx, rating); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			// lost the race against a concurrent rating by the same user
			return nil, newError(ErrConflict, "User has already rated this movie")
		case errors.Is(err, repository.ErrReferenceMissing):
			return nil, newError(ErrNotFound, "Movie with id:%s not found", movieID)
		}
		return nil, fmt.Errorf("create rating: %w", err)
	}

	s.log.Info("Movie rated",
		zap.String("movie_id", movieID.String()),
		zap.String("user_id", rater.ID.String()),
		zap.Int("score", rating.Score),
	)

	resp := response.RatingToResponse(rating)
	return &resp, nil
}

func (s *ratingService) GetRatings(ctx context.Context, movieID string) (*response.MovieRatingsResponse, error) {
	id, err := parseID("movie", movieID)
	if err != nil {
		return nil, err
	}

	movie, err := findMovie(ctx, s.repo.Movie, id)
	if err != nil {
		return nil, err
	}

	ratings, err := s.repo.Rating.FindByMovieID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get ratings: %w", err)
	}
	if len(ratings) == 0 {
		return nil, newError(ErrNotFound, "No ratings found")
	}

	avg, count, err := s.repo.Rating.GetMovieRatingStats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get rating stats: %w", err)
	}

	resp := response.MovieWithRatings(movie, ratings, avg, count)
	return &resp, nil
}
