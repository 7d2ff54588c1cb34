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

type MovieService interface {
	GetMovies(ctx context.Context, req *request.ListMoviesRequest) ([]response.MovieResponse, error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, owner *entity.User, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, caller *entity.User, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, caller *entity.User, movieID string) error
}

type movieService struct {
	movies repository.MovieRepository
	log    *zap.Logger
}

func NewMovieService(
	movies repository.MovieRepository,
	log *zap.Logger,
) MovieService {
	return &movieService{
		movies: movies,
		log:    log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, req *request.ListMoviesRequest) ([]response.MovieResponse, error) {
	req.Normalize()

	movies, err := s.movies.FindAll(ctx, repository.MovieFilter{
		Search: req.Search,
		Limit:  req.Limit,
		Offset: req.Skip,
	})
	if err != nil {
		return nil, fmt.Errorf("get movies: %w", err)
	}

	s.log.Debug("Movies retrieved",
		zap.Int("count", len(movies)),
		zap.Int("limit", req.Limit),
		zap.Int("skip", req.Skip),
		zap.String("search", req.Search),
	)

	return response.MoviesToResponse(movies), nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	id, err := parseID("movie", movieID)
	if err != nil {
		return nil, err
	}

	movie, err := findMovie(ctx, s.movies, id)
	if err != nil {
		return nil, err
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, owner *entity.User, req *request.MovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	now := time.Now().UTC()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       req.Title,
		Genre:       req.Genre,
		Description: req.Description,
		ReleaseYear: req.ReleaseYear,
		UserID:      owner.ID,
	}

	if err := s.movies.Create(ctx, movie); err != nil {
		return nil, fmt.Errorf("create movie: %w", err)
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
		zap.String("user_id", owner.ID.String()),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, caller *entity.User, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	id, err := parseID("movie", movieID)
	if err != nil {
		return nil, err
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update movie validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	movie, err := s.ownedMovie(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Genre != nil {
		movie.Genre = *req.Genre
	}
	if req.Description != nil {
		movie.Description = req.Description
	}
	if req.ReleaseYear != nil {
		movie.ReleaseYear = req.ReleaseYear
	}
	movie.UpdatedAt = time.Now().UTC()

	if err := s.movies.Update(ctx, movie); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(ErrNotFound, "Movie with id:%s not found", id)
		}
		return nil, fmt.Errorf("update movie: %w", err)
	}

	s.log.Info("Movie updated", zap.String("movie_id", id.String()))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, caller *entity.User, movieID string) error {
	id, err := parseID("movie", movieID)
	if err != nil {
		return err
	}

	if _, err := s.ownedMovie(ctx, caller, id); err != nil {
		return err
	}

	if err := s.movies.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return newError(ErrNotFound, "Movie with id:%s not found", id)
		}
		return fmt.Errorf("delete movie: %w", err)
	}

	s.log.Info("Movie deleted",
		zap.String("movie_id", id.String()),
		zap.String("user_id", caller.ID.String()),
	)
	return nil
}

// ownedMovie checks existence first, then ownership.
func (s *movieService) ownedMovie(ctx context.Context, caller *entity.User, id uuid.UUID) (*entity.Movie, error) {
	movie, err := findMovie(ctx, s.movies, id)
	if err != nil {
		return nil, err
	}

	if !movie.OwnedBy(caller.ID) {
		s.log.Warn("Movie ownership check failed",
			zap.String("movie_id", id.String()),
			zap.String("user_id", caller.ID.String()),
		)
		return nil, newError(ErrForbidden, "Not authorized to perform requested action")
	}

	return movie, nil
}
