package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type RatingRepository interface {
	// Create inserts a rating. A second rating by the same user on the same
	// movie yields ErrDuplicate (uq_ratings_user_movie).
	Create(ctx context.Context, rating *entity.Rating) error
	FindByUserAndMovie(ctx context.Context, userID, movieID uuid.UUID) (*entity.Rating, error)
	FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Rating, error)

	// Business queries
	GetMovieRatingStats(ctx context.Context, movieID uuid.UUID) (float64, int64, error) // average, count
}

type ratingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRatingRepository(db database.PgxIface, log *zap.Logger) RatingRepository {
	return &ratingRepository{
		db:  db,
		log: log.With(zap.String("repository", "rating")),
	}
}

func (r *ratingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	query := `
		INSERT INTO ratings (id, movie_id, user_id, score, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		rating.ID,
		rating.MovieID,
		rating.UserID,
		rating.Score,
		rating.CreatedAt,
	)

	if err != nil {
		err = classify(err)
		if !errors.Is(err, ErrDuplicate) && !errors.Is(err, ErrReferenceMissing) {
			r.log.Error("Failed to create rating",
				zap.Error(err),
				zap.String("user_id", rating.UserID.String()),
				zap.String("movie_id", rating.MovieID.String()),
			)
		}
		return fmt.Errorf("create rating for movie %s by user %s: %w",
			rating.MovieID.String(), rating.UserID.String(), err)
	}

	return nil
}

func (r *ratingRepository) FindByUserAndMovie(ctx context.Context, userID, movieID uuid.UUID) (*entity.Rating, error) {
	query := `
		SELECT id, movie_id, user_id, score, created_at
		FROM ratings
		WHERE user_id = $1 AND movie_id = $2
		LIMIT 1
	`

	var rating entity.Rating
	err := r.db.QueryRow(ctx, query, userID, movieID).Scan(
		&rating.ID,
		&rating.MovieID,
		&rating.UserID,
		&rating.Score,
		&rating.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find rating by user and movie",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find rating by user %s and movie %s: %w",
			userID.String(), movieID.String(), err)
	}

	return &rating, nil
}

func (r *ratingRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Rating, error) {
	query := `
		SELECT id, movie_id, user_id, score, created_at
		FROM ratings
		WHERE movie_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find ratings by movie ID",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find ratings by movie ID %s: %w", movieID.String(), err)
	}
	defer rows.Close()

	var ratings []*entity.Rating
	for rows.Next() {
		var rating entity.Rating
		if err := rows.Scan(
			&rating.ID,
			&rating.MovieID,
			&rating.UserID,
			&rating.Score,
			&rating.CreatedAt,
		); err != nil {
			r.log.Error("Failed to scan rating row", zap.Error(err))
			return nil, fmt.Errorf("scan rating row: %w", err)
		}
		ratings = append(ratings, &rating)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rating rows: %w", err)
	}

	return ratings, nil
}

func (r *ratingRepository) GetMovieRatingStats(ctx context.Context, movieID uuid.UUID) (float64, int64, error) {
	query := `
		SELECT
			COALESCE(AVG(score), 0)::float8 AS avg_score,
			COUNT(*) AS rating_count
		FROM ratings
		WHERE movie_id = $1
	`

	var avgScore float64
	var count int64
	err := r.db.QueryRow(ctx, query, movieID).Scan(&avgScore, &count)
	if err != nil {
		r.log.Error("Failed to get movie rating stats",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return 0, 0, fmt.Errorf("get movie rating stats for %s: %w", movieID.String(), err)
	}

	return avgScore, count, nil
}
