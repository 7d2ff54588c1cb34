package response

import (
	"time"

	"movie-catalog/internal/data/entity"
)

type RatingResponse struct {
	ID        string    `json:"id"`
	MovieID   string    `json:"movie_id"`
	UserID    string    `json:"user_id"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

type MovieRatingsResponse struct {
	MovieResponse
	Ratings      []RatingResponse `json:"ratings"`
	AverageScore float64          `json:"average_score"`
	RatingCount  int64            `json:"rating_count"`
}

func RatingToResponse(rating *entity.Rating) RatingResponse {
	return RatingResponse{
		ID:        rating.ID.String(),
		MovieID:   rating.MovieID.String(),
		UserID:    rating.UserID.String(),
		Score:     rating.Score,
		CreatedAt: rating.CreatedAt,
	}
}

func MovieWithRatings(movie *entity.Movie, ratings []*entity.Rating, average float64, count int64) MovieRatingsResponse {
	resp := MovieRatingsResponse{
		MovieResponse: MovieToResponse(movie),
		Ratings:       make([]RatingResponse, len(ratings)),
		AverageScore:  average,
		RatingCount:   count,
	}
	for i, rating := range ratings {
		resp.Ratings[i] = RatingToResponse(rating)
	}
	return resp
}
