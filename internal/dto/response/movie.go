package response

import (
	"time"

	"movie-catalog/internal/data/entity"
)

type MovieResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Genre       string    `json:"genre"`
	Description *string   `json:"description"`
	ReleaseYear *int      `json:"release_year"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Genre:       movie.Genre,
		Description: movie.Description,
		ReleaseYear: movie.ReleaseYear,
		UserID:      movie.UserID.String(),
		CreatedAt:   movie.CreatedAt,
		UpdatedAt:   movie.UpdatedAt,
	}
}

func MoviesToResponse(movies []*entity.Movie) []MovieResponse {
	resp := make([]MovieResponse, len(movies))
	for i, movie := range movies {
		resp[i] = MovieToResponse(movie)
	}
	return resp
}
