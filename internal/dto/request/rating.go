package request

type CreateRatingRequest struct {
	MovieID string `json:"movie_id" validate:"required,uuid"`
	Score   int    `json:"score" validate:"required,min=1,max=5"`
}
