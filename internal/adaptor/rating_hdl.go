package adaptor

import (
	"net/http"

	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RatingHandler struct {
	service usecase.RatingService
	log     *zap.Logger
}

func NewRatingHandler(service usecase.RatingService, log *zap.Logger) *RatingHandler {
	return &RatingHandler{
		service: service,
		log:     log.With(zap.String("handler", "rating")),
	}
}

// RateMovie handles POST /ratings
func (h *RatingHandler) RateMovie(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreateRatingRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rating, err := h.service.RateMovie(r.Context(), caller, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "rate movie")
		return
	}

	utils.ResponseCreated(w, rating)
}

// GetRatings handles GET /ratings/{movie_id}
func (h *RatingHandler) GetRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.service.GetRatings(r.Context(), chi.URLParam(r, "movie_id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get ratings")
		return
	}

	utils.ResponseSuccess(w, ratings)
}
