package adaptor

import (
	"net/http"

	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CommentHandler struct {
	service usecase.CommentService
	log     *zap.Logger
}

func NewCommentHandler(service usecase.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		log:     log.With(zap.String("handler", "comment")),
	}
}

// CreateComment handles POST /comments
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreateCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := h.service.CreateComment(r.Context(), caller, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create comment")
		return
	}

	utils.ResponseCreated(w, comment)
}

// GetComments handles GET /comments/{movie_id}
func (h *CommentHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.GetComments(r.Context(), chi.URLParam(r, "movie_id"))
	if err != nil {
		writeServiceError(w, h.log, err, "get comments")
		return
	}

	utils.ResponseSuccess(w, comments)
}

// Reply handles POST /comments/reply
func (h *CommentHandler) Reply(w http.ResponseWriter, r *http.Request) {
	caller, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req request.CreateReplyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	reply, err := h.service.ReplyToComment(r.Context(), caller, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "reply to comment")
		return
	}

	utils.ResponseCreated(w, reply)
}
