package response

import (
	"time"

	"movie-catalog/internal/data/entity"
)

type CommentResponse struct {
	ID        string    `json:"id"`
	MovieID   string    `json:"movie_id"`
	UserID    string    `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type ReplyResponse struct {
	ID        string    `json:"id"`
	CommentID string    `json:"comment_id"`
	UserID    string    `json:"user_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentWithRepliesResponse struct {
	CommentResponse
	Replies []ReplyResponse `json:"replies"`
}

type MovieCommentsResponse struct {
	MovieResponse
	Comments []CommentWithRepliesResponse `json:"comments"`
}

func CommentToResponse(comment *entity.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID.String(),
		MovieID:   comment.MovieID.String(),
		UserID:    comment.UserID.String(),
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt,
	}
}

func ReplyToResponse(reply *entity.Reply) ReplyResponse {
	return ReplyResponse{
		ID:        reply.ID.String(),
		CommentID: reply.CommentID.String(),
		UserID:    reply.UserID.String(),
		Body:      reply.Body,
		CreatedAt: reply.CreatedAt,
	}
}

// MovieWithComments nests each reply under its comment, keeping storage order.
func MovieWithComments(movie *entity.Movie, comments []*entity.Comment, replies []*entity.Reply) MovieCommentsResponse {
	byComment := make(map[string][]ReplyResponse, len(comments))
	for _, reply := range replies {
		key := reply.CommentID.String()
		byComment[key] = append(byComment[key], ReplyToResponse(reply))
	}

	resp := MovieCommentsResponse{
		MovieResponse: MovieToResponse(movie),
		Comments:      make([]CommentWithRepliesResponse, len(comments)),
	}
	for i, comment := range comments {
		c := CommentToResponse(comment)
		nested := byComment[c.ID]
		if nested == nil {
			nested = []ReplyResponse{}
		}
		resp.Comments[i] = CommentWithRepliesResponse{CommentResponse: c, Replies: nested}
	}
	return resp
}
