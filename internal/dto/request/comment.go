package request

type CreateCommentRequest struct {
	MovieID string `json:"movie_id" validate:"required,uuid"`
	Body    string `json:"body" validate:"required,min=1,max=2000"`
}

type CreateReplyRequest struct {
	CommentID string `json:"comment_id" validate:"required,uuid"`
	Body      string `json:"body" validate:"required,min=1,max=2000"`
}
