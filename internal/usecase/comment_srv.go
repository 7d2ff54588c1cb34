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

type CommentService interface {
	CreateComment(ctx context.Context, author *entity.User, req *request.CreateCommentRequest) (*response.CommentResponse, error)
	GetComments(ctx context.Context, movieID string) (*response.MovieCommentsResponse, error)
	ReplyToComment(ctx context.Context, author *entity.User, req *request.CreateReplyRequest) (*response.ReplyResponse, error)
}

type commentService struct {
	repo *repository.Repository // movies, comments and replies
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("service", "comment")),
	}
}

func (s *commentService) CreateComment(ctx context.Context, author *entity.User, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
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

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now().UTC(),
		},
		MovieID: movieID,
		UserID:  author.ID,
		Body:    req.Body,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		// movie deleted after the lookup
		if errors.Is(err, repository.ErrReferenceMissing) {
			return nil, newError(ErrNotFound, "Movie with id:%s not found", movieID)
		}
		return nil, fmt.Errorf("create comment: %w", err)
	}

	s.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("movie_id", movieID.String()),
		zap.String("user_id", author.ID.String()),
	)

	resp := response.CommentToResponse(comment)
	return &resp, nil
}

func (s *commentService) GetComments(ctx context.Context, movieID string) (*response.MovieCommentsResponse, error) {
	id, err := parseID("movie", movieID)
	if err != nil {
		return nil, err
	}

	movie, err := findMovie(ctx, s.repo.Movie, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.Comment.FindByMovieID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get comments: %w", err)
	}
	if len(comments) == 0 {
		return nil, newError(ErrNotFound, "No comments found")
	}

	commentIDs := make([]uuid.UUID, len(comments))
	for i, comment := range comments {
		commentIDs[i] = comment.ID
	}

	replies, err := s.repo.Reply.FindByCommentIDs(ctx, commentIDs)
	if err != nil {
		return nil, fmt.Errorf("get replies: %w", err)
	}

	s.log.Info("Comments retrieved",
		zap.String("movie_id", id.String()),
		zap.String("title", movie.Title),
		zap.Int("comments", len(comments)),
		zap.Int("replies", len(replies)),
	)

	resp := response.MovieWithComments(movie, comments, replies)
	return &resp, nil
}

func (s *commentService) ReplyToComment(ctx context.Context, author *entity.User, req *request.CreateReplyRequest) (*response.ReplyResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	commentID, err := parseID("comment", req.CommentID)
	if err != nil {
		return nil, err
	}

	comment, err := s.repo.Comment.FindByID(ctx, commentID)
	if err != nil {
		return nil, fmt.Errorf("find comment %s: %w", commentID, err)
	}
	if comment == nil {
		return nil, newError(ErrNotFound, "Comment with id:%s not found", commentID)
	}

	reply := &entity.Reply{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now().UTC(),
		},
		CommentID: commentID,
		UserID:    author.ID,
		Body:      req.Body,
	}

	if err := s.repo.Reply.Create(ctx, reply); err != nil {
		if errors.Is(err, repository.ErrReferenceMissing) {
			return nil, newError(ErrNotFound, "Comment with id:%s not found", commentID)
		}
		return nil, fmt.Errorf("create reply: %w", err)
	}

	s.log.Info("Reply created",
		zap.String("reply_id", reply.ID.String()),
		zap.String("comment_id", commentID.String()),
		zap.String("user_id", author.ID.String()),
	)

	resp := response.ReplyToResponse(reply)
	return &resp, nil
}
