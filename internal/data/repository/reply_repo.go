package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReplyRepository interface {
	Create(ctx context.Context, reply *entity.Reply) error
	// FindByCommentIDs returns the replies of every given comment, oldest first.
	FindByCommentIDs(ctx context.Context, commentIDs []uuid.UUID) ([]*entity.Reply, error)
}

type replyRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReplyRepository(db database.PgxIface, log *zap.Logger) ReplyRepository {
	return &replyRepository{
		db:  db,
		log: log.With(zap.String("repository", "reply")),
	}
}

func (r *replyRepository) Create(ctx context.Context, reply *entity.Reply) error {
	query := `
		INSERT INTO replies (id, comment_id, user_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		reply.ID,
		reply.CommentID,
		reply.UserID,
		reply.Body,
		reply.CreatedAt,
	)

	if err != nil {
		err = classify(err)
		if !errors.Is(err, ErrReferenceMissing) {
			r.log.Error("Failed to create reply",
				zap.Error(err),
				zap.String("comment_id", reply.CommentID.String()),
				zap.String("user_id", reply.UserID.String()),
			)
		}
		return fmt.Errorf("create reply on comment %s: %w", reply.CommentID.String(), err)
	}

	return nil
}

func (r *replyRepository) FindByCommentIDs(ctx context.Context, commentIDs []uuid.UUID) ([]*entity.Reply, error) {
	if len(commentIDs) == 0 {
		return nil, nil
	}

	ids := make([]string, len(commentIDs))
	for i, id := range commentIDs {
		ids[i] = id.String()
	}

	query := `
		SELECT id, comment_id, user_id, body, created_at
		FROM replies
		WHERE comment_id = ANY($1::uuid[])
		ORDER BY created_at ASC, id ASC
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find replies by comment IDs",
			zap.Error(err),
			zap.Int("comment_count", len(commentIDs)),
		)
		return nil, fmt.Errorf("find replies for %d comments: %w", len(commentIDs), err)
	}
	defer rows.Close()

	var replies []*entity.Reply
	for rows.Next() {
		var reply entity.Reply
		if err := rows.Scan(
			&reply.ID,
			&reply.CommentID,
			&reply.UserID,
			&reply.Body,
			&reply.CreatedAt,
		); err != nil {
			r.log.Error("Failed to scan reply row", zap.Error(err))
			return nil, fmt.Errorf("scan reply row: %w", err)
		}
		replies = append(replies, &reply)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reply rows: %w", err)
	}

	return replies, nil
}
