package repository

import (
	"context"

	"movie-catalog/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User    UserRepository
	Movie   MovieRepository
	Comment CommentRepository
	Reply   ReplyRepository
	Rating  RatingRepository

	db database.PgxIface
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Movie:   NewMovieRepository(db, log),
		Comment: NewCommentRepository(db, log),
		Reply:   NewReplyRepository(db, log),
		Rating:  NewRatingRepository(db, log),
		db:      db,
	}
}

// Ping checks the underlying storage. Repositories built without a database
// (in-memory) are always reachable.
func (r *Repository) Ping(ctx context.Context) error {
	if r.db == nil {
		return nil
	}
	return r.db.Ping(ctx)
}
