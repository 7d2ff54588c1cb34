package entity

import (
	"github.com/google/uuid"
)

type Comment struct {
	BaseSimple
	MovieID uuid.UUID `db:"movie_id"`
	UserID  uuid.UUID `db:"user_id"`
	Body    string    `db:"body"`
}

type Reply struct {
	BaseSimple
	CommentID uuid.UUID `db:"comment_id"`
	UserID    uuid.UUID `db:"user_id"`
	Body      string    `db:"body"`
}
