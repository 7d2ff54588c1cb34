package entity

import (
	"github.com/google/uuid"
)

type Rating struct {
	BaseSimple
	MovieID uuid.UUID `db:"movie_id"`
	UserID  uuid.UUID `db:"user_id"`
	Score   int       `db:"score"` // 1-5
}
