package entity

import (
	"github.com/google/uuid"
)

type Movie struct {
	Base
	Title       string    `db:"title"`
	Genre       string    `db:"genre"`
	Description *string   `db:"description"`
	ReleaseYear *int      `db:"release_year"`
	UserID      uuid.UUID `db:"user_id"` // owner
}

// OwnedBy reports whether userID created the movie.
func (m *Movie) OwnedBy(userID uuid.UUID) bool {
	return m.UserID == userID
}
