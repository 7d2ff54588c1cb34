package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"movie-catalog/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var movieRowColumns = []string{"id", "title", "genre", "description", "release_year", "user_id", "created_at", "updated_at"}

func TestMovieRepository_FindAll(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("genre search is a positional strpos filter", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewMovieRepository(mock, zap.NewNop())

		id := uuid.New()
		mock.ExpectQuery(`^` + regexp.QuoteMeta(
			`SELECT `+movieColumns+` FROM movies WHERE strpos(genre, $1) > 0 ORDER BY created_at ASC, id ASC LIMIT $2 OFFSET $3`,
		) + `$`).
			WithArgs("Horror", 10, 5).
			WillReturnRows(pgxmock.NewRows(movieRowColumns).
				AddRow(id, "Alien", "Sci-Fi Horror", strPtr("In space"), intPtr(1979), owner, testTime, testTime))

		movies, err := repo.FindAll(ctx, MovieFilter{Search: "Horror", Limit: 10, Offset: 5})
		require.NoError(t, err)
		require.Len(t, movies, 1)
		assert.Equal(t, id, movies[0].ID)
		assert.Equal(t, "Alien", movies[0].Title)
		assert.Equal(t, "In space", *movies[0].Description)
		assert.Equal(t, 1979, *movies[0].ReleaseYear)
		assert.Equal(t, owner, movies[0].UserID)
	})

	t.Run("no search and no rows yields an empty slice", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewMovieRepository(mock, zap.NewNop())

		mock.ExpectQuery(`^` + regexp.QuoteMeta(
			`SELECT `+movieColumns+` FROM movies ORDER BY created_at ASC, id ASC LIMIT $1 OFFSET $2`,
		) + `$`).
			WithArgs(0, 0).
			WillReturnRows(pgxmock.NewRows(movieRowColumns))

		movies, err := repo.FindAll(ctx, MovieFilter{Limit: 0})
		require.NoError(t, err)
		assert.NotNil(t, movies)
		assert.Empty(t, movies)
	})

	t.Run("query failure is wrapped", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewMovieRepository(mock, zap.NewNop())

		boom := errors.New("connection reset")
		mock.ExpectQuery(`FROM movies`).WithArgs(10, 0).WillReturnError(boom)

		_, err := repo.FindAll(ctx, MovieFilter{Limit: 10})
		assert.ErrorIs(t, err, boom)
	})
}

func TestMovieRepository_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("missing row is nil without error", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewMovieRepository(mock, zap.NewNop())

		id := uuid.New()
		mock.ExpectQuery(regexp.QuoteMeta(`FROM movies WHERE id = $1`)).
			WithArgs(id).
			WillReturnError(pgx.ErrNoRows)

		movie, err := repo.FindByID(ctx, id)
		assert.NoError(t, err)
		assert.Nil(t, movie)
	})

	t.Run("nullable columns stay nil", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewMovieRepository(mock, zap.NewNop())

		id, owner := uuid.New(), uuid.New()
		mock.ExpectQuery(regexp.QuoteMeta(`FROM movies WHERE id = $1`)).
			WithArgs(id).
			WillReturnRows(pgxmock.NewRows(movieRowColumns).
				AddRow(id, "Heat", "Crime", (*string)(nil), (*int)(nil), owner, testTime, testTime))

		movie, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, movie)
		assert.Nil(t, movie.Description)
		assert.Nil(t, movie.ReleaseYear)
		assert.True(t, movie.OwnedBy(owner))
	})
}

func TestMovieRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	repo := NewMovieRepository(mock, zap.NewNop())

	movie := &entity.Movie{
		Base:   entity.Base{ID: uuid.New(), CreatedAt: testTime, UpdatedAt: testTime},
		Title:  "Heat",
		Genre:  "Crime",
		UserID: uuid.New(),
	}
	mock.ExpectExec(`INSERT INTO movies`).
		WithArgs(movie.ID, "Heat", "Crime", movie.Description, movie.ReleaseYear, movie.UserID, testTime, testTime).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO movies`).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "movies_user_id_fkey"})

	require.NoError(t, repo.Create(context.Background(), movie))
	assert.ErrorIs(t, repo.Create(context.Background(), movie), ErrReferenceMissing)
}

func TestMovieRepository_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	mock := newMockPool(t)
	repo := NewMovieRepository(mock, zap.NewNop())

	movie := &entity.Movie{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: testTime, UpdatedAt: testTime},
		Title:       "Heat",
		Genre:       "Crime",
		ReleaseYear: intPtr(1995),
	}

	mock.ExpectExec(`UPDATE movies\s+SET title = \$2, genre = \$3, description = \$4, release_year = \$5,\s+updated_at = \$6\s+WHERE id = \$1`).
		WithArgs(movie.ID, "Heat", "Crime", movie.Description, movie.ReleaseYear, testTime).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE movies`).
		WithArgs(movie.ID, "Heat", "Crime", movie.Description, movie.ReleaseYear, testTime).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM movies WHERE id = $1`)).
		WithArgs(movie.ID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM movies WHERE id = $1`)).
		WithArgs(movie.ID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, repo.Update(ctx, movie))
	assert.ErrorIs(t, repo.Update(ctx, movie), ErrNotFound)
	require.NoError(t, repo.Delete(ctx, movie.ID))
	assert.ErrorIs(t, repo.Delete(ctx, movie.ID), ErrNotFound)
}
