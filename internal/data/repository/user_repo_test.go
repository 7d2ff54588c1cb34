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

var userRowColumns = []string{"id", "email", "password", "created_at", "updated_at"}

func TestUserRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock, zap.NewNop())

	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: testTime, UpdatedAt: testTime},
		Email:        "a@example.com",
		PasswordHash: "$2a$10$hash",
	}
	mock.ExpectExec(`INSERT INTO users \(id, email, password, created_at, updated_at\)`).
		WithArgs(user.ID, user.Email, user.PasswordHash, testTime, testTime).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO users`).
		WithArgs(user.ID, user.Email, user.PasswordHash, testTime, testTime).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	require.NoError(t, repo.Create(context.Background(), user))

	err := repo.Create(context.Background(), user)
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Contains(t, err.Error(), "a@example.com")
}

func TestUserRepository_FindByEmail(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta(`FROM users`) + `\s+WHERE email = \$1`

	t.Run("found", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewUserRepository(mock, zap.NewNop())

		id := uuid.New()
		mock.ExpectQuery(query).
			WithArgs("a@example.com").
			WillReturnRows(pgxmock.NewRows(userRowColumns).
				AddRow(id, "a@example.com", "$2a$10$hash", testTime, testTime))

		user, err := repo.FindByEmail(ctx, "a@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, "$2a$10$hash", user.PasswordHash)
	})

	t.Run("unknown email", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewUserRepository(mock, zap.NewNop())

		mock.ExpectQuery(query).WithArgs("nobody@example.com").WillReturnError(pgx.ErrNoRows)

		user, err := repo.FindByEmail(ctx, "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("storage failure", func(t *testing.T) {
		mock := newMockPool(t)
		repo := NewUserRepository(mock, zap.NewNop())

		boom := errors.New("connection reset")
		mock.ExpectQuery(query).WithArgs("a@example.com").WillReturnError(boom)

		user, err := repo.FindByEmail(ctx, "a@example.com")
		assert.ErrorIs(t, err, boom)
		assert.Nil(t, user)
	})
}

func TestUserRepository_FindByID(t *testing.T) {
	mock := newMockPool(t)
	repo := NewUserRepository(mock, zap.NewNop())

	id := uuid.New()
	mock.ExpectQuery(`FROM users\s+WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(userRowColumns).
			AddRow(id, "a@example.com", "$2a$10$hash", testTime, testTime))

	user, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "a@example.com", user.Email)
	assert.Equal(t, testTime, user.CreatedAt)
}

func TestRepository_Ping(t *testing.T) {
	mock := newMockPool(t)
	repos := NewRepository(mock, zap.NewNop())

	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(errors.New("server gone"))

	assert.NoError(t, repos.Ping(context.Background()))
	assert.Error(t, repos.Ping(context.Background()))
}
