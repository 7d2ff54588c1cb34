package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"
	"movie-catalog/internal/data/repository/memory"
	"movie-catalog/internal/dto/request"
	"movie-catalog/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	repo   *repository.Repository
	tokens *utils.TokenManager
	svc    *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repo := memory.NewRepository()
	tokens := utils.NewTokenManager("test-secret", "movie-catalog", 30*time.Minute)
	return &fixture{
		repo:   repo,
		tokens: tokens,
		svc:    NewService(repo, tokens, zap.NewNop()),
	}
}

func (f *fixture) register(t *testing.T, email string) *entity.User {
	t.Helper()
	ctx := context.Background()
	resp, err := f.svc.Auth.Register(ctx, &request.RegisterRequest{Email: email, Password: "secret"})
	require.NoError(t, err)

	user, err := f.repo.User.FindByID(ctx, uuid.MustParse(resp.ID))
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func (f *fixture) movie(t *testing.T, owner *entity.User, title, genre string) string {
	t.Helper()
	resp, err := f.svc.Movie.CreateMovie(context.Background(), owner, &request.MovieRequest{Title: title, Genre: genre})
	require.NoError(t, err)
	return resp.ID
}

func detail(t *testing.T, err error) string {
	t.Helper()
	var svcErr *Error
	require.True(t, errors.As(err, &svcErr), "expected *Error, got %v", err)
	return svcErr.Detail
}

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "a@example.com")

	assert.NotEqual(t, "secret", user.PasswordHash)
	assert.True(t, utils.CheckPasswordHash("secret", user.PasswordHash))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@example.com")

	_, err := f.svc.Auth.Register(context.Background(), &request.RegisterRequest{Email: "a@example.com", Password: "other"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Auth.Register(context.Background(), &request.RegisterRequest{Email: "not-an-email"})
	require.ErrorIs(t, err, ErrValidation)

	var svcErr *Error
	require.True(t, errors.As(err, &svcErr))
	assert.Contains(t, svcErr.Fields, "email")
	assert.Contains(t, svcErr.Fields, "password")
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "a@example.com")
	ctx := context.Background()

	t.Run("valid credentials issue a token for the user", func(t *testing.T) {
		resp, err := f.svc.Auth.Login(ctx, &request.LoginRequest{Username: "a@example.com", Password: "secret"})
		require.NoError(t, err)
		assert.Equal(t, "bearer", resp.TokenType)

		id, err := f.tokens.Validate(resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID, id)
	})

	t.Run("unknown email and wrong password look the same", func(t *testing.T) {
		_, errUnknown := f.svc.Auth.Login(ctx, &request.LoginRequest{Username: "b@example.com", Password: "secret"})
		_, errWrong := f.svc.Auth.Login(ctx, &request.LoginRequest{Username: "a@example.com", Password: "wrong"})

		require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
		require.ErrorIs(t, errWrong, ErrInvalidCredentials)
		assert.Equal(t, detail(t, errUnknown), detail(t, errWrong))
	})
}

func TestLogin_UnknownEmailStillVerifiesAHash(t *testing.T) {
	f := newFixture(t)
	f.register(t, "a@example.com")

	svc := NewAuthService(f.repo.User, f.tokens, zap.NewNop()).(*authService)
	var hashes []string
	svc.comparePassword = func(password, hash string) (bool, error) {
		hashes = append(hashes, hash)
		return utils.ComparePassword(password, hash)
	}
	ctx := context.Background()

	_, err := svc.Login(ctx, &request.LoginRequest{Username: "nobody@example.com", Password: "secret"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.Len(t, hashes, 1)
	assert.Equal(t, dummyHash(), hashes[0])

	_, err = svc.Login(ctx, &request.LoginRequest{Username: "a@example.com", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.Len(t, hashes, 2)
	assert.NotEqual(t, dummyHash(), hashes[1])
}

func TestGetUser(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "a@example.com")
	ctx := context.Background()

	resp, err := f.svc.User.GetUser(ctx, user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", resp.Email)

	_, err = f.svc.User.GetUser(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.svc.User.GetUser(ctx, "42")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestGetMovies_SearchAndPagination(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, "a@example.com")
	ctx := context.Background()

	for i, genre := range []string{"Drama", "Comedy", "Sci-Fi Drama", "drama", "Horror"} {
		f.movie(t, owner, fmt.Sprintf("movie-%d", i), genre)
	}

	tests := []struct {
		name string
		req  request.ListMoviesRequest
		want []string
	}{
		{"default limit returns everything in insertion order", request.ListMoviesRequest{Limit: request.DefaultLimit}, []string{"movie-0", "movie-1", "movie-2", "movie-3", "movie-4"}},
		{"search is a case-sensitive substring", request.ListMoviesRequest{Limit: request.DefaultLimit, Search: "Drama"}, []string{"movie-0", "movie-2"}},
		{"skip then limit", request.ListMoviesRequest{Skip: 1, Limit: 2}, []string{"movie-1", "movie-2"}},
		{"skip past the end", request.ListMoviesRequest{Limit: request.DefaultLimit, Skip: 10}, []string{}},
		{"zero limit is an empty page", request.ListMoviesRequest{Limit: 0}, []string{}},
		{"percent is literal", request.ListMoviesRequest{Limit: request.DefaultLimit, Search: "%"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			movies, err := f.svc.Movie.GetMovies(ctx, &req)
			require.NoError(t, err)

			titles := []string{}
			for _, m := range movies {
				titles = append(titles, m.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestListMoviesRequest_Normalize(t *testing.T) {
	req := request.ListMoviesRequest{Limit: 1000, Skip: -3}
	req.Normalize()
	assert.Equal(t, request.MaxLimit, req.Limit)
	assert.Equal(t, 0, req.Skip)

	req = request.ListMoviesRequest{Limit: -5}
	req.Normalize()
	assert.Equal(t, request.DefaultLimit, req.Limit)

	req = request.ListMoviesRequest{}
	req.Normalize()
	assert.Equal(t, 0, req.Limit)
}

func TestUpdateMovie(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, "owner@example.com")
	other := f.register(t, "other@example.com")
	movieID := f.movie(t, owner, "Alien", "Horror")
	ctx := context.Background()

	t.Run("owner updates only the given fields", func(t *testing.T) {
		year := 1979
		resp, err := f.svc.Movie.UpdateMovie(ctx, owner, movieID, &request.MovieUpdateRequest{ReleaseYear: &year})
		require.NoError(t, err)
		assert.Equal(t, "Alien", resp.Title)
		assert.Equal(t, "Horror", resp.Genre)
		require.NotNil(t, resp.ReleaseYear)
		assert.Equal(t, 1979, *resp.ReleaseYear)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		title := "Aliens"
		_, err := f.svc.Movie.UpdateMovie(ctx, other, movieID, &request.MovieUpdateRequest{Title: &title})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("missing movie is not found before ownership", func(t *testing.T) {
		title := "Aliens"
		_, err := f.svc.Movie.UpdateMovie(ctx, other, uuid.NewString(), &request.MovieUpdateRequest{Title: &title})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("empty title is rejected", func(t *testing.T) {
		empty := ""
		_, err := f.svc.Movie.UpdateMovie(ctx, owner, movieID, &request.MovieUpdateRequest{Title: &empty})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestDeleteMovie(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, "owner@example.com")
	other := f.register(t, "other@example.com")
	movieID := f.movie(t, owner, "Alien", "Horror")
	ctx := context.Background()

	_, err := f.svc.Comment.CreateComment(ctx, other, &request.CreateCommentRequest{MovieID: movieID, Body: "great"})
	require.NoError(t, err)

	err = f.svc.Movie.DeleteMovie(ctx, other, movieID)
	require.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, f.svc.Movie.DeleteMovie(ctx, owner, movieID))

	_, err = f.svc.Movie.GetMovieByID(ctx, movieID)
	assert.ErrorIs(t, err, ErrNotFound)

	comments, err := f.repo.Comment.FindByMovieID(ctx, uuid.MustParse(movieID))
	require.NoError(t, err)
	assert.Empty(t, comments)

	err = f.svc.Movie.DeleteMovie(ctx, owner, movieID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestComments(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "a@example.com")
	movieID := f.movie(t, user, "Alien", "Horror")
	ctx := context.Background()

	_, err := f.svc.Comment.GetComments(ctx, movieID)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "No comments found", detail(t, err))

	first, err := f.svc.Comment.CreateComment(ctx, user, &request.CreateCommentRequest{MovieID: movieID, Body: "first"})
	require.NoError(t, err)
	_, err = f.svc.Comment.CreateComment(ctx, user, &request.CreateCommentRequest{MovieID: movieID, Body: "second"})
	require.NoError(t, err)

	_, err = f.svc.Comment.ReplyToComment(ctx, user, &request.CreateReplyRequest{CommentID: first.ID, Body: "agreed"})
	require.NoError(t, err)

	resp, err := f.svc.Comment.GetComments(ctx, movieID)
	require.NoError(t, err)
	assert.Equal(t, "Alien", resp.Title)
	require.Len(t, resp.Comments, 2)
	assert.Equal(t, "first", resp.Comments[0].Body)
	require.Len(t, resp.Comments[0].Replies, 1)
	assert.Equal(t, "agreed", resp.Comments[0].Replies[0].Body)
	assert.Empty(t, resp.Comments[1].Replies)

	t.Run("unknown movie", func(t *testing.T) {
		_, err := f.svc.Comment.CreateComment(ctx, user, &request.CreateCommentRequest{MovieID: uuid.NewString(), Body: "x"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown comment", func(t *testing.T) {
		_, err := f.svc.Comment.ReplyToComment(ctx, user, &request.CreateReplyRequest{CommentID: uuid.NewString(), Body: "x"})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestRatings(t *testing.T) {
	f := newFixture(t)
	a := f.register(t, "a@example.com")
	b := f.register(t, "b@example.com")
	movieID := f.movie(t, a, "Alien", "Horror")
	ctx := context.Background()

	_, err := f.svc.Rating.GetRatings(ctx, movieID)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "No ratings found", detail(t, err))

	_, err = f.svc.Rating.RateMovie(ctx, a, &request.CreateRatingRequest{MovieID: movieID, Score: 5})
	require.NoError(t, err)
	_, err = f.svc.Rating.RateMovie(ctx, b, &request.CreateRatingRequest{MovieID: movieID, Score: 2})
	require.NoError(t, err)

	t.Run("second rating by the same user conflicts", func(t *testing.T) {
		_, err := f.svc.Rating.RateMovie(ctx, a, &request.CreateRatingRequest{MovieID: movieID, Score: 1})
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("score out of range", func(t *testing.T) {
		_, err := f.svc.Rating.RateMovie(ctx, b, &request.CreateRatingRequest{MovieID: movieID, Score: 6})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown movie", func(t *testing.T) {
		_, err := f.svc.Rating.RateMovie(ctx, b, &request.CreateRatingRequest{MovieID: uuid.NewString(), Score: 3})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	resp, err := f.svc.Rating.GetRatings(ctx, movieID)
	require.NoError(t, err)
	assert.Len(t, resp.Ratings, 2)
	assert.Equal(t, int64(2), resp.RatingCount)
	assert.InDelta(t, 3.5, resp.AverageScore, 0.0001)
}

// The unique (user, movie) rule holds even when the existence check is bypassed.
func TestRatingRepository_RejectsDuplicate(t *testing.T) {
	f := newFixture(t)
	user := f.register(t, "a@example.com")
	movieID := uuid.MustParse(f.movie(t, user, "Alien", "Horror"))
	ctx := context.Background()

	newRating := func() *entity.Rating {
		return &entity.Rating{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
			MovieID:    movieID,
			UserID:     user.ID,
			Score:      4,
		}
	}

	require.NoError(t, f.repo.Rating.Create(ctx, newRating()))
	assert.ErrorIs(t, f.repo.Rating.Create(ctx, newRating()), repository.ErrDuplicate)
}
