// Package memory implements the repository interfaces on top of in-process
// maps. It enforces the same unique and foreign key rules as the SQL schema
// (unique email, one rating per user and movie, cascading movie deletes), so
// services and handlers can be exercised without a database.
package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/data/repository"

	"github.com/google/uuid"
)

type store struct {
	mu       sync.RWMutex
	users    []*entity.User
	movies   []*entity.Movie
	comments []*entity.Comment
	replies  []*entity.Reply
	ratings  []*entity.Rating
}

// NewRepository returns a Repository whose tables live in memory.
func NewRepository() *repository.Repository {
	s := &store{}
	return &repository.Repository{
		User:    &userRepo{s},
		Movie:   &movieRepo{s},
		Comment: &commentRepo{s},
		Reply:   &replyRepo{s},
		Rating:  &ratingRepo{s},
	}
}

func (s *store) userExists(id uuid.UUID) bool {
	for _, u := range s.users {
		if u.ID == id {
			return true
		}
	}
	return false
}

func (s *store) movieIndex(id uuid.UUID) int {
	for i, m := range s.movies {
		if m.ID == id {
			return i
		}
	}
	return -1
}

func (s *store) commentExists(id uuid.UUID) bool {
	for _, c := range s.comments {
		if c.ID == id {
			return true
		}
	}
	return false
}

// ==================== USERS ====================

type userRepo struct{ s *store }

func (r *userRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return fmt.Errorf("create user %s: %w", user.Email, repository.ErrDuplicate)
		}
	}
	cp := *user
	r.s.users = append(r.s.users, &cp)
	return nil
}

func (r *userRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *userRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// ==================== MOVIES ====================

type movieRepo struct{ s *store }

func (r *movieRepo) Create(_ context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.s.userExists(movie.UserID) {
		return fmt.Errorf("create movie: %w", repository.ErrReferenceMissing)
	}
	cp := *movie
	r.s.movies = append(r.s.movies, &cp)
	return nil
}

func (r *movieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if i := r.s.movieIndex(id); i >= 0 {
		cp := *r.s.movies[i]
		return &cp, nil
	}
	return nil, nil
}

func (r *movieRepo) FindAll(_ context.Context, filter repository.MovieFilter) ([]*entity.Movie, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	movies := []*entity.Movie{}
	skipped := 0
	for _, m := range r.s.movies {
		if !strings.Contains(m.Genre, filter.Search) {
			continue
		}
		if skipped < filter.Offset {
			skipped++
			continue
		}
		if len(movies) == filter.Limit {
			break
		}
		cp := *m
		movies = append(movies, &cp)
	}
	return movies, nil
}

func (r *movieRepo) Update(_ context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.movieIndex(movie.ID)
	if i < 0 {
		return fmt.Errorf("update movie %s: %w", movie.ID, repository.ErrNotFound)
	}
	cp := *movie
	r.s.movies[i] = &cp
	return nil
}

func (r *movieRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	i := r.s.movieIndex(id)
	if i < 0 {
		return fmt.Errorf("delete movie %s: %w", id, repository.ErrNotFound)
	}
	r.s.movies = append(r.s.movies[:i], r.s.movies[i+1:]...)

	// cascade
	removed := map[uuid.UUID]bool{}
	comments := r.s.comments[:0]
	for _, c := range r.s.comments {
		if c.MovieID == id {
			removed[c.ID] = true
			continue
		}
		comments = append(comments, c)
	}
	r.s.comments = comments

	replies := r.s.replies[:0]
	for _, rp := range r.s.replies {
		if !removed[rp.CommentID] {
			replies = append(replies, rp)
		}
	}
	r.s.replies = replies

	ratings := r.s.ratings[:0]
	for _, rt := range r.s.ratings {
		if rt.MovieID != id {
			ratings = append(ratings, rt)
		}
	}
	r.s.ratings = ratings

	return nil
}

// ==================== COMMENTS ====================

type commentRepo struct{ s *store }

func (r *commentRepo) Create(_ context.Context, comment *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.movieIndex(comment.MovieID) < 0 || !r.s.userExists(comment.UserID) {
		return fmt.Errorf("create comment on movie %s: %w", comment.MovieID, repository.ErrReferenceMissing)
	}
	cp := *comment
	r.s.comments = append(r.s.comments, &cp)
	return nil
}

func (r *commentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.comments {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *commentRepo) FindByMovieID(_ context.Context, movieID uuid.UUID) ([]*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var comments []*entity.Comment
	for _, c := range r.s.comments {
		if c.MovieID == movieID {
			cp := *c
			comments = append(comments, &cp)
		}
	}
	return comments, nil
}

// ==================== REPLIES ====================

type replyRepo struct{ s *store }

func (r *replyRepo) Create(_ context.Context, reply *entity.Reply) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if !r.s.commentExists(reply.CommentID) || !r.s.userExists(reply.UserID) {
		return fmt.Errorf("create reply on comment %s: %w", reply.CommentID, repository.ErrReferenceMissing)
	}
	cp := *reply
	r.s.replies = append(r.s.replies, &cp)
	return nil
}

func (r *replyRepo) FindByCommentIDs(_ context.Context, commentIDs []uuid.UUID) ([]*entity.Reply, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := make(map[uuid.UUID]bool, len(commentIDs))
	for _, id := range commentIDs {
		wanted[id] = true
	}

	var replies []*entity.Reply
	for _, rp := range r.s.replies {
		if wanted[rp.CommentID] {
			cp := *rp
			replies = append(replies, &cp)
		}
	}
	return replies, nil
}

// ==================== RATINGS ====================

type ratingRepo struct{ s *store }

func (r *ratingRepo) Create(_ context.Context, rating *entity.Rating) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.movieIndex(rating.MovieID) < 0 || !r.s.userExists(rating.UserID) {
		return fmt.Errorf("create rating for movie %s: %w", rating.MovieID, repository.ErrReferenceMissing)
	}
	for _, rt := range r.s.ratings {
		if rt.UserID == rating.UserID && rt.MovieID == rating.MovieID {
			return fmt.Errorf("create rating for movie %s: %w", rating.MovieID, repository.ErrDuplicate)
		}
	}
	cp := *rating
	r.s.ratings = append(r.s.ratings, &cp)
	return nil
}

func (r *ratingRepo) FindByUserAndMovie(_ context.Context, userID, movieID uuid.UUID) (*entity.Rating, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, rt := range r.s.ratings {
		if rt.UserID == userID && rt.MovieID == movieID {
			cp := *rt
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ratingRepo) FindByMovieID(_ context.Context, movieID uuid.UUID) ([]*entity.Rating, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var ratings []*entity.Rating
	for _, rt := range r.s.ratings {
		if rt.MovieID == movieID {
			cp := *rt
			ratings = append(ratings, &cp)
		}
	}
	return ratings, nil
}

func (r *ratingRepo) GetMovieRatingStats(_ context.Context, movieID uuid.UUID) (float64, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var sum, count int64
	for _, rt := range r.s.ratings {
		if rt.MovieID == movieID {
			sum += int64(rt.Score)
			count++
		}
	}
	if count == 0 {
		return 0, 0, nil
	}
	return float64(sum) / float64(count), count, nil
}
