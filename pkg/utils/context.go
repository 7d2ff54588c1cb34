package utils

import (
	"context"

	"movie-catalog/internal/data/entity"
)

type contextKey string

const (
	CurrentUserKey contextKey = "current_user"
)

// SetCurrentUser stores the authenticated caller on the context.
func SetCurrentUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, CurrentUserKey, user)
}

// GetCurrentUser returns the caller set by the auth middleware.
func GetCurrentUser(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(CurrentUserKey).(*entity.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}
