package middleware

import (
	"errors"
	"net/http"
	"strings"

	"movie-catalog/internal/data/repository"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

const credentialsError = "Could not validate credentials"

// Authenticate resolves the bearer token to a stored user and puts it on the
// request context. Every rejection carries the same 401 body.
func Authenticate(tokens *utils.TokenManager, users repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	logger = logger.With(zap.String("middleware", "auth"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Extract token
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				utils.ResponseUnauthorized(w, credentialsError)
				return
			}

			// 2. Verify signature and expiry
			userID, err := tokens.Validate(token)
			if err != nil {
				level := zap.InfoLevel
				if !errors.Is(err, utils.ErrTokenExpired) {
					level = zap.WarnLevel
				}
				logger.Log(level, "Token rejected",
					zap.Error(err),
					zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, credentialsError)
				return
			}

			// 3. The user must still exist
			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				logger.Error("Failed to load user for token",
					zap.Error(err),
					zap.String("user_id", userID.String()))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if user == nil {
				logger.Warn("Token for unknown user", zap.String("user_id", userID.String()))
				utils.ResponseUnauthorized(w, credentialsError)
				return
			}

			ctx := utils.SetCurrentUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken accepts "Bearer <token>" with any casing of the scheme.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
