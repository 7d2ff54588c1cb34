package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// writeServiceError maps usecase errors onto HTTP responses. Anything that is
// not a *usecase.Error is logged and hidden behind a 500.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var svcErr *usecase.Error
	if !errors.As(err, &svcErr) {
		if errors.Is(err, context.Canceled) {
			log.Info(operation+" cancelled by client", zap.Error(err))
		} else {
			log.Error(operation+" failed", zap.Error(err), zap.String("operation", operation))
		}
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	log.Debug(operation+" rejected",
		zap.String("reason", svcErr.Kind.Error()),
		zap.String("detail", svcErr.Detail))

	switch {
	case errors.Is(err, usecase.ErrValidation):
		var fields any
		if len(svcErr.Fields) > 0 {
			fields = svcErr.Fields
		}
		utils.ResponseBadRequest(w, svcErr.Detail, fields)
	case errors.Is(err, usecase.ErrNotFound):
		utils.ResponseNotFound(w, svcErr.Detail)
	case errors.Is(err, usecase.ErrForbidden), errors.Is(err, usecase.ErrInvalidCredentials):
		utils.ResponseForbidden(w, svcErr.Detail)
	case errors.Is(err, usecase.ErrConflict):
		utils.ResponseConflict(w, svcErr.Detail)
	default:
		log.Error(operation+" failed with unmapped error", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// currentUser returns the caller set by middleware.Authenticate.
func currentUser(w http.ResponseWriter, r *http.Request) (*entity.User, bool) {
	user, ok := utils.GetCurrentUser(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Could not validate credentials")
		return nil, false
	}
	return user, true
}
