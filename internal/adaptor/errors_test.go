package adaptor

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"movie-catalog/internal/usecase"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWriteServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{
			name:   "validation carries field errors",
			err:    &usecase.Error{Kind: usecase.ErrValidation, Detail: "Validation failed", Fields: map[string]string{"score": "Maximum is 5"}},
			status: http.StatusBadRequest,
			body:   `{"detail":"Validation failed","errors":{"score":"Maximum is 5"}}`,
		},
		{
			name:   "not found",
			err:    fmt.Errorf("wrapped: %w", &usecase.Error{Kind: usecase.ErrNotFound, Detail: "No ratings found"}),
			status: http.StatusNotFound,
			body:   `{"detail":"No ratings found"}`,
		},
		{
			name:   "forbidden",
			err:    &usecase.Error{Kind: usecase.ErrForbidden, Detail: "Not authorized to perform requested action"},
			status: http.StatusForbidden,
			body:   `{"detail":"Not authorized to perform requested action"}`,
		},
		{
			name:   "bad credentials",
			err:    &usecase.Error{Kind: usecase.ErrInvalidCredentials, Detail: "Invalid Credentials"},
			status: http.StatusForbidden,
			body:   `{"detail":"Invalid Credentials"}`,
		},
		{
			name:   "conflict",
			err:    &usecase.Error{Kind: usecase.ErrConflict, Detail: "User has already rated this movie"},
			status: http.StatusConflict,
			body:   `{"detail":"User has already rated this movie"}`,
		},
		{
			name:   "storage failure is hidden",
			err:    errors.New("connection refused on 10.0.0.5"),
			status: http.StatusInternalServerError,
			body:   `{"detail":"Internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, zap.NewNop(), tt.err, "test")

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
		})
	}
}
