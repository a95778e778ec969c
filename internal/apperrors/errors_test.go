package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorUnwrapsToSentinel(t *testing.T) {
	err := fmt.Errorf("lookup failed: %w", NewNotFoundError("currency XYZ not found"))

	assert.True(t, errors.Is(err, ErrNotFound), "wrapped AppError should match ErrNotFound")
	assert.Contains(t, err.Error(), "currency XYZ not found")
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidationError("bad amount"), http.StatusBadRequest},
		{"unsupported file", fmt.Errorf("upload: %w", ErrUnsupportedFile), http.StatusBadRequest},
		{"duplicate", ErrDuplicate, http.StatusConflict},
		{"transition", ErrInvalidTransition, http.StatusConflict},
		{"explicit code", NewAppError(http.StatusServiceUnavailable, "db down", errors.New("dial")), http.StatusServiceUnavailable},
		{"plain", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}
