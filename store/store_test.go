package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestTranslate(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, translate(nil, "ignored"))
	})

	t.Run("not found", func(t *testing.T) {
		err := translate(status.Error(codes.NotFound, "no document"), "failed to get workouts/abc")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Contains(t, err.Error(), "workouts/abc")
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		cause := status.Error(codes.PermissionDenied, "denied")
		err := translate(cause, "failed to update session s1")
		assert.False(t, errors.Is(err, ErrNotFound))
		assert.ErrorIs(t, err, cause)
	})
}
