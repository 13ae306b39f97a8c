package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"morna/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRejectionError(t *testing.T) {
	t.Run("should format entity and detail", func(t *testing.T) {
		err := errs.NewAlreadyShippedError("container", "c-1", "container state is 3")

		assert.Equal(t, "ALREADY_SHIPPED: container c-1: container state is 3", err.Error())
		require.ErrorIs(t, err, errs.ErrAlreadyShipped)
	})

	t.Run("should unwrap invalid jump to invalid transition", func(t *testing.T) {
		err := errs.NewInvalidJumpError("order", "o-1", "4 -> 9")

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, errs.ReasonInvalidJump, errs.ReasonOf(err))
	})

	t.Run("should keep the cause reachable", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := errs.NewStoreFailureError(cause)

		require.ErrorIs(t, err, errs.ErrStoreFailure)
		require.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestReasonOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want errs.Reason
	}{
		{name: "nil", err: nil, want: ""},
		{name: "empty box", err: errs.NewEmptyBoxError("b-1"), want: errs.ReasonEmptyBox},
		{name: "conflict", err: errs.NewConflictError("box", "b-1"), want: errs.ReasonConflict},
		{
			name: "wrapped rejection",
			err:  fmt.Errorf("assign: %w", errs.NewInvalidTransitionError("order", "o-1", "x")),
			want: errs.ReasonInvalidTransition,
		},
		{name: "not found", err: errs.NewObjectNotFoundError("box", "b-1"), want: errs.ReasonNotFound},
		{name: "invalid value", err: errs.NewValueIsInvalidError("quantity"), want: errs.ReasonInvalidInput},
		{name: "required value", err: errs.NewValueIsRequiredError("id"), want: errs.ReasonInvalidInput},
		{name: "stale version", err: errs.NewVersionIsInvalidErrorWithCause("v"), want: errs.ReasonConflict},
		{name: "anything else", err: errors.New("dial tcp: refused"), want: errs.ReasonStoreFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errs.ReasonOf(tt.err))
		})
	}
}
