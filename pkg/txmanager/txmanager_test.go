package txmanager

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestWithRetry_RetriesSerializationOnly(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), 2, func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return fmt.Errorf("%w: %w", ErrSerializationFailure, &pq.Error{Code: "40001"})
		}
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, calls)

	calls = 0
	boom := errors.New("boom")
	err = WithRetry(context.Background(), 2, func(ctx context.Context) error {
		calls++
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_GivesUp(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), 2, func(ctx context.Context) error {
		calls++
		return ErrSerializationFailure
	})
	assert.ErrorIs(t, err, ErrSerializationFailure)
	assert.Equal(t, 2, calls)
}
