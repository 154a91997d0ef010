package pgerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pq.Error{Code: CodeUniqueViolation, Constraint: "bookings_active_slot_uq"})

	assert.True(t, IsUniqueViolation(err, ""))
	assert.True(t, IsUniqueViolation(err, "bookings_active_slot_uq"))
	assert.False(t, IsUniqueViolation(err, "payments_reference_uq"))
	assert.False(t, IsUniqueViolation(errors.New("boom"), ""))
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, IsSerializationFailure(&pq.Error{Code: CodeSerializationFailure}))
	assert.True(t, IsSerializationFailure(fmt.Errorf("commit: %w", &pq.Error{Code: CodeDeadlockDetected})))
	assert.False(t, IsSerializationFailure(&pq.Error{Code: CodeUniqueViolation}))
	assert.False(t, IsSerializationFailure(nil))
}
