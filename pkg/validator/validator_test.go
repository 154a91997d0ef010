package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string `json:"name" validate:"required"`
	Method string `json:"paymentMethod" validate:"oneof=cash gcash"`
	Count  int    `json:"count" validate:"gt=0"`
}

func TestValidator_Struct(t *testing.T) {
	v := New()

	require.NoError(t, v.Struct(sample{Name: "Baptism", Method: "cash", Count: 1}))

	err := v.Struct(sample{Method: "card"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name: is required")
	assert.Contains(t, err.Error(), "paymentMethod: must be one of [cash gcash]")
	assert.Contains(t, err.Error(), "count: must be greater than 0")
}
