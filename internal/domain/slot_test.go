package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvailableSlot_IsFree(t *testing.T) {
	slots := map[string]AvailableSlot{
		"free":    {},
		"taken":   {Taken: true},
		"blocked": {Blocked: true},
		"both":    {Taken: true, Blocked: true},
	}

	assert.True(t, slots["free"].IsFree())
	assert.False(t, slots["taken"].IsFree())
	assert.False(t, slots["blocked"].IsFree())
	assert.False(t, slots["both"].IsFree())
}

func TestDaySlots_RemainingCapacity(t *testing.T) {
	assert.Equal(t, 2, (&DaySlots{MaxBookingsPerDay: 3, BookedToday: 1}).RemainingCapacity())
	assert.Equal(t, 0, (&DaySlots{MaxBookingsPerDay: 1, BookedToday: 2}).RemainingCapacity())
}
