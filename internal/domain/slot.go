package domain

import "github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/types"

// AvailableSlot a start time on the office calendar for a booking type
type AvailableSlot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Taken     bool // an active booking of any type already starts here
	Blocked   bool // covered by a blocked date
}

// IsFree reports whether a new booking could start here, ignoring daily capacity
func (s AvailableSlot) IsFree() bool {
	return !s.Taken && !s.Blocked
}

// DaySlots availability for one booking type on one date
type DaySlots struct {
	Slots             []AvailableSlot
	MaxBookingsPerDay int
	BookedToday       int
}

// RemainingCapacity bookings of this type still admissible on the date
func (d *DaySlots) RemainingCapacity() int {
	left := d.MaxBookingsPerDay - d.BookedToday
	if left < 0 {
		return 0
	}
	return left
}
