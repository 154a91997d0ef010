package domain

import "time"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxReasonLength  = 500
	MaxNotesLength   = 500
	MaxPurposeLength = 255
)

// InactiveBookingStatuses bookings in these statuses free their slot and capacity
var InactiveBookingStatuses = []BookingStatus{
	BookingCancelled,
	BookingRejected,
}

// DateOnly truncates t to midnight in its own location
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameCalendarDate compares calendar dates ignoring time of day and location
func SameCalendarDate(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}

// CalendarBefore reports whether a's calendar date is strictly before b's
func CalendarBefore(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	if ya != yb {
		return ya < yb
	}
	if ma != mb {
		return ma < mb
	}
	return da < db
}
