package domain

import (
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/types"
)

// OfficeHours opening window and timezone of the parish office.
// "Today" for past-date checks is evaluated in Location.
type OfficeHours struct {
	Open     types.TimeString
	Close    types.TimeString
	Location *time.Location
}

// Today returns the calendar date of now in the office timezone
func (o OfficeHours) Today(now time.Time) time.Time {
	loc := o.Location
	if loc == nil {
		loc = time.UTC
	}
	return DateOnly(now.In(loc))
}

// Now returns now expressed in the office timezone
func (o OfficeHours) Now(now time.Time) time.Time {
	if o.Location == nil {
		return now.UTC()
	}
	return now.In(o.Location)
}
