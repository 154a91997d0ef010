package domain

import "time"

// StaffAbsence a period a staff member is away, both ends inclusive.
// ReassignTo is an informational hint for admins; no pending work is moved automatically.
type StaffAbsence struct {
	ID         int64
	StaffID    int64
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	ReassignTo *int64
	CreatedBy  int64
	CreatedAt  time.Time
}

// CoversDate reports whether date falls within [StartDate, EndDate]
func (a *StaffAbsence) CoversDate(date time.Time) bool {
	return !CalendarBefore(date, a.StartDate) && !CalendarBefore(a.EndDate, date)
}

// Workload pending items assigned to one staff member
type Workload struct {
	Documents int
	Bookings  int
	Payments  int
}

// Total sum of all pending items
func (w Workload) Total() int {
	return w.Documents + w.Bookings + w.Payments
}

// StaffWorkload availability and pending work of a staff member for a date
type StaffWorkload struct {
	Staff      User
	Date       time.Time
	Absent     bool
	Absence    *StaffAbsence
	ReassignTo *int64
	Pending    Workload
}
