package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/types"
)

// BookingStatus represents the status of an appointment booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingApproved  BookingStatus = "approved"
	BookingRejected  BookingStatus = "rejected"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking represents an appointment for a sacrament or parish service
type Booking struct {
	ID            int64
	UserID        int64
	BookingTypeID int64
	Fee           decimal.Decimal // snapshot of the type fee at creation
	BookingDate   time.Time
	BookingTime   types.TimeString
	EndTime       types.TimeString
	Status        BookingStatus
	PaymentStatus PaymentStatus
	ApprovedBy    *int64
	Notes         *string

	RejectionReason    *string
	CancellationReason *string

	// Reschedule metadata; BookingDate/BookingTime already hold the new slot
	PreviousDate     *time.Time
	PreviousTime     *types.TimeString
	RescheduleReason *string
	RescheduledAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// IsActive reports whether a booking in this status holds a slot and counts toward capacity
func (s BookingStatus) IsActive() bool {
	return s != BookingCancelled && s != BookingRejected
}

// RequiresPayment reports whether the approval guard applies
func (b *Booking) RequiresPayment() bool {
	return b.Fee.IsPositive()
}

// BookingWithType booking joined with its type name for listings
type BookingWithType struct {
	Booking
	TypeName string
}

// BookingFilter filters booking listings; nil fields are not applied
type BookingFilter struct {
	UserID          *int64
	BookingTypeID   *int64
	StartDate       *time.Time
	EndDate         *time.Time
	Status          *BookingStatus
	IncludeInactive bool
}

// RescheduleChange new slot for an approved booking
type RescheduleChange struct {
	Date    time.Time
	Time    types.TimeString
	EndTime types.TimeString
	Reason  *string
}
