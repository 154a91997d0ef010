package domain

import "github.com/shopspring/decimal"

// BookingType a kind of appointment (Baptism, Wedding, Mass intention, ...)
type BookingType struct {
	ID                int64
	Name              string
	Fee               decimal.Decimal
	DurationMinutes   int
	MaxBookingsPerDay int
	IsActive          bool
}

// DocumentType a kind of certificate the office issues
type DocumentType struct {
	ID             int64
	Name           string
	Fee            decimal.Decimal
	ProcessingDays int
	IsActive       bool
}
