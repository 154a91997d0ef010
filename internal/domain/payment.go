package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus payment state carried on a document request or booking
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPending PaymentStatus = "pending"
	PaymentPaid    PaymentStatus = "paid"
)

// PaymentRecordStatus review state of a Payment row
type PaymentRecordStatus string

const (
	PaymentRecordPending  PaymentRecordStatus = "pending"
	PaymentRecordVerified PaymentRecordStatus = "verified"
	PaymentRecordRejected PaymentRecordStatus = "rejected"
)

// ReferenceType what a payment pays for
type ReferenceType string

const (
	ReferenceDocumentRequest ReferenceType = "document_request"
	ReferenceBooking         ReferenceType = "booking"
)

// PaymentMethod how the client paid
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "cash"
	MethodGCash        PaymentMethod = "gcash"
	MethodPayMaya      PaymentMethod = "paymaya"
	MethodBankTransfer PaymentMethod = "bank_transfer"
)

// IsValid reports whether m is one of the accepted methods
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodGCash, MethodPayMaya, MethodBankTransfer:
		return true
	default:
		return false
	}
}

// Payment one durable row per (ReferenceType, ReferenceID), updated in place on resubmission
type Payment struct {
	ID              int64
	UserID          int64
	ReferenceType   ReferenceType
	ReferenceID     int64
	Amount          decimal.Decimal
	Method          PaymentMethod
	ProofPath       *string
	Status          PaymentRecordStatus
	VerifiedBy      *int64
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Submission data for creating or resubmitting a payment
type Submission struct {
	UserID        int64
	ReferenceType ReferenceType
	ReferenceID   int64
	Amount        decimal.Decimal
	Method        PaymentMethod
	ProofPath     *string
}

// GatewayStatus outcome reported by the payment gateway callback
type GatewayStatus string

const (
	GatewayVerified GatewayStatus = "verified"
	GatewayFailed   GatewayStatus = "failed"
)
