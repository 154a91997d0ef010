package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentStatus represents the processing status of a document request
type DocumentStatus string

const (
	DocumentPending    DocumentStatus = "pending"
	DocumentProcessing DocumentStatus = "processing"
	DocumentReady      DocumentStatus = "ready"
	DocumentCompleted  DocumentStatus = "completed"
	DocumentRejected   DocumentStatus = "rejected"
	DocumentCancelled  DocumentStatus = "cancelled"
)

// DocumentRequest a client's request for a certificate (baptismal, marriage, ...)
type DocumentRequest struct {
	ID             int64
	UserID         int64
	DocumentTypeID int64
	Fee            decimal.Decimal // snapshot of the type fee at creation
	Purpose        *string
	Status         DocumentStatus
	PaymentStatus  PaymentStatus
	ProcessedBy    *int64

	RejectionReason    *string
	CancellationReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the request has not been voided
func (d *DocumentRequest) IsActive() bool {
	return d.Status != DocumentRejected && d.Status != DocumentCancelled
}

// RequiresPayment reports whether the approval guard applies
func (d *DocumentRequest) RequiresPayment() bool {
	return d.Fee.IsPositive()
}

// DocumentRequestWithType request joined with its document type name
type DocumentRequestWithType struct {
	DocumentRequest
	TypeName string
}

// DocumentFilter filters document request listings
type DocumentFilter struct {
	UserID *int64
	Status *DocumentStatus
}
