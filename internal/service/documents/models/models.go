package models

import (
	"errors"
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

// ErrInvalidStatus возвращается при некорректном статусе
var ErrInvalidStatus = errors.New("invalid document request status")

// DocumentResponse ответ с данными заявки
type DocumentResponse struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"userId"`
	DocumentTypeID     int64     `json:"documentTypeId"`
	TypeName           string    `json:"typeName,omitempty"`
	Fee                string    `json:"fee"`
	Purpose            *string   `json:"purpose,omitempty"`
	Status             string    `json:"status"`
	PaymentStatus      string    `json:"paymentStatus"`
	ProcessedBy        *int64    `json:"processedBy,omitempty"`
	RejectionReason    *string   `json:"rejectionReason,omitempty"`
	CancellationReason *string   `json:"cancellationReason,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// DocumentListResponse ответ со списком заявок
type DocumentListResponse struct {
	Requests []DocumentResponse `json:"requests"`
}

// FromDomainDocument конвертирует domain модель в DTO
func FromDomainDocument(d *domain.DocumentRequest, typeName string) *DocumentResponse {
	if d == nil {
		return nil
	}
	return &DocumentResponse{
		ID:                 d.ID,
		UserID:             d.UserID,
		DocumentTypeID:     d.DocumentTypeID,
		TypeName:           typeName,
		Fee:                d.Fee.StringFixed(2),
		Purpose:            d.Purpose,
		Status:             string(d.Status),
		PaymentStatus:      string(d.PaymentStatus),
		ProcessedBy:        d.ProcessedBy,
		RejectionReason:    d.RejectionReason,
		CancellationReason: d.CancellationReason,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

// FromDomainDocumentList конвертирует список заявок
func FromDomainDocumentList(list []*domain.DocumentRequestWithType) *DocumentListResponse {
	resp := &DocumentListResponse{Requests: make([]DocumentResponse, 0, len(list))}
	for _, d := range list {
		resp.Requests = append(resp.Requests, *FromDomainDocument(&d.DocumentRequest, d.TypeName))
	}
	return resp
}

// ToDomainDocumentStatus конвертирует строку в domain.DocumentStatus с валидацией
func ToDomainDocumentStatus(status string) (domain.DocumentStatus, error) {
	switch s := domain.DocumentStatus(status); s {
	case domain.DocumentPending, domain.DocumentProcessing, domain.DocumentReady,
		domain.DocumentCompleted, domain.DocumentRejected, domain.DocumentCancelled:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}
