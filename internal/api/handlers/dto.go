package handlers

import (
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

// PaymentResponse платёж в ответах API
type PaymentResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"userId"`
	ReferenceType   string  `json:"referenceType"`
	ReferenceID     int64   `json:"referenceId"`
	Amount          string  `json:"amount"`
	Method          string  `json:"method"`
	ProofPath       *string `json:"proofPath,omitempty"`
	Status          string  `json:"status"`
	VerifiedBy      *int64  `json:"verifiedBy,omitempty"`
	RejectionReason *string `json:"rejectionReason,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// FromDomainPayment конвертирует платёж в DTO
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}
	return &PaymentResponse{
		ID:              p.ID,
		UserID:          p.UserID,
		ReferenceType:   string(p.ReferenceType),
		ReferenceID:     p.ReferenceID,
		Amount:          p.Amount.StringFixed(2),
		Method:          string(p.Method),
		ProofPath:       p.ProofPath,
		Status:          string(p.Status),
		VerifiedBy:      p.VerifiedBy,
		RejectionReason: p.RejectionReason,
		CreatedAt:       p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       p.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainPayments конвертирует список платежей
func FromDomainPayments(list []*domain.Payment) []PaymentResponse {
	resp := make([]PaymentResponse, 0, len(list))
	for _, p := range list {
		resp = append(resp, *FromDomainPayment(p))
	}
	return resp
}
