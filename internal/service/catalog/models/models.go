package models

import (
	"github.com/shopspring/decimal"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

// UpdateBookingTypeRequest запрос на изменение типа бронирования
// Все поля опциональны - обновляются только переданные значения
type UpdateBookingTypeRequest struct {
	Name              *string          `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Fee               *decimal.Decimal `json:"fee,omitempty"`
	DurationMinutes   *int             `json:"durationMinutes,omitempty"`
	MaxBookingsPerDay *int             `json:"maxBookingsPerDay,omitempty"`
	IsActive          *bool            `json:"isActive,omitempty"`
}

// BookingTypeResponse тип бронирования
type BookingTypeResponse struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Fee               string `json:"fee"`
	DurationMinutes   int    `json:"durationMinutes"`
	MaxBookingsPerDay int    `json:"maxBookingsPerDay"`
	IsActive          bool   `json:"isActive"`
}

// DocumentTypeResponse тип документа
type DocumentTypeResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Fee            string `json:"fee"`
	ProcessingDays int    `json:"processingDays"`
	IsActive       bool   `json:"isActive"`
}

// CatalogResponse справочники офиса
type CatalogResponse struct {
	BookingTypes  []BookingTypeResponse  `json:"bookingTypes"`
	DocumentTypes []DocumentTypeResponse `json:"documentTypes"`
}

// FromDomainBookingType конвертирует domain модель в DTO
func FromDomainBookingType(bt *domain.BookingType) *BookingTypeResponse {
	if bt == nil {
		return nil
	}
	return &BookingTypeResponse{
		ID:                bt.ID,
		Name:              bt.Name,
		Fee:               bt.Fee.StringFixed(2),
		DurationMinutes:   bt.DurationMinutes,
		MaxBookingsPerDay: bt.MaxBookingsPerDay,
		IsActive:          bt.IsActive,
	}
}

// FromDomainCatalog собирает ответ со справочниками
func FromDomainCatalog(bookingTypes []*domain.BookingType, documentTypes []*domain.DocumentType) *CatalogResponse {
	resp := &CatalogResponse{
		BookingTypes:  make([]BookingTypeResponse, 0, len(bookingTypes)),
		DocumentTypes: make([]DocumentTypeResponse, 0, len(documentTypes)),
	}
	for _, bt := range bookingTypes {
		resp.BookingTypes = append(resp.BookingTypes, *FromDomainBookingType(bt))
	}
	for _, dt := range documentTypes {
		resp.DocumentTypes = append(resp.DocumentTypes, DocumentTypeResponse{
			ID:             dt.ID,
			Name:           dt.Name,
			Fee:            dt.Fee.StringFixed(2),
			ProcessingDays: dt.ProcessingDays,
			IsActive:       dt.IsActive,
		})
	}
	return resp
}

// ApplyTo применяет обновления к типу бронирования
// Обновляются только непустые (not nil) поля из request
func (r *UpdateBookingTypeRequest) ApplyTo(bt *domain.BookingType) {
	if r.Name != nil {
		bt.Name = *r.Name
	}
	if r.Fee != nil {
		bt.Fee = *r.Fee
	}
	if r.DurationMinutes != nil {
		bt.DurationMinutes = *r.DurationMinutes
	}
	if r.MaxBookingsPerDay != nil {
		bt.MaxBookingsPerDay = *r.MaxBookingsPerDay
	}
	if r.IsActive != nil {
		bt.IsActive = *r.IsActive
	}
}
