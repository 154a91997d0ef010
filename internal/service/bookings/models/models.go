package models

import (
	"errors"
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest фильтр списка бронирований
type ListBookingsRequest struct {
	UserID          *int64     `json:"userId,omitempty"`
	BookingTypeID   *int64     `json:"bookingTypeId,omitempty"`
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Status          *string    `json:"status,omitempty"`
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отменённые и отклонённые
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingFilter, error) {
	filter := domain.BookingFilter{
		UserID:          r.UserID,
		BookingTypeID:   r.BookingTypeID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
		// фильтр по неактивному статусу сам по себе подразумевает неактивные
		if !status.IsActive() {
			filter.IncludeInactive = true
		}
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"userId"`
	BookingTypeID int64   `json:"bookingTypeId"`
	TypeName      string  `json:"typeName,omitempty"`
	Fee           string  `json:"fee"`
	BookingDate   string  `json:"bookingDate"` // "2024-06-11"
	BookingTime   string  `json:"bookingTime"` // "10:00"
	EndTime       string  `json:"endTime"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"paymentStatus"`
	ApprovedBy    *int64  `json:"approvedBy,omitempty"`
	Notes         *string `json:"notes,omitempty"`

	RejectionReason    *string `json:"rejectionReason,omitempty"`
	CancellationReason *string `json:"cancellationReason,omitempty"`

	PreviousDate     *string `json:"previousDate,omitempty"`
	PreviousTime     *string `json:"previousTime,omitempty"`
	RescheduleReason *string `json:"rescheduleReason,omitempty"`
	RescheduledAt    *string `json:"rescheduledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking, typeName string) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		UserID:             b.UserID,
		BookingTypeID:      b.BookingTypeID,
		TypeName:           typeName,
		Fee:                b.Fee.StringFixed(2),
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		BookingTime:        b.BookingTime.String(),
		EndTime:            b.EndTime.String(),
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		ApprovedBy:         b.ApprovedBy,
		Notes:              b.Notes,
		RejectionReason:    b.RejectionReason,
		CancellationReason: b.CancellationReason,
		RescheduleReason:   b.RescheduleReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.PreviousDate != nil {
		d := b.PreviousDate.Format(domain.DateFormat)
		resp.PreviousDate = &d
	}
	if b.PreviousTime != nil {
		t := b.PreviousTime.String()
		resp.PreviousTime = &t
	}
	if b.RescheduledAt != nil {
		at := b.RescheduledAt.Format(time.RFC3339)
		resp.RescheduledAt = &at
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.BookingWithType) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		if bookingResp := FromDomainBooking(&b.Booking, b.TypeName); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)

	validStatuses := []domain.BookingStatus{
		domain.BookingPending,
		domain.BookingApproved,
		domain.BookingRejected,
		domain.BookingCompleted,
		domain.BookingCancelled,
	}

	for _, valid := range validStatuses {
		if s == valid {
			return s, nil
		}
	}

	return "", ErrInvalidStatus
}
