package create_booking

import (
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	bookingModels "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/bookings/models"
	createBooking "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/usecase/create_booking"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	BookingTypeID int64   `json:"bookingTypeId" validate:"required,gt=0"`
	BookingDate   string  `json:"bookingDate" validate:"required"` // "2024-06-11"
	BookingTime   string  `json:"bookingTime" validate:"required"` // "10:00"
	Notes         *string `json:"notes,omitempty" validate:"omitempty,max=500"`
	PaymentMethod *string `json:"paymentMethod,omitempty" validate:"omitempty,oneof=cash gcash paymaya bank_transfer"`
}

// CreateBookingResponse HTTP response model
type CreateBookingResponse struct {
	Booking *bookingModels.BookingResponse `json:"booking"`
	Payment *handlers.PaymentResponse      `json:"payment,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(caller domain.Caller) (*createBooking.Request, error) {
	date, err := handlers.ParseDate(r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.BookingTime)
	if err != nil {
		return nil, err
	}

	req := &createBooking.Request{
		Caller:        caller,
		BookingTypeID: r.BookingTypeID,
		Date:          date,
		Time:          startTime,
		Notes:         r.Notes,
	}
	if r.PaymentMethod != nil {
		method := domain.PaymentMethod(*r.PaymentMethod)
		req.PaymentMethod = &method
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *CreateBookingResponse {
	return &CreateBookingResponse{
		Booking: bookingModels.FromDomainBooking(&resp.Booking, resp.TypeName),
		Payment: handlers.FromDomainPayment(resp.Payment),
	}
}
