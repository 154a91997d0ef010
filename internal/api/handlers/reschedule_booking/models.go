package reschedule_booking

import (
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	rescheduleBooking "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/usecase/reschedule_booking"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/types"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	BookingDate string  `json:"bookingDate" validate:"required"`
	BookingTime string  `json:"bookingTime" validate:"required"`
	Reason      *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(caller domain.Caller, bookingID int64) (*rescheduleBooking.Request, error) {
	date, err := handlers.ParseDate(r.BookingDate)
	if err != nil {
		return nil, err
	}
	startTime, err := types.NewTimeStringFromString(r.BookingTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleBooking.Request{
		Caller:    caller,
		BookingID: bookingID,
		Date:      date,
		Time:      startTime,
		Reason:    r.Reason,
	}, nil
}
