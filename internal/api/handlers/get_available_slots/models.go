package get_available_slots

import (
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	getAvailableSlots "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date              string          `json:"date"`
	BookingTypeID     int64           `json:"bookingTypeId"`
	BookingTypeName   string          `json:"bookingTypeName"`
	DurationMinutes   int             `json:"durationMinutes"`
	MaxBookingsPerDay int             `json:"maxBookingsPerDay"`
	BookedToday       int             `json:"bookedToday"`
	RemainingCapacity int             `json:"remainingCapacity"`
	Slots             []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Available bool   `json:"available"`
	Taken     bool   `json:"taken,omitempty"`
	Blocked   bool   `json:"blocked,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	remaining := resp.Day.RemainingCapacity()

	slots := make([]AvailableSlot, len(resp.Day.Slots))
	for i, slot := range resp.Day.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Available: slot.IsFree() && remaining > 0,
			Taken:     slot.Taken,
			Blocked:   slot.Blocked,
		}
	}

	return &AvailableSlotsResponse{
		Date:              resp.Date.Format(domain.DateFormat),
		BookingTypeID:     resp.BookingType.ID,
		BookingTypeName:   resp.BookingType.Name,
		DurationMinutes:   resp.BookingType.DurationMinutes,
		MaxBookingsPerDay: resp.Day.MaxBookingsPerDay,
		BookedToday:       resp.Day.BookedToday,
		RemainingCapacity: remaining,
		Slots:             slots,
	}
}
