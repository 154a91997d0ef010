package get_available_slots

import (
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	BookingTypeID int64     // ID типа бронирования
	Date          time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	Date        time.Time
	BookingType domain.BookingType
	Day         domain.DaySlots
}
