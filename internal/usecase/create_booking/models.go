package create_booking

import (
	"io"
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	Caller        domain.Caller         // владелец бронирования
	BookingTypeID int64                 // ID типа (Baptism, Wedding, ...)
	Date          time.Time             // Дата бронирования (без времени)
	Time          types.TimeString      // Время начала (например, "10:00")
	Notes         *string               // Заметки (опционально)
	PaymentMethod *domain.PaymentMethod // Способ оплаты, если клиент сразу прикладывает подтверждение
	Proof         io.Reader             // Подтверждение оплаты; без него бронирование остаётся unpaid
	ProofName     string
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking  domain.Booking
	TypeName string
	Payment  *domain.Payment // nil, если подтверждение не приложено
}
