package reschedule_booking

import (
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	Caller    domain.Caller
	BookingID int64
	Date      time.Time
	Time      types.TimeString
	Reason    *string
}
