package slots

import (
	"context"
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/types"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountActiveByTypeAndDate(ctx context.Context, bookingTypeID int64, date time.Time, excludeID *int64) (int, error)
	ExistsActiveAtSlot(ctx context.Context, date time.Time, at types.TimeString, excludeID *int64) (bool, error)
}

// BlockedDateRepository интерфейс репозитория заблокированных дат
type BlockedDateRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.BlockedDate, error)
}

// Metrics счётчик результатов проверки слота
type Metrics interface {
	AllocationResult(result string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
