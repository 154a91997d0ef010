package get_available_slots

import (
	"context"
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// ListActiveByDate активные бронирования всех типов на дату
	ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error)
	CountActiveByTypeAndDate(ctx context.Context, bookingTypeID int64, date time.Time, excludeID *int64) (int, error)
}

// BlockedDateRepository интерфейс репозитория заблокированных дат
type BlockedDateRepository interface {
	ListByDate(ctx context.Context, date time.Time) ([]*domain.BlockedDate, error)
}

// CatalogRepository интерфейс репозитория типов бронирований
type CatalogRepository interface {
	GetBookingType(ctx context.Context, id int64) (*domain.BookingType, error)
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
