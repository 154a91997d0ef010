package bookings

import (
	"context"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/notifications"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.BookingWithType, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Approve(ctx context.Context, id int64, approvedBy *int64) error
	Reject(ctx context.Context, id int64, reason string) error
	Cancel(ctx context.Context, id int64, reason *string) error
	Assign(ctx context.Context, id int64, staffID int64) error
}

// CatalogRepository названия типов для карточки бронирования
type CatalogRepository interface {
	GetBookingType(ctx context.Context, id int64) (*domain.BookingType, error)
}

// Notifier уведомления после фиксации
type Notifier interface {
	Emit(ctx context.Context, ev notifications.Event)
}

// Metrics счётчик переходов
type Metrics interface {
	Transition(entity, event string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
