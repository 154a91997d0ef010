package create_booking

import (
	"context"
	"io"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/notifications"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/slots"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// CatalogRepository интерфейс репозитория типов бронирований
type CatalogRepository interface {
	GetBookingType(ctx context.Context, id int64) (*domain.BookingType, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, s domain.Submission) (*domain.Payment, error)
}

// FileStore хранилище подтверждений оплаты
type FileStore interface {
	Store(ctx context.Context, prefix, originalName string, data io.Reader) (string, error)
	Remove(rel string) error
}

// Allocator проверка слота
type Allocator interface {
	Admit(ctx context.Context, req slots.AdmitRequest) error
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
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
