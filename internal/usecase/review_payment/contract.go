package review_payment

import (
	"context"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/notifications"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	ListByStatus(ctx context.Context, status domain.PaymentRecordStatus) ([]*domain.Payment, error)
	Verify(ctx context.Context, id int64, verifiedBy *int64) error
	Reject(ctx context.Context, id int64, verifiedBy *int64, reason string) error
	Assign(ctx context.Context, id int64, staffID int64) error
}

// EntityPaymentUpdater меняет payment_status заявки или бронирования
type EntityPaymentUpdater interface {
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
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
