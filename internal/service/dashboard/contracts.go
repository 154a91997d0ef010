package dashboard

import (
	"context"
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

// DocumentRepository интерфейс чтения заявок
type DocumentRepository interface {
	List(ctx context.Context, filter domain.DocumentFilter) ([]*domain.DocumentRequestWithType, error)
}

// BookingRepository интерфейс чтения бронирований
type BookingRepository interface {
	List(ctx context.Context, filter domain.BookingFilter) ([]*domain.BookingWithType, error)
}

// PaymentRepository интерфейс чтения платежей
type PaymentRepository interface {
	ListByStatus(ctx context.Context, status domain.PaymentRecordStatus) ([]*domain.Payment, error)
}

// Metrics gauge критичных элементов
type Metrics interface {
	SLACritical(kind string, count int)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реализация TimeProvider с реальным временем
type RealTimeProvider struct{}

func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
