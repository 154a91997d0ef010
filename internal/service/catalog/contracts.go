package catalog

import (
	"context"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

// CatalogRepository интерфейс репозитория справочников
type CatalogRepository interface {
	GetBookingType(ctx context.Context, id int64) (*domain.BookingType, error)
	ListBookingTypes(ctx context.Context, activeOnly bool) ([]*domain.BookingType, error)
	UpdateBookingType(ctx context.Context, bt *domain.BookingType) error
	ListDocumentTypes(ctx context.Context, activeOnly bool) ([]*domain.DocumentType, error)
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
