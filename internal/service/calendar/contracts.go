package calendar

import (
	"context"
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

// BlockedDateRepository интерфейс репозитория заблокированных дат
type BlockedDateRepository interface {
	Create(ctx context.Context, b *domain.BlockedDate) (*domain.BlockedDate, error)
	Delete(ctx context.Context, id int64) error
	ListRange(ctx context.Context, from, to time.Time) ([]*domain.BlockedDate, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
