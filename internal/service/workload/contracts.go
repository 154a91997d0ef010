package workload

import (
	"context"
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

// AbsenceRepository интерфейс репозитория отсутствий
type AbsenceRepository interface {
	Create(ctx context.Context, a *domain.StaffAbsence) (*domain.StaffAbsence, error)
	Delete(ctx context.Context, id int64) error
	ListActiveOn(ctx context.Context, date time.Time) ([]*domain.StaffAbsence, error)
	ListByStaff(ctx context.Context, staffID int64) ([]*domain.StaffAbsence, error)
	ListRange(ctx context.Context, from, to time.Time) ([]*domain.StaffAbsence, error)
}

// UserRepository интерфейс чтения пользователей
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ListStaff(ctx context.Context) ([]*domain.User, error)
}

// PendingCounter ожидающие элементы, закреплённые за сотрудником
// Реализуется репозиториями заявок, бронирований и платежей
type PendingCounter interface {
	CountPendingByStaff(ctx context.Context, staffID int64) (int, error)
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
