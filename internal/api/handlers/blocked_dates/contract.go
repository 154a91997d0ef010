package blocked_dates

import (
	"context"
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/calendar"
)

type CalendarService interface {
	Block(ctx context.Context, caller domain.Caller, req *calendar.BlockRequest) (*domain.BlockedDate, error)
	Unblock(ctx context.Context, caller domain.Caller, id int64) error
	List(ctx context.Context, from, to time.Time) ([]*domain.BlockedDate, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
