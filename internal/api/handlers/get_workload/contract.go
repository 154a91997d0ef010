package get_workload

import (
	"context"
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

type WorkloadService interface {
	Overview(ctx context.Context, caller domain.Caller, date time.Time) ([]domain.StaffWorkload, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
