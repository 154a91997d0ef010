package absences

import (
	"context"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/workload"
)

type AbsenceService interface {
	CreateAbsence(ctx context.Context, caller domain.Caller, req *workload.CreateAbsenceRequest) (*domain.StaffAbsence, error)
	DeleteAbsence(ctx context.Context, caller domain.Caller, id int64) error
	ListAbsences(ctx context.Context, caller domain.Caller, req workload.ListAbsencesRequest) ([]*domain.StaffAbsence, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
