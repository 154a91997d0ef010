package workload

import (
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

// CreateAbsenceRequest запрос на добавление отсутствия
type CreateAbsenceRequest struct {
	StaffID    int64
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	ReassignTo *int64
}

// ListAbsencesRequest фильтр списка отсутствий
// StaffID задаёт выборку по сотруднику, иначе используется интервал дат
type ListAbsencesRequest struct {
	StaffID *int64
	From    time.Time
	To      time.Time
}

func (r *CreateAbsenceRequest) toDomain(createdBy int64) *domain.StaffAbsence {
	return &domain.StaffAbsence{
		StaffID:    r.StaffID,
		StartDate:  domain.DateOnly(r.StartDate),
		EndDate:    domain.DateOnly(r.EndDate),
		Reason:     r.Reason,
		ReassignTo: r.ReassignTo,
		CreatedBy:  createdBy,
	}
}
