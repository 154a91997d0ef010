package absences

import (
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/workload"
)

// CreateAbsenceRequest HTTP request model
type CreateAbsenceRequest struct {
	StaffID    int64  `json:"staffId" validate:"required,gt=0"`
	StartDate  string `json:"startDate" validate:"required"`
	EndDate    string `json:"endDate" validate:"required"`
	Reason     string `json:"reason" validate:"required,max=500"`
	ReassignTo *int64 `json:"reassignTo,omitempty" validate:"omitempty,gt=0"`
}

// AbsenceResponse отсутствие сотрудника
type AbsenceResponse struct {
	ID         int64  `json:"id"`
	StaffID    int64  `json:"staffId"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Reason     string `json:"reason"`
	ReassignTo *int64 `json:"reassignTo,omitempty"`
	CreatedBy  int64  `json:"createdBy"`
	CreatedAt  string `json:"createdAt"`
}

// AbsenceListResponse список отсутствий
type AbsenceListResponse struct {
	Absences []AbsenceResponse `json:"absences"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateAbsenceRequest) ToServiceRequest() (*workload.CreateAbsenceRequest, error) {
	start, err := handlers.ParseDate(r.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := handlers.ParseDate(r.EndDate)
	if err != nil {
		return nil, err
	}
	return &workload.CreateAbsenceRequest{
		StaffID:    r.StaffID,
		StartDate:  start,
		EndDate:    end,
		Reason:     r.Reason,
		ReassignTo: r.ReassignTo,
	}, nil
}

// FromDomainAbsence конвертирует domain модель в DTO
func FromDomainAbsence(a *domain.StaffAbsence) AbsenceResponse {
	return AbsenceResponse{
		ID:         a.ID,
		StaffID:    a.StaffID,
		StartDate:  a.StartDate.Format(domain.DateFormat),
		EndDate:    a.EndDate.Format(domain.DateFormat),
		Reason:     a.Reason,
		ReassignTo: a.ReassignTo,
		CreatedBy:  a.CreatedBy,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
	}
}
