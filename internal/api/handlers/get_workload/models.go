package get_workload

import (
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

// WorkloadResponse доступность и нагрузка персонала на дату
type WorkloadResponse struct {
	Date  string       `json:"date"`
	Staff []StaffEntry `json:"staff"`
}

// StaffEntry один сотрудник
type StaffEntry struct {
	StaffID       int64   `json:"staffId"`
	FullName      string  `json:"fullName"`
	Role          string  `json:"role"`
	Absent        bool    `json:"absent"`
	AbsenceReason *string `json:"absenceReason,omitempty"`
	ReassignTo    *int64  `json:"reassignTo,omitempty"`
	Documents     int     `json:"pendingDocuments"`
	Bookings      int     `json:"pendingBookings"`
	Payments      int     `json:"pendingPayments"`
	Total         int     `json:"pendingTotal"`
}

// FromDomain конвертирует обзор нагрузки в DTO
func FromDomain(date string, list []domain.StaffWorkload) *WorkloadResponse {
	resp := &WorkloadResponse{Date: date, Staff: make([]StaffEntry, 0, len(list))}
	for _, sw := range list {
		entry := StaffEntry{
			StaffID:    sw.Staff.ID,
			FullName:   sw.Staff.FullName,
			Role:       string(sw.Staff.Role),
			Absent:     sw.Absent,
			ReassignTo: sw.ReassignTo,
			Documents:  sw.Pending.Documents,
			Bookings:   sw.Pending.Bookings,
			Payments:   sw.Pending.Payments,
			Total:      sw.Pending.Total(),
		}
		if sw.Absence != nil {
			reason := sw.Absence.Reason
			entry.AbsenceReason = &reason
		}
		if resp.Date == "" {
			resp.Date = sw.Date.Format(domain.DateFormat)
		}
		resp.Staff = append(resp.Staff, entry)
	}
	return resp
}
