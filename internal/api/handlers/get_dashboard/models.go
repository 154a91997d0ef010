package get_dashboard

import (
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/dashboard"
)

// DashboardResponse сводка по ожидающим элементам
type DashboardResponse struct {
	GeneratedAt    string         `json:"generatedAt"`
	Summary        SummaryDTO     `json:"summary"`
	CriticalByKind map[string]int `json:"criticalByKind"`
	Items          []RowDTO       `json:"items"`
}

// SummaryDTO количество элементов по уровням
type SummaryDTO struct {
	OK       int `json:"ok"`
	Warning  int `json:"warning"`
	Critical int `json:"critical"`
}

// RowDTO ожидающий элемент с возрастом
type RowDTO struct {
	Kind      string  `json:"kind"`
	ID        int64   `json:"id"`
	UserID    int64   `json:"userId"`
	Label     string  `json:"label"`
	CreatedAt string  `json:"createdAt"`
	AgeHours  float64 `json:"ageHours"`
	Level     string  `json:"level"`
}

// FromDashboard конвертирует сводку в DTO
func FromDashboard(d *dashboard.Dashboard) *DashboardResponse {
	resp := &DashboardResponse{
		GeneratedAt: d.GeneratedAt.Format(time.RFC3339),
		Summary: SummaryDTO{
			OK:       d.Summary.OK,
			Warning:  d.Summary.Warning,
			Critical: d.Summary.Critical,
		},
		CriticalByKind: make(map[string]int, len(d.CriticalByKind)),
		Items:          make([]RowDTO, 0, len(d.Rows)),
	}
	for kind, n := range d.CriticalByKind {
		resp.CriticalByKind[string(kind)] = n
	}
	for _, row := range d.Rows {
		resp.Items = append(resp.Items, RowDTO{
			Kind:      string(row.Kind),
			ID:        row.ID,
			UserID:    row.UserID,
			Label:     row.Label,
			CreatedAt: row.CreatedAt.Format(time.RFC3339),
			AgeHours:  float64(row.Age.Round(time.Minute)) / float64(time.Hour),
			Level:     string(row.Level),
		})
	}
	return resp
}
