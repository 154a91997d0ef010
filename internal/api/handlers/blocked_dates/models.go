package blocked_dates

import (
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/calendar"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/types"
)

// BlockDateRequest HTTP request model; без времени блокируется весь день
type BlockDateRequest struct {
	Date      string  `json:"date" validate:"required"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	Reason    string  `json:"reason" validate:"required,max=500"`
}

// BlockedDateResponse блокировка календаря
type BlockedDateResponse struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"`
	StartTime *string `json:"startTime,omitempty"`
	EndTime   *string `json:"endTime,omitempty"`
	FullDay   bool    `json:"fullDay"`
	Reason    string  `json:"reason"`
	CreatedBy int64   `json:"createdBy"`
	CreatedAt string  `json:"createdAt"`
}

// BlockedDateListResponse список блокировок
type BlockedDateListResponse struct {
	BlockedDates []BlockedDateResponse `json:"blockedDates"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *BlockDateRequest) ToServiceRequest() (*calendar.BlockRequest, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	req := &calendar.BlockRequest{Date: date, Reason: r.Reason}
	if r.StartTime != nil {
		t, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &t
	}
	if r.EndTime != nil {
		t, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = &t
	}
	return req, nil
}

// FromDomainBlockedDate конвертирует domain модель в DTO
func FromDomainBlockedDate(b *domain.BlockedDate) BlockedDateResponse {
	resp := BlockedDateResponse{
		ID:        b.ID,
		Date:      b.Date.Format(domain.DateFormat),
		FullDay:   b.IsFullDay(),
		Reason:    b.Reason,
		CreatedBy: b.CreatedBy,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
	if b.StartTime != nil {
		s := b.StartTime.String()
		resp.StartTime = &s
	}
	if b.EndTime != nil {
		e := b.EndTime.String()
		resp.EndTime = &e
	}
	return resp
}
