package reschedule_booking

import (
	"fmt"
	"strings"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: booking id must be positive", domain.ErrValidation)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", domain.ErrValidation, err)
	}
	if req.Reason != nil && len(strings.TrimSpace(*req.Reason)) > domain.MaxReasonLength {
		return fmt.Errorf("%w: reason must be at most %d characters", domain.ErrValidation, domain.MaxReasonLength)
	}
	return nil
}
