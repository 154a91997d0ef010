package create_booking

import (
	"fmt"
	"strings"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Caller.UserID <= 0 || req.Caller.Role == domain.RoleSystem {
		return fmt.Errorf("%w: booking must be created by a portal user", domain.ErrAccessDenied)
	}

	if req.BookingTypeID <= 0 {
		return fmt.Errorf("%w: bookingTypeId must be positive", domain.ErrValidation)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}

	// Проверяем, что время начала указано
	if req.Time.IsZero() {
		return fmt.Errorf("%w: time is required", domain.ErrValidation)
	}
	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time format: %v", domain.ErrValidation, err)
	}

	if req.Notes != nil && len(strings.TrimSpace(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", domain.ErrValidation, domain.MaxNotesLength)
	}

	if req.PaymentMethod != nil && !req.PaymentMethod.IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", domain.ErrValidation, *req.PaymentMethod)
	}
	if req.Proof != nil && req.PaymentMethod == nil {
		return fmt.Errorf("%w: paymentMethod is required with a proof of payment", domain.ErrValidation)
	}

	return nil
}
