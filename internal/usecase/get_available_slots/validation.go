package get_available_slots

import (
	"fmt"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingTypeID <= 0 {
		return fmt.Errorf("%w: bookingTypeId must be positive", domain.ErrValidation)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}

	return nil
}
