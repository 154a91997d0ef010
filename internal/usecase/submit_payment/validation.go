package submit_payment

import (
	"fmt"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

func validateRequest(req *Request) error {
	if req.Caller.UserID <= 0 || req.Caller.Role == domain.RoleSystem {
		return fmt.Errorf("%w: payment must be submitted by a portal user", domain.ErrAccessDenied)
	}
	switch req.ReferenceType {
	case domain.ReferenceDocumentRequest, domain.ReferenceBooking:
	default:
		return fmt.Errorf("%w: unknown reference type %q", domain.ErrValidation, req.ReferenceType)
	}
	if req.ReferenceID <= 0 {
		return fmt.Errorf("%w: referenceId must be positive", domain.ErrValidation)
	}
	if !req.Method.IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", domain.ErrValidation, req.Method)
	}
	// электронные переводы без снимка подтверждения не проверить
	if req.Method != domain.MethodCash && req.Proof == nil {
		return fmt.Errorf("%w: proof of payment is required for %s", domain.ErrValidation, req.Method)
	}
	return nil
}
