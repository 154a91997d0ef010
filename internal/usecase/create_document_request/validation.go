package create_document_request

import (
	"fmt"
	"strings"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

func validateRequest(req *Request) error {
	if req.Caller.UserID <= 0 || req.Caller.Role == domain.RoleSystem {
		return fmt.Errorf("%w: document request must be created by a portal user", domain.ErrAccessDenied)
	}
	if req.DocumentTypeID <= 0 {
		return fmt.Errorf("%w: documentTypeId must be positive", domain.ErrValidation)
	}
	if req.Purpose != nil && len(strings.TrimSpace(*req.Purpose)) > domain.MaxPurposeLength {
		return fmt.Errorf("%w: purpose must be at most %d characters", domain.ErrValidation, domain.MaxPurposeLength)
	}
	return nil
}
