package payment_action

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/middleware"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/ptr"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/validator"
)

const (
	route = "PATCH /payments/{paymentId}/{action}"

	msgInvalidPaymentID   = "invalid payment ID"
	msgInvalidRequestBody = "invalid request body"
	msgUnknownAction      = "unknown action, expected one of verify, reject, assign"
	msgStaffIDRequired    = "staffId is required to assign"
)

// ActionRequest тело запроса действия над платежом
type ActionRequest struct {
	Reason  *string `json:"reason,omitempty" validate:"omitempty,max=500"`
	StaffID *int64  `json:"staffId,omitempty" validate:"omitempty,gt=0"`
}

type Handler struct {
	reviewer  PaymentReviewer
	validator *validator.Validator
	logger    Logger
}

func NewHandler(reviewer PaymentReviewer, logger Logger) *Handler {
	return &Handler{
		reviewer:  reviewer,
		validator: validator.New(),
		logger:    logger,
	}
}

// Handle PATCH /api/v1/payments/{paymentId}/{action}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.RequireCaller(w, r)
	if !ok {
		return
	}

	paymentID, err := handlers.PathID(r, "paymentId")
	if err != nil {
		h.logger.Warn("%s - Invalid payment ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}
	action := mux.Vars(r)["action"]

	var req ActionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	var payment *domain.Payment
	switch action {
	case "verify":
		payment, err = h.reviewer.Verify(r.Context(), caller, paymentID)
	case "reject":
		payment, err = h.reviewer.Reject(r.Context(), caller, paymentID, ptr.Deref(req.Reason, ""))
	case "assign":
		if req.StaffID == nil {
			handlers.RespondBadRequest(w, msgStaffIDRequired)
			return
		}
		err = h.reviewer.Assign(r.Context(), caller, paymentID, *req.StaffID)
	default:
		h.logger.Warn("%s - Unknown action %q", route, action)
		handlers.RespondNotFound(w, msgUnknownAction)
		return
	}
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Action %s applied: payment_id=%d, caller=%d", route, action, paymentID, caller.UserID)
	if payment == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainPayment(payment))
}
