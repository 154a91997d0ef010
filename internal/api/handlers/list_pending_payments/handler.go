package list_pending_payments

import (
	"net/http"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/middleware"
)

const route = "GET /payments/pending"

// PendingPaymentsResponse очередь платежей на проверке
type PendingPaymentsResponse struct {
	Payments []handlers.PaymentResponse `json:"payments"`
}

type Handler struct {
	reviewer PaymentReviewer
	logger   Logger
}

func NewHandler(reviewer PaymentReviewer, logger Logger) *Handler {
	return &Handler{
		reviewer: reviewer,
		logger:   logger,
	}
}

// Handle GET /api/v1/payments/pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.RequireCaller(w, r)
	if !ok {
		return
	}

	list, err := h.reviewer.ListPending(r.Context(), caller)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Pending payments listed: count=%d", route, len(list))
	handlers.RespondJSON(w, http.StatusOK, PendingPaymentsResponse{Payments: handlers.FromDomainPayments(list)})
}
