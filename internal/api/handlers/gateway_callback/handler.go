package gateway_callback

import (
	"crypto/subtle"
	"net/http"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/validator"
)

const (
	route = "POST /payments/{paymentId}/gateway-callback"

	HeaderGatewayToken = "X-Gateway-Token"

	msgInvalidPaymentID   = "invalid payment ID"
	msgInvalidRequestBody = "invalid request body"
	msgInvalidToken       = "invalid gateway token"
)

// CallbackRequest результат обработки платежа шлюзом
type CallbackRequest struct {
	Status string `json:"status" validate:"required,oneof=verified failed"`
}

type Handler struct {
	applier   GatewayResultApplier
	token     string
	validator *validator.Validator
	logger    Logger
}

// NewHandler token общий секрет шлюза; пустой token отключает проверку
func NewHandler(applier GatewayResultApplier, token string, logger Logger) *Handler {
	return &Handler{
		applier:   applier,
		token:     token,
		validator: validator.New(),
		logger:    logger,
	}
}

// Handle POST /api/v1/payments/{paymentId}/gateway-callback
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.token != "" {
		got := r.Header.Get(HeaderGatewayToken)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) != 1 {
			h.logger.Warn("%s - Invalid gateway token from %s", route, r.RemoteAddr)
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}
	}

	paymentID, err := handlers.PathID(r, "paymentId")
	if err != nil {
		h.logger.Warn("%s - Invalid payment ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	var req CallbackRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	payment, err := h.applier.ApplyGatewayResult(r.Context(), paymentID, domain.GatewayStatus(req.Status))
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Gateway result applied: payment_id=%d, status=%s", route, paymentID, payment.Status)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainPayment(payment))
}
