package submit_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/middleware"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	submitPayment "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/usecase/submit_payment"
)

const (
	route = "POST /payments"

	// Поле файла подтверждения в multipart форме
	proofField = "proof"

	// Запас на остальные поля формы сверх лимита файла
	formOverheadBytes = 64 << 10

	msgInvalidForm        = "invalid multipart form"
	msgInvalidReferenceID = "referenceId must be a positive integer"
)

type Handler struct {
	useCase   SubmitPaymentUseCase
	maxUpload int64
	logger    Logger
}

// NewHandler maxUpload ограничение размера файла подтверждения в байтах
func NewHandler(useCase SubmitPaymentUseCase, maxUpload int64, logger Logger) *Handler {
	return &Handler{
		useCase:   useCase,
		maxUpload: maxUpload,
		logger:    logger,
	}
}

// Handle POST /api/v1/payments (multipart/form-data: referenceType, referenceId, method, proof)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.RequireCaller(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+formOverheadBytes)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		h.logger.Warn("%s - Invalid multipart form: %v", route, err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.RespondError(w, http.StatusRequestEntityTooLarge, "proof of payment is too large")
			return
		}
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}
	defer r.MultipartForm.RemoveAll()

	referenceID, err := strconv.ParseInt(r.FormValue("referenceId"), 10, 64)
	if err != nil || referenceID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidReferenceID)
		return
	}

	req := &submitPayment.Request{
		Caller:        caller,
		ReferenceType: domain.ReferenceType(r.FormValue("referenceType")),
		ReferenceID:   referenceID,
		Method:        domain.PaymentMethod(r.FormValue("method")),
	}

	file, header, err := r.FormFile(proofField)
	switch {
	case err == nil:
		defer file.Close()
		req.Proof = file
		req.ProofName = header.Filename
	case errors.Is(err, http.ErrMissingFile):
	default:
		h.logger.Warn("%s - Failed to read proof: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidForm)
		return
	}

	payment, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Payment submitted: payment_id=%d, %s id=%d, user_id=%d",
		route, payment.ID, payment.ReferenceType, payment.ReferenceID, caller.UserID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromDomainPayment(payment))
}
