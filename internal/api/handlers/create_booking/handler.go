package create_booking

import (
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/middleware"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/validator"
)

const (
	route = "POST /bookings"

	// Поле файла подтверждения в multipart форме
	proofField = "proof"

	// Запас на остальные поля формы сверх лимита файла
	formOverheadBytes = 64 << 10

	msgInvalidRequestBody = "invalid request body"
	msgInvalidForm        = "invalid multipart form"
	msgInvalidTypeID      = "bookingTypeId must be a positive integer"
	msgInvalidDateTime    = "invalid booking date or time, expected YYYY-MM-DD and HH:MM"
)

type Handler struct {
	useCase   BookingRequester
	validator *validator.Validator
	maxUpload int64
	logger    Logger
}

// NewHandler maxUpload ограничение размера файла подтверждения в байтах
func NewHandler(useCase BookingRequester, maxUpload int64, logger Logger) *Handler {
	return &Handler{
		useCase:   useCase,
		validator: validator.New(),
		maxUpload: maxUpload,
		logger:    logger,
	}
}

// Handle POST /api/v1/bookings
// JSON или multipart/form-data с теми же полями и необязательным файлом proof
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.RequireCaller(w, r)
	if !ok {
		return
	}

	var (
		req   CreateBookingRequest
		proof *uploadedProof
	)
	if isMultipart(r) {
		var done bool
		proof, done = h.decodeForm(w, r, &req)
		if done {
			return
		}
		defer r.MultipartForm.RemoveAll()
		if proof != nil {
			defer proof.File.Close()
		}
	} else if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		h.logger.Warn("%s - Validation failed: %v", route, err)
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(caller)
	if err != nil {
		h.logger.Warn("%s - Failed to parse request: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}
	if proof != nil {
		useCaseReq.Proof = proof.File
		useCaseReq.ProofName = proof.Name
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Booking created successfully: booking_id=%d, user_id=%d, type_id=%d",
		route, result.Booking.ID, caller.UserID, req.BookingTypeID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// uploadedProof файл подтверждения из multipart формы
type uploadedProof struct {
	File multipart.File
	Name string
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// decodeForm заполняет req полями формы; done=true, если ответ уже отправлен
func (h *Handler) decodeForm(w http.ResponseWriter, r *http.Request, req *CreateBookingRequest) (*uploadedProof, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload+formOverheadBytes)
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		h.logger.Warn("%s - Invalid multipart form: %v", route, err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.RespondError(w, http.StatusRequestEntityTooLarge, "proof of payment is too large")
			return nil, true
		}
		handlers.RespondBadRequest(w, msgInvalidForm)
		return nil, true
	}

	typeID, err := strconv.ParseInt(r.FormValue("bookingTypeId"), 10, 64)
	if err != nil {
		_ = r.MultipartForm.RemoveAll()
		handlers.RespondBadRequest(w, msgInvalidTypeID)
		return nil, true
	}
	req.BookingTypeID = typeID
	req.BookingDate = r.FormValue("bookingDate")
	req.BookingTime = r.FormValue("bookingTime")
	if notes, ok := r.MultipartForm.Value["notes"]; ok && len(notes) > 0 {
		req.Notes = &notes[0]
	}
	if method := r.FormValue("paymentMethod"); method != "" {
		req.PaymentMethod = &method
	}

	file, header, err := r.FormFile(proofField)
	switch {
	case err == nil:
		return &uploadedProof{File: file, Name: header.Filename}, false
	case errors.Is(err, http.ErrMissingFile):
		return nil, false
	default:
		h.logger.Warn("%s - Failed to read proof: %v", route, err)
		_ = r.MultipartForm.RemoveAll()
		handlers.RespondBadRequest(w, msgInvalidForm)
		return nil, true
	}
}
