package booking_action

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/middleware"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/bookings/models"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/ptr"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/validator"
)

const (
	route = "PATCH /bookings/{bookingId}/{action}"

	msgInvalidBookingID   = "invalid booking ID"
	msgInvalidRequestBody = "invalid request body"
	msgUnknownAction      = "unknown action, expected one of approve, reject, complete, cancel, assign"
	msgStaffIDRequired    = "staffId is required to assign"
)

type Handler struct {
	service   BookingService
	validator *validator.Validator
	logger    Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
		logger:    logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/{action}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.RequireCaller(w, r)
	if !ok {
		return
	}

	bookingID, err := handlers.PathID(r, "bookingId")
	if err != nil {
		h.logger.Warn("%s - Invalid booking ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}
	action := mux.Vars(r)["action"]

	// Тело необязательно: approve и complete отправляются без него
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

	var result *models.BookingResponse
	switch action {
	case ActionApprove:
		result, err = h.service.Approve(r.Context(), caller, bookingID)
	case ActionReject:
		result, err = h.service.Reject(r.Context(), caller, bookingID, ptr.Deref(req.Reason, ""))
	case ActionComplete:
		result, err = h.service.Complete(r.Context(), caller, bookingID)
	case ActionCancel:
		result, err = h.service.Cancel(r.Context(), caller, bookingID, req.Reason)
	case ActionAssign:
		if req.StaffID == nil {
			handlers.RespondBadRequest(w, msgStaffIDRequired)
			return
		}
		err = h.service.Assign(r.Context(), caller, bookingID, *req.StaffID)
	default:
		h.logger.Warn("%s - Unknown action %q", route, action)
		handlers.RespondNotFound(w, msgUnknownAction)
		return
	}
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Action %s applied: booking_id=%d, caller=%d", route, action, bookingID, caller.UserID)
	if result == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}
