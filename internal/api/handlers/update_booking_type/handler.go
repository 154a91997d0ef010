package update_booking_type

import (
	"net/http"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/middleware"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/catalog/models"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/validator"
)

const (
	route = "PUT /admin/booking-types/{typeId}"

	msgInvalidTypeID      = "invalid booking type ID"
	msgInvalidRequestBody = "invalid request body"
)

type Handler struct {
	service   CatalogService
	validator *validator.Validator
	logger    Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
		logger:    logger,
	}
}

// Handle PUT /api/v1/admin/booking-types/{typeId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.RequireCaller(w, r)
	if !ok {
		return
	}

	typeID, err := handlers.PathID(r, "typeId")
	if err != nil {
		h.logger.Warn("%s - Invalid type ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidTypeID)
		return
	}

	var req models.UpdateBookingTypeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	updated, err := h.service.UpdateBookingType(r.Context(), caller, typeID, &req)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Booking type updated: type_id=%d, admin=%d", route, typeID, caller.UserID)
	handlers.RespondJSON(w, http.StatusOK, updated)
}
