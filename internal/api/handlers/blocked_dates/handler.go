package blocked_dates

import (
	"net/http"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/middleware"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/validator"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateTime    = "invalid date or time, expected YYYY-MM-DD and HH:MM"
	msgInvalidBlockedID   = "invalid blocked date ID"
	msgInvalidRange       = "query parameters from and to are required, expected YYYY-MM-DD"
)

type Handler struct {
	service   CalendarService
	validator *validator.Validator
	logger    Logger
}

func NewHandler(service CalendarService, logger Logger) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
		logger:    logger,
	}
}

// Create POST /api/v1/admin/blocked-dates
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const route = "POST /admin/blocked-dates"

	caller, ok := middleware.RequireCaller(w, r)
	if !ok {
		return
	}

	var req BlockDateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}
	serviceReq, err := req.ToServiceRequest()
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	blocked, err := h.service.Block(r.Context(), caller, serviceReq)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Date blocked: id=%d, date=%s", route, blocked.ID, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainBlockedDate(blocked))
}

// Delete DELETE /api/v1/admin/blocked-dates/{blockedId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /admin/blocked-dates/{blockedId}"

	caller, ok := middleware.RequireCaller(w, r)
	if !ok {
		return
	}

	id, err := handlers.PathID(r, "blockedId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidBlockedID)
		return
	}

	if err := h.service.Unblock(r.Context(), caller, id); err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Date unblocked: id=%d", route, id)
	w.WriteHeader(http.StatusNoContent)
}

// List GET /api/v1/blocked-dates?from=&to=; публичный календарь
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const route = "GET /blocked-dates"

	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}
	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}

	list, err := h.service.List(r.Context(), from, to)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	resp := BlockedDateListResponse{BlockedDates: make([]BlockedDateResponse, 0, len(list))}
	for _, b := range list {
		resp.BlockedDates = append(resp.BlockedDates, FromDomainBlockedDate(b))
	}
	h.logger.Info("%s - Blocked dates listed: count=%d", route, len(list))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
