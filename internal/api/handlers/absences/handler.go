package absences

import (
	"net/http"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/middleware"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/workload"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/validator"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid date, expected YYYY-MM-DD"
	msgInvalidAbsenceID   = "invalid absence ID"
	msgInvalidQuery       = "invalid query parameters"
)

type Handler struct {
	service   AbsenceService
	validator *validator.Validator
	logger    Logger
}

func NewHandler(service AbsenceService, logger Logger) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
		logger:    logger,
	}
}

// Create POST /api/v1/admin/absences
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const route = "POST /admin/absences"

	caller, ok := middleware.RequireCaller(w, r)
	if !ok {
		return
	}

	var req CreateAbsenceRequest
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
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	absence, err := h.service.CreateAbsence(r.Context(), caller, serviceReq)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Absence created: absence_id=%d, staff_id=%d", route, absence.ID, absence.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainAbsence(absence))
}

// Delete DELETE /api/v1/admin/absences/{absenceId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const route = "DELETE /admin/absences/{absenceId}"

	caller, ok := middleware.RequireCaller(w, r)
	if !ok {
		return
	}

	id, err := handlers.PathID(r, "absenceId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidAbsenceID)
		return
	}

	if err := h.service.DeleteAbsence(r.Context(), caller, id); err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Absence deleted: absence_id=%d", route, id)
	w.WriteHeader(http.StatusNoContent)
}

// List GET /api/v1/admin/absences?staffId= или ?from=&to=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const route = "GET /admin/absences"

	caller, ok := middleware.RequireCaller(w, r)
	if !ok {
		return
	}

	staffID, err := handlers.QueryID(r, "staffId")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}
	from, err := handlers.QueryDate(r, "from")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	to, err := handlers.QueryDate(r, "to")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}
	if staffID == nil && (from.IsZero() || to.IsZero()) {
		handlers.RespondBadRequest(w, "either staffId or both from and to are required")
		return
	}

	list, err := h.service.ListAbsences(r.Context(), caller, workload.ListAbsencesRequest{StaffID: staffID, From: from, To: to})
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	resp := AbsenceListResponse{Absences: make([]AbsenceResponse, 0, len(list))}
	for _, a := range list {
		resp.Absences = append(resp.Absences, FromDomainAbsence(a))
	}
	h.logger.Info("%s - Absences listed: count=%d", route, len(list))
	handlers.RespondJSON(w, http.StatusOK, resp)
}
