package get_workload

import (
	"net/http"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/middleware"
)

const (
	route = "GET /workload"

	msgInvalidDate = "invalid date, expected YYYY-MM-DD"
)

type Handler struct {
	service WorkloadService
	logger  Logger
}

func NewHandler(service WorkloadService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/workload?date=YYYY-MM-DD; без даты используется сегодня
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.RequireCaller(w, r)
	if !ok {
		return
	}

	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("%s - Invalid date: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	list, err := h.service.Overview(r.Context(), caller, date)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Workload overview: staff=%d", route, len(list))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(r.URL.Query().Get("date"), list))
}
