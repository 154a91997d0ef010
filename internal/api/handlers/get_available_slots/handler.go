package get_available_slots

import (
	"net/http"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers"
	getAvailableSlots "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/usecase/get_available_slots"
)

const (
	route = "GET /booking-types/{typeId}/available-slots"

	msgInvalidTypeID = "invalid booking type ID"
	msgMissingDate   = "query parameter date is required"
	msgInvalidDate   = "invalid date, expected YYYY-MM-DD"
)

type Handler struct {
	useCase SlotFinder
	logger  Logger
}

func NewHandler(useCase SlotFinder, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/booking-types/{typeId}/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	typeID, err := handlers.PathID(r, "typeId")
	if err != nil {
		h.logger.Warn("%s - Invalid type ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidTypeID)
		return
	}

	if r.URL.Query().Get("date") == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := handlers.QueryDate(r, "date")
	if err != nil {
		h.logger.Warn("%s - Invalid date: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{BookingTypeID: typeID, Date: date})
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Slots retrieved: type_id=%d, date=%s, slots=%d",
		route, typeID, r.URL.Query().Get("date"), len(result.Day.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
