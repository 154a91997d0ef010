package get_document_request

import (
	"net/http"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/middleware"
)

const (
	route = "GET /document-requests/{requestId}"

	msgInvalidRequestID = "invalid document request ID"
)

type Handler struct {
	service DocumentService
	logger  Logger
}

func NewHandler(service DocumentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/document-requests/{requestId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.RequireCaller(w, r)
	if !ok {
		return
	}

	requestID, err := handlers.PathID(r, "requestId")
	if err != nil {
		h.logger.Warn("%s - Invalid request ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestID)
		return
	}

	doc, err := h.service.GetByID(r.Context(), caller, requestID)
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Document request retrieved: request_id=%d", route, requestID)
	handlers.RespondJSON(w, http.StatusOK, doc)
}
