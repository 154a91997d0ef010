package document_action

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/middleware"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/documents/models"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/ptr"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/validator"
)

const (
	route = "PATCH /document-requests/{requestId}/{action}"

	msgInvalidRequestID   = "invalid document request ID"
	msgInvalidRequestBody = "invalid request body"
	msgUnknownAction      = "unknown action, expected one of approve, ready, complete, reject, cancel, assign"
	msgStaffIDRequired    = "staffId is required to assign"
)

type Handler struct {
	service   DocumentService
	validator *validator.Validator
	logger    Logger
}

func NewHandler(service DocumentService, logger Logger) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(),
		logger:    logger,
	}
}

// Handle PATCH /api/v1/document-requests/{requestId}/{action}
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
	action := mux.Vars(r)["action"]

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

	var result *models.DocumentResponse
	switch action {
	case ActionApprove:
		result, err = h.service.Approve(r.Context(), caller, requestID)
	case ActionReady:
		result, err = h.service.MarkReady(r.Context(), caller, requestID)
	case ActionComplete:
		result, err = h.service.Complete(r.Context(), caller, requestID)
	case ActionReject:
		result, err = h.service.Reject(r.Context(), caller, requestID, ptr.Deref(req.Reason, ""))
	case ActionCancel:
		result, err = h.service.Cancel(r.Context(), caller, requestID, req.Reason)
	case ActionAssign:
		if req.StaffID == nil {
			handlers.RespondBadRequest(w, msgStaffIDRequired)
			return
		}
		err = h.service.Assign(r.Context(), caller, requestID, *req.StaffID)
	default:
		h.logger.Warn("%s - Unknown action %q", route, action)
		handlers.RespondNotFound(w, msgUnknownAction)
		return
	}
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Action %s applied: request_id=%d, caller=%d", route, action, requestID, caller.UserID)
	if result == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}
