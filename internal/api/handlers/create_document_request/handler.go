package create_document_request

import (
	"net/http"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/middleware"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/documents/models"
	createDocumentRequest "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/usecase/create_document_request"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/validator"
)

const (
	route = "POST /document-requests"

	msgInvalidRequestBody = "invalid request body"
)

type Handler struct {
	useCase   CreateDocumentRequestUseCase
	validator *validator.Validator
	logger    Logger
}

func NewHandler(useCase CreateDocumentRequestUseCase, logger Logger) *Handler {
	return &Handler{
		useCase:   useCase,
		validator: validator.New(),
		logger:    logger,
	}
}

// Handle POST /api/v1/document-requests
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.RequireCaller(w, r)
	if !ok {
		return
	}

	var req CreateDocumentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	result, err := h.useCase.Execute(r.Context(), &createDocumentRequest.Request{
		Caller:         caller,
		DocumentTypeID: req.DocumentTypeID,
		Purpose:        req.Purpose,
	})
	if err != nil {
		handlers.RespondDomainError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Document request created: request_id=%d, user_id=%d", route, result.Request.ID, caller.UserID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainDocument(&result.Request, result.TypeName))
}
