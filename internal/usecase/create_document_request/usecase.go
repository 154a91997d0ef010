package create_document_request

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	catalogRepo "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/catalog"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/notifications"
)

// UseCase создание заявки на документ со снимком стоимости типа
type UseCase struct {
	documentRepo DocumentRepository
	catalogRepo  CatalogRepository
	notifier     Notifier
	metrics      Metrics
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	documentRepo DocumentRepository,
	catalogRepo CatalogRepository,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		documentRepo: documentRepo,
		catalogRepo:  catalogRepo,
		notifier:     notifier,
		metrics:      metrics,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute создаёт заявку в статусе pending; оплата не требуется, если стоимость типа нулевая
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateDocumentRequest: user=%d, type=%d", req.Caller.UserID, req.DocumentTypeID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateDocumentRequest: validation failed: %v", err)
		return nil, err
	}

	var result *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		dt, err := uc.catalogRepo.GetDocumentType(txCtx, req.DocumentTypeID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrDocumentTypeNotFound) {
				uc.logger.Warn("CreateDocumentRequest: document type id=%d not found", req.DocumentTypeID)
				return fmt.Errorf("%w: document type %d", domain.ErrNotFound, req.DocumentTypeID)
			}
			uc.logger.Error("CreateDocumentRequest: failed to get document type id=%d: %v", req.DocumentTypeID, err)
			return fmt.Errorf("%w: failed to get document type: %w", ErrInternal, err)
		}
		if !dt.IsActive {
			return fmt.Errorf("%w: %s is not offered", domain.ErrValidation, dt.Name)
		}

		var purpose *string
		if req.Purpose != nil {
			if trimmed := strings.TrimSpace(*req.Purpose); trimmed != "" {
				purpose = &trimmed
			}
		}

		created, err := uc.documentRepo.Create(txCtx, &domain.DocumentRequest{
			UserID:         req.Caller.UserID,
			DocumentTypeID: dt.ID,
			Fee:            dt.Fee,
			Purpose:        purpose,
			Status:         domain.DocumentPending,
			PaymentStatus:  domain.PaymentUnpaid,
		})
		if err != nil {
			uc.logger.Error("CreateDocumentRequest: failed to create request: %v", err)
			return fmt.Errorf("%w: failed to create document request: %w", ErrInternal, err)
		}

		result = &Response{Request: *created, TypeName: dt.Name}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateDocumentRequest: successfully created request id=%d", result.Request.ID)

	uc.metrics.Transition("document_request", "created")
	uc.notifier.Emit(ctx, notifications.DocumentEvent(&result.Request, "created"))

	return result, nil
}
