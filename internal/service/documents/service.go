package documents

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	documentRepo "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/document"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/documents/models"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/notifications"
)

// Service жизненный цикл заявок на документы
type Service struct {
	documentRepo DocumentRepository
	catalogRepo  CatalogRepository
	notifier     Notifier
	metrics      Metrics
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	documentRepo DocumentRepository,
	catalogRepo CatalogRepository,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		documentRepo: documentRepo,
		catalogRepo:  catalogRepo,
		notifier:     notifier,
		metrics:      metrics,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetByID заявка по ID; клиент видит только свою
func (s *Service) GetByID(ctx context.Context, caller domain.Caller, id int64) (*models.DocumentResponse, error) {
	d, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}
	if !caller.Owns(d.UserID) && !caller.IsStaff() {
		s.logger.Warn("GetByID: access denied for user=%d to document request id=%d", caller.UserID, id)
		return nil, domain.ErrAccessDenied
	}
	return models.FromDomainDocument(d, s.typeName(ctx, d.DocumentTypeID)), nil
}

// List заявки, новые первыми; клиенту доступны только собственные
func (s *Service) List(ctx context.Context, caller domain.Caller, userID *int64, status *string) (*models.DocumentListResponse, error) {
	filter := domain.DocumentFilter{UserID: userID}

	if !caller.IsStaff() {
		if userID != nil && !caller.Owns(*userID) {
			return nil, domain.ErrAccessDenied
		}
		own := caller.UserID
		filter.UserID = &own
	}

	if status != nil {
		st, err := models.ToDomainDocumentStatus(*status)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		filter.Status = &st
	}

	list, err := s.documentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainDocumentList(list), nil
}

// Approve pending -> processing; платная заявка без оплаты не одобряется
func (s *Service) Approve(ctx context.Context, caller domain.Caller, id int64) (*models.DocumentResponse, error) {
	if err := requireStaff(caller); err != nil {
		return nil, err
	}

	return s.transition(ctx, caller, id, domain.EventApprove, "approved", func(txCtx context.Context, d *domain.DocumentRequest) error {
		if err := domain.CheckApprovalPayment(d.RequiresPayment(), d.PaymentStatus); err != nil {
			s.logger.Warn("Approve: document request id=%d fee %s is %s", d.ID, d.Fee.StringFixed(2), d.PaymentStatus)
			return err
		}
		return s.documentRepo.Approve(txCtx, d.ID, caller.StaffID())
	})
}

// MarkReady processing -> ready
func (s *Service) MarkReady(ctx context.Context, caller domain.Caller, id int64) (*models.DocumentResponse, error) {
	if err := requireStaff(caller); err != nil {
		return nil, err
	}

	return s.transition(ctx, caller, id, domain.EventMarkReady, "ready", func(txCtx context.Context, d *domain.DocumentRequest) error {
		return s.documentRepo.UpdateStatus(txCtx, d.ID, domain.DocumentReady)
	})
}

// Complete ready -> completed: клиент скачал документ или персонал выдал его
func (s *Service) Complete(ctx context.Context, caller domain.Caller, id int64) (*models.DocumentResponse, error) {
	return s.transition(ctx, caller, id, domain.EventComplete, "completed", func(txCtx context.Context, d *domain.DocumentRequest) error {
		return s.documentRepo.UpdateStatus(txCtx, d.ID, domain.DocumentCompleted)
	})
}

// Reject pending -> rejected; причина обязательна
func (s *Service) Reject(ctx context.Context, caller domain.Caller, id int64, reason string) (*models.DocumentResponse, error) {
	if err := requireStaff(caller); err != nil {
		return nil, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", domain.ErrValidation)
	}
	if len(reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", domain.ErrValidation, domain.MaxReasonLength)
	}

	return s.transition(ctx, caller, id, domain.EventReject, "rejected", func(txCtx context.Context, d *domain.DocumentRequest) error {
		return s.documentRepo.Reject(txCtx, d.ID, caller.StaffID(), reason)
	})
}

// Cancel pending -> cancelled по просьбе владельца
func (s *Service) Cancel(ctx context.Context, caller domain.Caller, id int64, reason *string) (*models.DocumentResponse, error) {
	var cleaned *string
	if reason != nil {
		if trimmed := strings.TrimSpace(*reason); trimmed != "" {
			cleaned = &trimmed
		}
	}

	return s.transition(ctx, caller, id, domain.EventCancel, "cancelled", func(txCtx context.Context, d *domain.DocumentRequest) error {
		return s.documentRepo.Cancel(txCtx, d.ID, cleaned)
	})
}

// Assign закрепляет ожидающую заявку за сотрудником (processed_by)
func (s *Service) Assign(ctx context.Context, caller domain.Caller, id int64, staffID int64) error {
	if err := requireStaff(caller); err != nil {
		return err
	}
	if staffID <= 0 {
		return fmt.Errorf("%w: staffId must be positive", domain.ErrValidation)
	}

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		d, err := s.get(txCtx, "Assign", id)
		if err != nil {
			return err
		}
		if d.Status != domain.DocumentPending {
			return fmt.Errorf("%w: document request %d is %s", domain.ErrInvalidTransition, d.ID, d.Status)
		}
		if err := s.documentRepo.Assign(txCtx, d.ID, staffID); err != nil {
			return fmt.Errorf("%w: Assign - repository error: %w", ErrInternal, err)
		}
		s.logger.Info("Assign: document request id=%d assigned to staff=%d", id, staffID)
		return nil
	})
}

func (s *Service) transition(
	ctx context.Context,
	caller domain.Caller,
	id int64,
	event domain.Event,
	milestone string,
	apply func(txCtx context.Context, d *domain.DocumentRequest) error,
) (*models.DocumentResponse, error) {
	s.logger.Info("Transition: document request id=%d event=%s by user=%d", id, event, caller.UserID)

	var result *domain.DocumentRequest

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		d, err := s.get(txCtx, "Transition", id)
		if err != nil {
			return err
		}

		if !caller.Owns(d.UserID) && !caller.IsStaff() {
			s.logger.Warn("Transition: access denied for user=%d to document request id=%d", caller.UserID, id)
			return domain.ErrAccessDenied
		}

		if _, err := domain.NextDocumentStatus(d.Status, event); err != nil {
			s.logger.Warn("Transition: document request id=%d: %v", id, err)
			return err
		}

		if err := apply(txCtx, d); err != nil {
			if errors.Is(err, domain.ErrPaymentRequired) {
				return err
			}
			s.logger.Error("Transition: document request id=%d %s failed: %v", id, event, err)
			return fmt.Errorf("%w: Transition - repository error: %w", ErrInternal, err)
		}

		result, err = s.get(txCtx, "Transition", id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transition: document request id=%d is now %s", id, result.Status)

	s.metrics.Transition("document_request", string(event))
	s.notifier.Emit(ctx, notifications.DocumentEvent(result, milestone))

	return models.FromDomainDocument(result, s.typeName(ctx, result.DocumentTypeID)), nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.DocumentRequest, error) {
	d, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, documentRepo.ErrDocumentRequestNotFound) {
			s.logger.Warn("%s: document request id=%d not found", op, id)
			return nil, fmt.Errorf("%w: document request %d", domain.ErrNotFound, id)
		}
		s.logger.Error("%s: repository error for document request id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return d, nil
}

func (s *Service) typeName(ctx context.Context, typeID int64) string {
	dt, err := s.catalogRepo.GetDocumentType(ctx, typeID)
	if err != nil {
		s.logger.Warn("typeName: document type id=%d: %v", typeID, err)
		return ""
	}
	return dt.Name
}

func requireStaff(caller domain.Caller) error {
	if !caller.IsStaff() {
		return fmt.Errorf("%w: staff role required", domain.ErrAccessDenied)
	}
	return nil
}
