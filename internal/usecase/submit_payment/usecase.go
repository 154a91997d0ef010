package submit_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	bookingRepo "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/booking"
	documentRepo "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/document"
	paymentRepo "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/payment"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/integrations/filestore"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/notifications"
)

const proofPrefix = "payments"

// UseCase отправка или повторная отправка оплаты по заявке
type UseCase struct {
	paymentRepo  PaymentRepository
	documentRepo DocumentRepository
	bookingRepo  BookingRepository
	files        FileStore
	notifier     Notifier
	metrics      Metrics
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	paymentRepo PaymentRepository,
	documentRepo DocumentRepository,
	bookingRepo BookingRepository,
	files FileStore,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		paymentRepo:  paymentRepo,
		documentRepo: documentRepo,
		bookingRepo:  bookingRepo,
		files:        files,
		notifier:     notifier,
		metrics:      metrics,
		txManager:    txManager,
		logger:       logger,
	}
}

// payable то, что нужно знать о заявке для приёма оплаты
type payable struct {
	ownerID       int64
	fee           decimal.Decimal
	active        bool
	paymentStatus domain.PaymentStatus
}

// Execute сохраняет подтверждение, создаёт платёж (или обновляет его после отклонения)
// и переводит payment_status заявки в pending одной транзакцией
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Payment, error) {
	uc.logger.Info("SubmitPayment: user=%d, %s id=%d, method=%s",
		req.Caller.UserID, req.ReferenceType, req.ReferenceID, req.Method)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SubmitPayment: validation failed: %v", err)
		return nil, err
	}

	// 1. Файл сохраняется до транзакции; при откате удаляется
	var proofPath *string
	if req.Proof != nil {
		path, err := uc.files.Store(ctx, proofPrefix, req.ProofName, req.Proof)
		if err != nil {
			if errors.Is(err, filestore.ErrUnsupportedType) || errors.Is(err, filestore.ErrTooLarge) {
				uc.logger.Warn("SubmitPayment: proof %q rejected: %v", req.ProofName, err)
				return nil, fmt.Errorf("%w: proof of payment: %v", domain.ErrValidation, err)
			}
			uc.logger.Error("SubmitPayment: failed to store proof %q: %v", req.ProofName, err)
			return nil, fmt.Errorf("%w: failed to store proof: %v", ErrInternal, err)
		}
		proofPath = &path
	}

	var (
		result   *domain.Payment
		oldProof *string
	)

	// 2. Платёж и payment_status заявки меняются вместе
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		target, err := uc.loadPayable(txCtx, req.ReferenceType, req.ReferenceID)
		if err != nil {
			return err
		}

		if !req.Caller.Owns(target.ownerID) {
			uc.logger.Warn("SubmitPayment: user=%d denied access to %s id=%d", req.Caller.UserID, req.ReferenceType, req.ReferenceID)
			return domain.ErrAccessDenied
		}
		if !target.fee.IsPositive() {
			return fmt.Errorf("%w: %s %d has no fee", domain.ErrValidation, req.ReferenceType, req.ReferenceID)
		}
		if !target.active {
			return fmt.Errorf("%w: %s %d is closed", domain.ErrInvalidTransition, req.ReferenceType, req.ReferenceID)
		}
		if target.paymentStatus == domain.PaymentPaid {
			return fmt.Errorf("%w: %s %d is already paid", domain.ErrInvalidTransition, req.ReferenceType, req.ReferenceID)
		}

		sub := domain.Submission{
			UserID:        target.ownerID,
			ReferenceType: req.ReferenceType,
			ReferenceID:   req.ReferenceID,
			Amount:        target.fee,
			Method:        req.Method,
			ProofPath:     proofPath,
		}

		existing, err := uc.paymentRepo.GetByReference(txCtx, req.ReferenceType, req.ReferenceID)
		switch {
		case errors.Is(err, paymentRepo.ErrPaymentNotFound):
			created, err := uc.paymentRepo.Create(txCtx, sub)
			if err != nil {
				uc.logger.Error("SubmitPayment: failed to create payment: %v", err)
				return fmt.Errorf("%w: failed to create payment: %w", ErrInternal, err)
			}
			result = created
		case err != nil:
			uc.logger.Error("SubmitPayment: failed to get payment: %v", err)
			return fmt.Errorf("%w: failed to get payment: %w", ErrInternal, err)
		default:
			if existing.Status == domain.PaymentRecordVerified {
				return fmt.Errorf("%w: payment %d is already verified", domain.ErrInvalidTransition, existing.ID)
			}
			if err := uc.paymentRepo.Resubmit(txCtx, existing.ID, sub); err != nil {
				uc.logger.Error("SubmitPayment: failed to resubmit payment id=%d: %v", existing.ID, err)
				return fmt.Errorf("%w: failed to resubmit payment: %w", ErrInternal, err)
			}
			result, err = uc.paymentRepo.GetByID(txCtx, existing.ID)
			if err != nil {
				return fmt.Errorf("%w: failed to reload payment: %w", ErrInternal, err)
			}
			oldProof = existing.ProofPath
		}

		if err := uc.setEntityPaymentStatus(txCtx, req.ReferenceType, req.ReferenceID, domain.PaymentPending); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if proofPath != nil {
			if rmErr := uc.files.Remove(*proofPath); rmErr != nil {
				uc.logger.Warn("SubmitPayment: failed to remove orphan proof %s: %v", *proofPath, rmErr)
			}
		}
		return nil, err
	}

	if oldProof != nil && (proofPath == nil || *oldProof != *proofPath) {
		if err := uc.files.Remove(*oldProof); err != nil {
			uc.logger.Warn("SubmitPayment: failed to remove replaced proof %s: %v", *oldProof, err)
		}
	}

	uc.logger.Info("SubmitPayment: payment id=%d pending for %s id=%d", result.ID, req.ReferenceType, req.ReferenceID)

	uc.metrics.Transition("payment", "submitted")
	uc.notifier.Emit(ctx, notifications.PaymentEvent(result, "submitted"))

	return result, nil
}

func (uc *UseCase) loadPayable(ctx context.Context, refType domain.ReferenceType, refID int64) (*payable, error) {
	switch refType {
	case domain.ReferenceDocumentRequest:
		d, err := uc.documentRepo.GetByID(ctx, refID)
		if err != nil {
			if errors.Is(err, documentRepo.ErrDocumentRequestNotFound) {
				return nil, fmt.Errorf("%w: document request %d", domain.ErrNotFound, refID)
			}
			return nil, fmt.Errorf("%w: failed to get document request: %w", ErrInternal, err)
		}
		return &payable{ownerID: d.UserID, fee: d.Fee, active: d.IsActive() && !d.Status.IsTerminal(), paymentStatus: d.PaymentStatus}, nil
	default:
		b, err := uc.bookingRepo.GetByID(ctx, refID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return nil, fmt.Errorf("%w: booking %d", domain.ErrNotFound, refID)
			}
			return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
		}
		return &payable{ownerID: b.UserID, fee: b.Fee, active: !b.Status.IsTerminal(), paymentStatus: b.PaymentStatus}, nil
	}
}

func (uc *UseCase) setEntityPaymentStatus(ctx context.Context, refType domain.ReferenceType, refID int64, status domain.PaymentStatus) error {
	var err error
	if refType == domain.ReferenceDocumentRequest {
		err = uc.documentRepo.UpdatePaymentStatus(ctx, refID, status)
	} else {
		err = uc.bookingRepo.UpdatePaymentStatus(ctx, refID, status)
	}
	if err != nil {
		uc.logger.Error("SubmitPayment: failed to update payment status of %s id=%d: %v", refType, refID, err)
		return fmt.Errorf("%w: failed to update payment status: %w", ErrInternal, err)
	}
	return nil
}
