package review_payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	paymentRepo "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/payment"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/notifications"
)

// GatewayFailureReason причина отклонения по ответу платёжного шлюза
const GatewayFailureReason = "payment gateway reported failure"

// UseCase проверка платежей персоналом и шлюзом
// Статус платежа и payment_status заявки меняются одной транзакцией
type UseCase struct {
	paymentRepo PaymentRepository
	documents   EntityPaymentUpdater
	bookings    EntityPaymentUpdater
	notifier    Notifier
	metrics     Metrics
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	paymentRepo PaymentRepository,
	documents EntityPaymentUpdater,
	bookings EntityPaymentUpdater,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		paymentRepo: paymentRepo,
		documents:   documents,
		bookings:    bookings,
		notifier:    notifier,
		metrics:     metrics,
		txManager:   txManager,
		logger:      logger,
	}
}

// Verify pending -> verified; заявка становится paid
func (uc *UseCase) Verify(ctx context.Context, caller domain.Caller, paymentID int64) (*domain.Payment, error) {
	uc.logger.Info("VerifyPayment: payment=%d, caller=%d", paymentID, caller.UserID)

	if !caller.IsStaff() {
		uc.logger.Warn("VerifyPayment: user=%d is not staff", caller.UserID)
		return nil, domain.ErrAccessDenied
	}

	return uc.transition(ctx, paymentID, domain.EventVerify, func(txCtx context.Context, p *domain.Payment) error {
		if err := uc.paymentRepo.Verify(txCtx, p.ID, caller.StaffID()); err != nil {
			return fmt.Errorf("%w: failed to verify payment: %w", ErrInternal, err)
		}
		return uc.setEntityPaymentStatus(txCtx, p, domain.PaymentPaid)
	})
}

// Reject pending -> rejected с обязательной причиной; заявка снова unpaid и может оплатить повторно
func (uc *UseCase) Reject(ctx context.Context, caller domain.Caller, paymentID int64, reason string) (*domain.Payment, error) {
	uc.logger.Info("RejectPayment: payment=%d, caller=%d", paymentID, caller.UserID)

	if !caller.IsStaff() {
		uc.logger.Warn("RejectPayment: user=%d is not staff", caller.UserID)
		return nil, domain.ErrAccessDenied
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", domain.ErrValidation)
	}
	if len(reason) > domain.MaxReasonLength {
		return nil, fmt.Errorf("%w: reason must be at most %d characters", domain.ErrValidation, domain.MaxReasonLength)
	}

	return uc.transition(ctx, paymentID, domain.EventReject, func(txCtx context.Context, p *domain.Payment) error {
		if err := uc.paymentRepo.Reject(txCtx, p.ID, caller.StaffID(), reason); err != nil {
			return fmt.Errorf("%w: failed to reject payment: %w", ErrInternal, err)
		}
		return uc.setEntityPaymentStatus(txCtx, p, domain.PaymentUnpaid)
	})
}

// ApplyGatewayResult результат шлюза равносилен проверке системным пользователем
func (uc *UseCase) ApplyGatewayResult(ctx context.Context, paymentID int64, status domain.GatewayStatus) (*domain.Payment, error) {
	uc.logger.Info("ApplyGatewayResult: payment=%d, status=%s", paymentID, status)

	switch status {
	case domain.GatewayVerified:
		return uc.Verify(ctx, domain.SystemCaller, paymentID)
	case domain.GatewayFailed:
		return uc.Reject(ctx, domain.SystemCaller, paymentID, GatewayFailureReason)
	default:
		return nil, fmt.Errorf("%w: unknown gateway status %q", domain.ErrValidation, status)
	}
}

// Assign закрепляет ожидающий проверки платёж за сотрудником
func (uc *UseCase) Assign(ctx context.Context, caller domain.Caller, paymentID int64, staffID int64) error {
	if !caller.IsStaff() || caller.Role == domain.RoleSystem {
		return domain.ErrAccessDenied
	}
	if staffID <= 0 {
		return fmt.Errorf("%w: staffId must be positive", domain.ErrValidation)
	}

	return uc.txManager.Do(ctx, func(txCtx context.Context) error {
		p, err := uc.get(txCtx, paymentID)
		if err != nil {
			return err
		}
		if p.Status != domain.PaymentRecordPending {
			return fmt.Errorf("%w: payment %d is %s", domain.ErrInvalidTransition, p.ID, p.Status)
		}
		if err := uc.paymentRepo.Assign(txCtx, p.ID, staffID); err != nil {
			return fmt.Errorf("%w: failed to assign payment: %w", ErrInternal, err)
		}
		uc.logger.Info("AssignPayment: payment id=%d assigned to staff=%d", p.ID, staffID)
		return nil
	})
}

// ListPending очередь на проверку, старые первыми
func (uc *UseCase) ListPending(ctx context.Context, caller domain.Caller) ([]*domain.Payment, error) {
	if !caller.IsStaff() {
		return nil, domain.ErrAccessDenied
	}
	list, err := uc.paymentRepo.ListByStatus(ctx, domain.PaymentRecordPending)
	if err != nil {
		uc.logger.Error("ListPendingPayments: repository error: %v", err)
		return nil, fmt.Errorf("%w: failed to list payments: %v", ErrInternal, err)
	}
	return list, nil
}

func (uc *UseCase) transition(
	ctx context.Context,
	paymentID int64,
	event domain.Event,
	apply func(txCtx context.Context, p *domain.Payment) error,
) (*domain.Payment, error) {
	var result *domain.Payment

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		p, err := uc.get(txCtx, paymentID)
		if err != nil {
			return err
		}

		if _, err := domain.NextPaymentStatus(p.Status, event); err != nil {
			uc.logger.Warn("PaymentTransition: payment id=%d: %v", p.ID, err)
			return err
		}

		if err := apply(txCtx, p); err != nil {
			uc.logger.Error("PaymentTransition: payment id=%d %s failed: %v", p.ID, event, err)
			return err
		}

		result, err = uc.get(txCtx, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	milestone := "verified"
	if event == domain.EventReject {
		milestone = "rejected"
	}

	uc.logger.Info("PaymentTransition: payment id=%d is %s", result.ID, result.Status)
	uc.metrics.Transition("payment", string(event))
	uc.notifier.Emit(ctx, notifications.PaymentEvent(result, milestone))

	return result, nil
}

func (uc *UseCase) get(ctx context.Context, id int64) (*domain.Payment, error) {
	p, err := uc.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return nil, fmt.Errorf("%w: payment %d", domain.ErrNotFound, id)
		}
		uc.logger.Error("PaymentTransition: failed to get payment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get payment: %w", ErrInternal, err)
	}
	return p, nil
}

func (uc *UseCase) setEntityPaymentStatus(ctx context.Context, p *domain.Payment, status domain.PaymentStatus) error {
	target := uc.bookings
	if p.ReferenceType == domain.ReferenceDocumentRequest {
		target = uc.documents
	}
	if err := target.UpdatePaymentStatus(ctx, p.ReferenceID, status); err != nil {
		return fmt.Errorf("%w: failed to update %s %d payment status: %w", ErrInternal, p.ReferenceType, p.ReferenceID, err)
	}
	return nil
}
