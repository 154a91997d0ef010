package reschedule_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	bookingRepo "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/booking"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/notifications"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/slots"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/txmanager"
)

const maxAttempts = 2

// UseCase перенос одобренного бронирования на другой слот
type UseCase struct {
	bookingRepo BookingRepository
	catalogRepo CatalogRepository
	allocator   Allocator
	notifier    Notifier
	metrics     Metrics
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	allocator Allocator,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		allocator:   allocator,
		notifier:    notifier,
		metrics:     metrics,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute повторяет проверки допуска для нового слота, исключая само бронирование
// При любой ошибке бронирование остаётся без изменений
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("RescheduleBooking: booking=%d, caller=%d, date=%s, time=%s",
		req.BookingID, req.Caller.UserID, req.Date.Format(domain.DateFormat), req.Time)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RescheduleBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	err := txmanager.WithRetry(ctx, maxAttempts, func(ctx context.Context) error {
		return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			b, err := uc.reschedule(txCtx, req)
			if err != nil {
				return err
			}
			result = b
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("RescheduleBooking: serialization failure after %d attempts: %v", maxAttempts, err)
			return nil, fmt.Errorf("%w: slot was contended, please confirm and retry", domain.ErrConcurrencyConflict)
		}
		return nil, err
	}

	uc.logger.Info("RescheduleBooking: booking id=%d moved to %s %s",
		result.ID, result.BookingDate.Format(domain.DateFormat), result.BookingTime)

	uc.metrics.Transition("booking", string(domain.EventReschedule))
	uc.notifier.Emit(ctx, notifications.BookingEvent(result, "rescheduled"))

	return result, nil
}

func (uc *UseCase) reschedule(txCtx context.Context, req *Request) (*domain.Booking, error) {
	b, err := uc.bookingRepo.GetByID(txCtx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, fmt.Errorf("%w: booking %d", domain.ErrNotFound, req.BookingID)
		}
		uc.logger.Error("RescheduleBooking: failed to get booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: failed to get booking: %w", ErrInternal, err)
	}

	if !req.Caller.Owns(b.UserID) && !req.Caller.IsStaff() {
		uc.logger.Warn("RescheduleBooking: user=%d denied access to booking id=%d", req.Caller.UserID, b.ID)
		return nil, domain.ErrAccessDenied
	}

	if _, err := domain.NextBookingStatus(b.Status, domain.EventReschedule); err != nil {
		uc.logger.Warn("RescheduleBooking: booking id=%d: %v", b.ID, err)
		return nil, err
	}

	bt, err := uc.catalogRepo.GetBookingType(txCtx, b.BookingTypeID)
	if err != nil {
		uc.logger.Error("RescheduleBooking: failed to get booking type id=%d: %v", b.BookingTypeID, err)
		return nil, fmt.Errorf("%w: failed to get booking type: %w", ErrInternal, err)
	}

	if err := uc.allocator.Admit(txCtx, slots.AdmitRequest{
		BookingType:      bt,
		Date:             req.Date,
		Time:             req.Time,
		ExcludeBookingID: &b.ID,
	}); err != nil {
		return nil, err
	}

	endTime, err := slots.EndTime(bt, req.Time)
	if err != nil {
		return nil, err
	}

	var reason *string
	if req.Reason != nil {
		if trimmed := strings.TrimSpace(*req.Reason); trimmed != "" {
			reason = &trimmed
		}
	}

	change := domain.RescheduleChange{
		Date:    domain.DateOnly(req.Date),
		Time:    req.Time,
		EndTime: endTime,
		Reason:  reason,
	}
	if err := uc.bookingRepo.Reschedule(txCtx, b.ID, b, change); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotConflict) {
			return nil, fmt.Errorf("%w: %s %s", domain.ErrSlotTaken, req.Date.Format(domain.DateFormat), req.Time)
		}
		uc.logger.Error("RescheduleBooking: failed to update booking id=%d: %v", b.ID, err)
		return nil, fmt.Errorf("%w: failed to reschedule booking: %w", ErrInternal, err)
	}

	updated, err := uc.bookingRepo.GetByID(txCtx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to reload booking: %w", ErrInternal, err)
	}
	return updated, nil
}
