package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	bookingRepo "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/booking"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/bookings/models"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/notifications"
)

// Service жизненный цикл бронирований после создания
type Service struct {
	bookingRepo BookingRepository
	catalogRepo CatalogRepository
	notifier    Notifier
	metrics     Metrics
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	catalogRepo CatalogRepository,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		notifier:    notifier,
		metrics:     metrics,
		txManager:   txManager,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Клиент видит только своё бронирование, персонал - любое
func (s *Service) GetByID(ctx context.Context, caller domain.Caller, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, caller.UserID)

	booking, err := s.get(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !caller.Owns(booking.UserID) && !caller.IsStaff() {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", caller.UserID, id)
		return nil, domain.ErrAccessDenied
	}

	return models.FromDomainBooking(booking, s.typeName(ctx, booking.BookingTypeID)), nil
}

// GetUserBookings история бронирований пользователя, опционально по статусу
func (s *Service) GetUserBookings(ctx context.Context, caller domain.Caller, userID int64, status *string) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", userID, status)

	if !caller.Owns(userID) && !caller.IsStaff() {
		s.logger.Warn("GetUserBookings: access denied for user=%d to bookings of user=%d", caller.UserID, userID)
		return nil, domain.ErrAccessDenied
	}

	return s.List(ctx, caller, &models.ListBookingsRequest{UserID: &userID, Status: status, IncludeInactive: true})
}

// List бронирования с фильтрацией; клиенту доступны только собственные
func (s *Service) List(ctx context.Context, caller domain.Caller, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	if !caller.IsStaff() {
		if req.UserID != nil && !caller.Owns(*req.UserID) {
			return nil, domain.ErrAccessDenied
		}
		own := caller.UserID
		req.UserID = &own
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", domain.ErrValidation)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Approve pending -> approved; платное бронирование без оплаты одобрить нельзя
func (s *Service) Approve(ctx context.Context, caller domain.Caller, id int64) (*models.BookingResponse, error) {
	if err := requireStaff(caller); err != nil {
		return nil, err
	}

	return s.transition(ctx, caller, id, domain.EventApprove, "approved", func(txCtx context.Context, b *domain.Booking) error {
		if err := domain.CheckApprovalPayment(b.RequiresPayment(), b.PaymentStatus); err != nil {
			s.logger.Warn("Approve: booking id=%d fee %s is %s", b.ID, b.Fee.StringFixed(2), b.PaymentStatus)
			return err
		}
		return s.bookingRepo.Approve(txCtx, b.ID, caller.StaffID())
	})
}

// Reject pending -> rejected; причина обязательна и проверяется до изменения состояния
func (s *Service) Reject(ctx context.Context, caller domain.Caller, id int64, reason string) (*models.BookingResponse, error) {
	if err := requireStaff(caller); err != nil {
		return nil, err
	}

	reason, err := requireReason(reason)
	if err != nil {
		return nil, err
	}

	return s.transition(ctx, caller, id, domain.EventReject, "rejected", func(txCtx context.Context, b *domain.Booking) error {
		return s.bookingRepo.Reject(txCtx, b.ID, reason)
	})
}

// Complete approved -> completed
func (s *Service) Complete(ctx context.Context, caller domain.Caller, id int64) (*models.BookingResponse, error) {
	if err := requireStaff(caller); err != nil {
		return nil, err
	}

	return s.transition(ctx, caller, id, domain.EventComplete, "completed", func(txCtx context.Context, b *domain.Booking) error {
		return s.bookingRepo.UpdateStatus(txCtx, b.ID, domain.BookingCompleted)
	})
}

// Cancel освобождает слот
// Клиент отменяет только своё ожидающее бронирование, персонал - ожидающее или одобренное
func (s *Service) Cancel(ctx context.Context, caller domain.Caller, id int64, reason *string) (*models.BookingResponse, error) {
	var cleaned *string
	if reason != nil {
		trimmed := strings.TrimSpace(*reason)
		if len(trimmed) > domain.MaxReasonLength {
			return nil, fmt.Errorf("%w: reason must be at most %d characters", domain.ErrValidation, domain.MaxReasonLength)
		}
		if trimmed != "" {
			cleaned = &trimmed
		}
	}

	return s.transition(ctx, caller, id, domain.EventCancel, "cancelled", func(txCtx context.Context, b *domain.Booking) error {
		if !caller.IsStaff() && b.Status != domain.BookingPending {
			s.logger.Warn("Cancel: client user=%d cannot cancel booking id=%d in status %s", caller.UserID, b.ID, b.Status)
			return fmt.Errorf("%w: only pending bookings can be cancelled by the client", domain.ErrInvalidTransition)
		}
		return s.bookingRepo.Cancel(txCtx, b.ID, cleaned)
	})
}

// Assign закрепляет ожидающее бронирование за сотрудником (approved_by)
func (s *Service) Assign(ctx context.Context, caller domain.Caller, id int64, staffID int64) error {
	if err := requireStaff(caller); err != nil {
		return err
	}
	if staffID <= 0 {
		return fmt.Errorf("%w: staffId must be positive", domain.ErrValidation)
	}

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := s.get(txCtx, "Assign", id)
		if err != nil {
			return err
		}
		if b.Status != domain.BookingPending {
			return fmt.Errorf("%w: booking %d is %s", domain.ErrInvalidTransition, b.ID, b.Status)
		}
		if err := s.bookingRepo.Assign(txCtx, b.ID, staffID); err != nil {
			s.logger.Error("Assign: repository error for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: Assign - repository error: %w", ErrInternal, err)
		}
		s.logger.Info("Assign: booking id=%d assigned to staff=%d", id, staffID)
		return nil
	})
}

// transition общий сценарий: строка под FOR UPDATE, проверка по таблице переходов, изменение, перечитывание
// Уведомление и метрика отправляются только после фиксации
func (s *Service) transition(
	ctx context.Context,
	caller domain.Caller,
	id int64,
	event domain.Event,
	milestone string,
	apply func(txCtx context.Context, b *domain.Booking) error,
) (*models.BookingResponse, error) {
	s.logger.Info("Transition: booking id=%d event=%s by user=%d", id, event, caller.UserID)

	var result *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		b, err := s.get(txCtx, "Transition", id)
		if err != nil {
			return err
		}

		if !caller.Owns(b.UserID) && !caller.IsStaff() {
			s.logger.Warn("Transition: access denied for user=%d to booking id=%d", caller.UserID, id)
			return domain.ErrAccessDenied
		}

		if _, err := domain.NextBookingStatus(b.Status, event); err != nil {
			s.logger.Warn("Transition: booking id=%d: %v", id, err)
			return err
		}

		if err := apply(txCtx, b); err != nil {
			if errors.Is(err, domain.ErrPaymentRequired) || errors.Is(err, domain.ErrInvalidTransition) {
				return err
			}
			s.logger.Error("Transition: booking id=%d %s failed: %v", id, event, err)
			return fmt.Errorf("%w: Transition - repository error: %w", ErrInternal, err)
		}

		result, err = s.get(txCtx, "Transition", id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transition: booking id=%d is now %s", id, result.Status)

	s.metrics.Transition("booking", string(event))
	s.notifier.Emit(ctx, notifications.BookingEvent(result, milestone))

	return models.FromDomainBooking(result, s.typeName(ctx, result.BookingTypeID)), nil
}

func (s *Service) get(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, fmt.Errorf("%w: booking %d", domain.ErrNotFound, id)
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return b, nil
}

// typeName название типа для ответа; ошибка справочника не мешает ответу
func (s *Service) typeName(ctx context.Context, typeID int64) string {
	bt, err := s.catalogRepo.GetBookingType(ctx, typeID)
	if err != nil {
		s.logger.Warn("typeName: booking type id=%d: %v", typeID, err)
		return ""
	}
	return bt.Name
}

func requireStaff(caller domain.Caller) error {
	if !caller.IsStaff() {
		return fmt.Errorf("%w: staff role required", domain.ErrAccessDenied)
	}
	return nil
}

func requireReason(reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", fmt.Errorf("%w: rejection reason is required", domain.ErrValidation)
	}
	if len(reason) > domain.MaxReasonLength {
		return "", fmt.Errorf("%w: reason must be at most %d characters", domain.ErrValidation, domain.MaxReasonLength)
	}
	return reason, nil
}
