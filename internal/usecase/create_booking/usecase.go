package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	bookingRepo "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/booking"
	catalogRepo "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/catalog"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/integrations/filestore"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/notifications"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/slots"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/txmanager"
)

const (
	// Одна автоматическая повторная попытка после ошибки сериализации
	maxAttempts = 2

	proofPrefix = "payments"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo BookingRepository
	catalogRepo CatalogRepository
	paymentRepo PaymentRepository
	files       FileStore
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
	paymentRepo PaymentRepository,
	files FileStore,
	allocator Allocator,
	notifier Notifier,
	metrics Metrics,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		catalogRepo: catalogRepo,
		paymentRepo: paymentRepo,
		files:       files,
		allocator:   allocator,
		notifier:    notifier,
		metrics:     metrics,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию; при ошибке сериализации повторяет ровно один раз
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, type=%d, date=%s, time=%s",
		req.Caller.UserID, req.BookingTypeID, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	if req.Proof == nil && req.PaymentMethod != nil {
		uc.logger.Info("CreateBooking: paymentMethod %s without proof, booking stays unpaid", *req.PaymentMethod)
	}

	// 2. Подтверждение сохраняется до транзакции; при откате удаляется
	var proofPath *string
	if req.Proof != nil {
		path, err := uc.files.Store(ctx, proofPrefix, req.ProofName, req.Proof)
		if err != nil {
			if errors.Is(err, filestore.ErrUnsupportedType) || errors.Is(err, filestore.ErrTooLarge) {
				uc.logger.Warn("CreateBooking: proof %q rejected: %v", req.ProofName, err)
				return nil, fmt.Errorf("%w: proof of payment: %v", domain.ErrValidation, err)
			}
			uc.logger.Error("CreateBooking: failed to store proof %q: %v", req.ProofName, err)
			return nil, fmt.Errorf("%w: failed to store proof: %v", ErrInternal, err)
		}
		proofPath = &path
	}

	var result *Response

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := txmanager.WithRetry(ctx, maxAttempts, func(ctx context.Context) error {
		return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			res, err := uc.create(txCtx, req, proofPath)
			if err != nil {
				return err
			}
			result = res
			return nil
		})
	})
	if err != nil {
		if proofPath != nil {
			if rmErr := uc.files.Remove(*proofPath); rmErr != nil {
				uc.logger.Warn("CreateBooking: failed to remove orphan proof %s: %v", *proofPath, rmErr)
			}
		}
		if errors.Is(err, txmanager.ErrSerializationFailure) {
			uc.logger.Warn("CreateBooking: serialization failure after %d attempts: %v", maxAttempts, err)
			return nil, fmt.Errorf("%w: slot was contended, please confirm and retry", domain.ErrConcurrencyConflict)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.Booking.ID)

	// 4. Побочные эффекты после фиксации
	uc.metrics.Transition("booking", "created")
	uc.notifier.Emit(ctx, notifications.BookingEvent(&result.Booking, "created"))
	if result.Payment != nil {
		uc.notifier.Emit(ctx, notifications.PaymentEvent(result.Payment, "submitted"))
	}

	return result, nil
}

func (uc *UseCase) create(txCtx context.Context, req *Request, proofPath *string) (*Response, error) {
	// 2.1. Блокируем строку типа (FOR UPDATE): конкурирующие создания на этот тип идут по очереди
	bt, err := uc.catalogRepo.GetBookingType(txCtx, req.BookingTypeID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBookingTypeNotFound) {
			uc.logger.Warn("CreateBooking: booking type id=%d not found", req.BookingTypeID)
			return nil, fmt.Errorf("%w: booking type %d", domain.ErrNotFound, req.BookingTypeID)
		}
		uc.logger.Error("CreateBooking: failed to get booking type id=%d: %v", req.BookingTypeID, err)
		return nil, fmt.Errorf("%w: failed to get booking type: %w", ErrInternal, err)
	}
	if !bt.IsActive {
		uc.logger.Warn("CreateBooking: booking type id=%d is inactive", bt.ID)
		return nil, fmt.Errorf("%w: %s is not offered", domain.ErrValidation, bt.Name)
	}

	// 2.2. Проверки допуска: прошлое, блокировки, лимит, занятость слота
	if err := uc.allocator.Admit(txCtx, slots.AdmitRequest{
		BookingType: bt,
		Date:        req.Date,
		Time:        req.Time,
	}); err != nil {
		return nil, err
	}

	endTime, err := slots.EndTime(bt, req.Time)
	if err != nil {
		return nil, err
	}

	// pending только при приложенном подтверждении
	withPayment := proofPath != nil
	if withPayment && !bt.Fee.IsPositive() {
		return nil, fmt.Errorf("%w: %s has no fee", domain.ErrValidation, bt.Name)
	}
	paymentStatus := domain.PaymentUnpaid
	if withPayment {
		paymentStatus = domain.PaymentPending
	}

	// 2.3. Создаём бронирование со снимком стоимости
	created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
		UserID:        req.Caller.UserID,
		BookingTypeID: bt.ID,
		Fee:           bt.Fee,
		BookingDate:   domain.DateOnly(req.Date),
		BookingTime:   req.Time,
		EndTime:       endTime,
		Status:        domain.BookingPending,
		PaymentStatus: paymentStatus,
		Notes:         req.Notes,
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrSlotConflict) {
			uc.logger.Warn("CreateBooking: unique index rejected slot %s %s", req.Date.Format(domain.DateFormat), req.Time)
			return nil, fmt.Errorf("%w: %s %s", domain.ErrSlotTaken, req.Date.Format(domain.DateFormat), req.Time)
		}
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
	}

	res := &Response{Booking: *created, TypeName: bt.Name}

	// 2.4. Приложенное подтверждение создаёт платёж в той же транзакции
	if withPayment {
		p, err := uc.paymentRepo.Create(txCtx, domain.Submission{
			UserID:        created.UserID,
			ReferenceType: domain.ReferenceBooking,
			ReferenceID:   created.ID,
			Amount:        created.Fee,
			Method:        *req.PaymentMethod,
			ProofPath:     proofPath,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create payment for booking id=%d: %v", created.ID, err)
			return nil, fmt.Errorf("%w: failed to create payment: %w", ErrInternal, err)
		}
		res.Payment = p
	}

	return res, nil
}
