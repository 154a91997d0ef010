package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	catalogRepo "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/catalog"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	blockedRepo  BlockedDateRepository
	catalogRepo  CatalogRepository
	office       domain.OfficeHours
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	blockedRepo BlockedDateRepository,
	catalogRepo CatalogRepository,
	office domain.OfficeHours,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		blockedRepo:  blockedRepo,
		catalogRepo:  catalogRepo,
		office:       office,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: type=%d, date=%s", req.BookingTypeID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	date := domain.DateOnly(req.Date)
	now := uc.timeProvider.Now()

	// 2. Получаем тип бронирования
	bt, err := uc.catalogRepo.GetBookingType(ctx, req.BookingTypeID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrBookingTypeNotFound) {
			uc.logger.Warn("GetAvailableSlots: booking type id=%d not found", req.BookingTypeID)
			return nil, fmt.Errorf("%w: booking type %d", domain.ErrNotFound, req.BookingTypeID)
		}
		uc.logger.Error("GetAvailableSlots: failed to get booking type id=%d: %v", req.BookingTypeID, err)
		return nil, fmt.Errorf("%w: failed to get booking type: %v", ErrInternal, err)
	}

	response := &Response{
		Date:        date,
		BookingType: *bt,
		Day: domain.DaySlots{
			Slots:             []domain.AvailableSlot{},
			MaxBookingsPerDay: bt.MaxBookingsPerDay,
		},
	}

	if !bt.IsActive {
		uc.logger.Info("GetAvailableSlots: booking type id=%d is inactive", bt.ID)
		return response, nil
	}

	// 3. Генерируем временные слоты
	times, err := generateTimeSlots(uc.office, bt.DurationMinutes, date, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}
	if len(times) == 0 {
		return response, nil
	}

	// 4. Активные бронирования, блокировки и счётчик по типу
	bookings, err := uc.bookingRepo.ListActiveByDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	blocked, err := uc.blockedRepo.ListByDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocked dates: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocked dates: %v", ErrInternal, err)
	}

	booked, err := uc.bookingRepo.CountActiveByTypeAndDate(ctx, bt.ID, date, nil)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to count bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
	}

	// 5. Отмечаем занятость каждого слота
	response.Day.Slots = markSlots(times, bt.DurationMinutes, bookings, blocked)
	response.Day.BookedToday = booked

	uc.logger.Info("GetAvailableSlots: generated %d slots for type=%d, date=%s, remaining=%d",
		len(response.Day.Slots), bt.ID, date.Format(domain.DateFormat), response.Day.RemainingCapacity())

	return response, nil
}
