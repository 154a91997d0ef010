package slots

import (
	"context"
	"fmt"
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/types"
)

// Результаты проверки для метрики allocation_results_total
const (
	ResultAdmitted         = "admitted"
	ResultPastDate         = "past_date"
	ResultDateBlocked      = "date_blocked"
	ResultCapacityExceeded = "capacity_exceeded"
	ResultSlotTaken        = "slot_taken"
)

// AdmitRequest кандидат на бронирование
// ExcludeBookingID задаётся при переносе, чтобы бронирование не конфликтовало само с собой
type AdmitRequest struct {
	BookingType      *domain.BookingType
	Date             time.Time
	Time             types.TimeString
	ExcludeBookingID *int64
}

// Allocator проверяет, можно ли занять слот
// Вызывается внутри транзакции, в которой уже заблокирована строка типа бронирования
type Allocator struct {
	bookingRepo  BookingRepository
	blockedRepo  BlockedDateRepository
	office       domain.OfficeHours
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewAllocator создает новый экземпляр проверки слотов
func NewAllocator(
	bookingRepo BookingRepository,
	blockedRepo BlockedDateRepository,
	office domain.OfficeHours,
	metrics Metrics,
	logger Logger,
) *Allocator {
	return &Allocator{
		bookingRepo:  bookingRepo,
		blockedRepo:  blockedRepo,
		office:       office,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени
func (a *Allocator) WithTimeProvider(tp TimeProvider) *Allocator {
	a.timeProvider = tp
	return a
}

// Admit выполняет проверки строго по порядку, останавливаясь на первой неудаче:
// прошедшая дата, блокировка даты, дневной лимит типа, занятость слота любым типом
func (a *Allocator) Admit(ctx context.Context, req AdmitRequest) error {
	if err := a.admit(ctx, req); err != nil {
		return err
	}
	a.record(ResultAdmitted)
	return nil
}

func (a *Allocator) admit(ctx context.Context, req AdmitRequest) error {
	if req.BookingType == nil {
		return fmt.Errorf("%w: booking type is required", domain.ErrValidation)
	}
	if err := req.Time.Validate(); err != nil {
		return fmt.Errorf("%w: invalid time: %v", domain.ErrValidation, err)
	}

	date := domain.DateOnly(req.Date)
	today := a.office.Today(a.timeProvider.Now())

	// 1. Дата в прошлом
	if domain.CalendarBefore(date, today) {
		a.logger.Warn("Admit: date %s is before today %s", date.Format(domain.DateFormat), today.Format(domain.DateFormat))
		a.record(ResultPastDate)
		return fmt.Errorf("%w: %s", domain.ErrPastDate, date.Format(domain.DateFormat))
	}

	// 2. Блокировка на весь день или на интервал, покрывающий время
	blocked, err := a.blockedRepo.ListByDate(ctx, date)
	if err != nil {
		a.logger.Error("Admit: failed to list blocked dates for %s: %v", date.Format(domain.DateFormat), err)
		return fmt.Errorf("%w: Admit - list blocked dates: %w", ErrInternal, err)
	}
	for _, b := range blocked {
		if b.Covers(req.Time) {
			a.logger.Warn("Admit: %s %s is blocked (id=%d)", date.Format(domain.DateFormat), req.Time, b.ID)
			a.record(ResultDateBlocked)
			return fmt.Errorf("%w: %s", domain.ErrDateBlocked, b.Reason)
		}
	}

	// 3. Дневной лимит по типу
	count, err := a.bookingRepo.CountActiveByTypeAndDate(ctx, req.BookingType.ID, date, req.ExcludeBookingID)
	if err != nil {
		a.logger.Error("Admit: failed to count bookings for type=%d: %v", req.BookingType.ID, err)
		return fmt.Errorf("%w: Admit - count bookings: %w", ErrInternal, err)
	}
	if count >= req.BookingType.MaxBookingsPerDay {
		a.logger.Warn("Admit: type=%d has %d/%d bookings on %s",
			req.BookingType.ID, count, req.BookingType.MaxBookingsPerDay, date.Format(domain.DateFormat))
		a.record(ResultCapacityExceeded)
		return fmt.Errorf("%w: %s allows %d bookings per day", domain.ErrCapacityExceeded,
			req.BookingType.Name, req.BookingType.MaxBookingsPerDay)
	}

	// 4. Слот занят бронированием любого типа
	taken, err := a.bookingRepo.ExistsActiveAtSlot(ctx, date, req.Time, req.ExcludeBookingID)
	if err != nil {
		a.logger.Error("Admit: failed to check slot %s %s: %v", date.Format(domain.DateFormat), req.Time, err)
		return fmt.Errorf("%w: Admit - check slot: %w", ErrInternal, err)
	}
	if taken {
		a.logger.Warn("Admit: slot %s %s already taken", date.Format(domain.DateFormat), req.Time)
		a.record(ResultSlotTaken)
		return fmt.Errorf("%w: %s %s", domain.ErrSlotTaken, date.Format(domain.DateFormat), req.Time)
	}

	return nil
}

// EndTime время окончания бронирования по длительности типа
func EndTime(bt *domain.BookingType, start types.TimeString) (types.TimeString, error) {
	end, err := start.AddMinutes(bt.DurationMinutes)
	if err != nil {
		return "", fmt.Errorf("%w: %s does not fit into the day: %v", domain.ErrValidation, bt.Name, err)
	}
	return end, nil
}

func (a *Allocator) record(result string) {
	if a.metrics != nil {
		a.metrics.AllocationResult(result)
	}
}
