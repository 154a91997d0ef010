package memory

import (
	"context"
	"sort"
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/booking"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/types"
)

// BookingRepository бронирования в памяти
type BookingRepository struct {
	s *Store
}

// Bookings репозиторий бронирований хранилища
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{s: s}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	defer r.s.lock(ctx)()

	if r.slotHeld(b.BookingDate, b.BookingTime, 0) {
		return nil, booking.ErrSlotConflict
	}

	now := r.s.clock()
	b.ID = r.s.nextID()
	b.CreatedAt = now
	b.UpdatedAt = now
	r.s.data.bookings[b.ID] = *b

	out := *b
	return &out, nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	defer r.s.lock(ctx)()

	b, ok := r.s.data.bookings[id]
	if !ok {
		return nil, booking.ErrBookingNotFound
	}
	return &b, nil
}

func (r *BookingRepository) List(ctx context.Context, filter domain.BookingFilter) ([]*domain.BookingWithType, error) {
	defer r.s.lock(ctx)()

	result := make([]*domain.BookingWithType, 0)
	for _, b := range r.s.data.bookings {
		if filter.UserID != nil && b.UserID != *filter.UserID {
			continue
		}
		if filter.BookingTypeID != nil && b.BookingTypeID != *filter.BookingTypeID {
			continue
		}
		if filter.StartDate != nil && domain.CalendarBefore(b.BookingDate, *filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && domain.CalendarBefore(*filter.EndDate, b.BookingDate) {
			continue
		}
		if filter.Status != nil {
			if b.Status != *filter.Status {
				continue
			}
		} else if !filter.IncludeInactive && !b.IsActive() {
			continue
		}
		result = append(result, &domain.BookingWithType{
			Booking:  b,
			TypeName: r.s.data.bookingTypes[b.BookingTypeID].Name,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !domain.SameCalendarDate(a.BookingDate, b.BookingDate) {
			return domain.CalendarBefore(b.BookingDate, a.BookingDate)
		}
		return b.BookingTime.IsBefore(a.BookingTime)
	})

	return result, nil
}

func (r *BookingRepository) ListActiveByDate(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	defer r.s.lock(ctx)()

	result := make([]*domain.Booking, 0)
	for _, b := range r.s.data.bookings {
		if b.IsActive() && domain.SameCalendarDate(b.BookingDate, date) {
			b := b
			result = append(result, &b)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].BookingTime.IsBefore(result[j].BookingTime)
	})

	return result, nil
}

func (r *BookingRepository) CountActiveByTypeAndDate(ctx context.Context, bookingTypeID int64, date time.Time, excludeID *int64) (int, error) {
	defer r.s.lock(ctx)()

	count := 0
	for _, b := range r.s.data.bookings {
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		if b.BookingTypeID == bookingTypeID && b.IsActive() && domain.SameCalendarDate(b.BookingDate, date) {
			count++
		}
	}
	return count, nil
}

func (r *BookingRepository) ExistsActiveAtSlot(ctx context.Context, date time.Time, at types.TimeString, excludeID *int64) (bool, error) {
	defer r.s.lock(ctx)()

	var exclude int64
	if excludeID != nil {
		exclude = *excludeID
	}
	return r.slotHeld(date, at, exclude), nil
}

func (r *BookingRepository) CountPendingByStaff(ctx context.Context, staffID int64) (int, error) {
	defer r.s.lock(ctx)()

	count := 0
	for _, b := range r.s.data.bookings {
		if b.Status == domain.BookingPending && b.ApprovedBy != nil && *b.ApprovedBy == staffID {
			count++
		}
	}
	return count, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.mutate(ctx, id, func(b *domain.Booking) error {
		b.Status = status
		return nil
	})
}

func (r *BookingRepository) Approve(ctx context.Context, id int64, approvedBy *int64) error {
	return r.mutate(ctx, id, func(b *domain.Booking) error {
		b.Status = domain.BookingApproved
		b.ApprovedBy = approvedBy
		return nil
	})
}

func (r *BookingRepository) Reject(ctx context.Context, id int64, reason string) error {
	return r.mutate(ctx, id, func(b *domain.Booking) error {
		b.Status = domain.BookingRejected
		b.RejectionReason = &reason
		return nil
	})
}

func (r *BookingRepository) Cancel(ctx context.Context, id int64, reason *string) error {
	return r.mutate(ctx, id, func(b *domain.Booking) error {
		b.Status = domain.BookingCancelled
		b.CancellationReason = reason
		return nil
	})
}

func (r *BookingRepository) Reschedule(ctx context.Context, id int64, previous *domain.Booking, change domain.RescheduleChange) error {
	return r.mutate(ctx, id, func(b *domain.Booking) error {
		if r.slotHeld(change.Date, change.Time, id) {
			return booking.ErrSlotConflict
		}
		prevDate, prevTime := previous.BookingDate, previous.BookingTime
		now := r.s.clock()
		b.PreviousDate = &prevDate
		b.PreviousTime = &prevTime
		b.BookingDate = change.Date
		b.BookingTime = change.Time
		b.EndTime = change.EndTime
		b.RescheduleReason = change.Reason
		b.RescheduledAt = &now
		return nil
	})
}

func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	return r.mutate(ctx, id, func(b *domain.Booking) error {
		b.PaymentStatus = status
		return nil
	})
}

func (r *BookingRepository) Assign(ctx context.Context, id int64, staffID int64) error {
	return r.mutate(ctx, id, func(b *domain.Booking) error {
		b.ApprovedBy = &staffID
		return nil
	})
}

func (r *BookingRepository) mutate(ctx context.Context, id int64, fn func(b *domain.Booking) error) error {
	defer r.s.lock(ctx)()

	b, ok := r.s.data.bookings[id]
	if !ok {
		return booking.ErrBookingNotFound
	}
	if err := fn(&b); err != nil {
		return err
	}
	b.UpdatedAt = r.s.clock()
	r.s.data.bookings[id] = b
	return nil
}

// slotHeld повторяет частичный уникальный индекс bookings_active_slot_uq
func (r *BookingRepository) slotHeld(date time.Time, at types.TimeString, excludeID int64) bool {
	for _, b := range r.s.data.bookings {
		if b.ID == excludeID || !b.IsActive() {
			continue
		}
		if domain.SameCalendarDate(b.BookingDate, date) && b.BookingTime.Equal(at) {
			return true
		}
	}
	return false
}
