package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/booking"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/payment"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/types"
)

var day = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func newBooking(at string) *domain.Booking {
	return &domain.Booking{
		UserID:        7,
		BookingTypeID: 101,
		BookingDate:   day,
		BookingTime:   types.MustTimeString(at),
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentUnpaid,
	}
}

func TestTxManager_RollbackOnError(t *testing.T) {
	store := NewStore()
	tx := NewTxManager(store)
	repo := store.Bookings()
	ctx := context.Background()

	boom := errors.New("boom")
	err := tx.Do(ctx, func(ctx context.Context) error {
		_, err := repo.Create(ctx, newBooking("09:00"))
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	list, err := repo.ListActiveByDate(ctx, day)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTxManager_NestedCallJoinsOuter(t *testing.T) {
	store := NewStore()
	tx := NewTxManager(store)
	repo := store.Bookings()
	ctx := context.Background()

	err := tx.DoSerializable(ctx, func(ctx context.Context) error {
		return tx.Do(ctx, func(ctx context.Context) error {
			_, err := repo.Create(ctx, newBooking("09:00"))
			return err
		})
	})
	require.NoError(t, err)

	count, err := repo.CountActiveByTypeAndDate(ctx, 101, day, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestBookingRepository_ActiveSlotUnique(t *testing.T) {
	store := NewStore()
	repo := store.Bookings()
	ctx := context.Background()

	first, err := repo.Create(ctx, newBooking("10:00"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newBooking("10:00"))
	assert.ErrorIs(t, err, booking.ErrSlotConflict)

	// отменённое бронирование освобождает слот
	require.NoError(t, repo.Cancel(ctx, first.ID, nil))
	_, err = repo.Create(ctx, newBooking("10:00"))
	assert.NoError(t, err)
}

func TestBookingRepository_RescheduleKeepsHistory(t *testing.T) {
	store := NewStore()
	repo := store.Bookings()
	ctx := context.Background()

	b, err := repo.Create(ctx, newBooking("10:00"))
	require.NoError(t, err)

	reason := "family request"
	newDate := day.AddDate(0, 0, 1)
	err = repo.Reschedule(ctx, b.ID, b, domain.RescheduleChange{
		Date:    newDate,
		Time:    types.MustTimeString("14:00"),
		EndTime: types.MustTimeString("15:00"),
		Reason:  &reason,
	})
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, domain.SameCalendarDate(newDate, got.BookingDate))
	require.NotNil(t, got.PreviousTime)
	assert.Equal(t, types.MustTimeString("10:00"), *got.PreviousTime)
	assert.NotNil(t, got.RescheduledAt)
}

func TestPaymentRepository_OnePerReference(t *testing.T) {
	store := NewStore()
	repo := store.Payments()
	ctx := context.Background()

	sub := domain.Submission{UserID: 7, ReferenceType: domain.ReferenceBooking, ReferenceID: 1, Method: domain.MethodGCash}
	p, err := repo.Create(ctx, sub)
	require.NoError(t, err)

	_, err = repo.Create(ctx, sub)
	assert.ErrorIs(t, err, payment.ErrPaymentExists)

	require.NoError(t, repo.Reject(ctx, p.ID, nil, "blurry"))
	require.NoError(t, repo.Resubmit(ctx, p.ID, sub))

	got, err := repo.GetByReference(ctx, domain.ReferenceBooking, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRecordPending, got.Status)
	assert.Nil(t, got.RejectionReason)
}
