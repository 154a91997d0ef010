package reschedule_booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/memory"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/notifications"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/slots"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/testutil"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/logger"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/ptr"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/types"
)

type recordingNotifier struct {
	events []notifications.Event
}

func (n *recordingNotifier) Emit(_ context.Context, ev notifications.Event) {
	n.events = append(n.events, ev)
}

type nopMetrics struct{}

func (nopMetrics) Transition(string, string) {}

var tomorrow = testutil.Today.AddDate(0, 0, 1)

func setup(t *testing.T) (*UseCase, *memory.Store, *recordingNotifier) {
	t.Helper()
	clock := testutil.NewClock(testutil.Now)
	store := testutil.NewStore(clock)
	allocator := slots.NewAllocator(store.Bookings(), store.BlockedDates(), testutil.Office(), nil, logger.NewNop()).
		WithTimeProvider(clock)
	n := &recordingNotifier{}
	uc := NewUseCase(store.Bookings(), store.Catalog(), allocator, n, nopMetrics{}, memory.NewTxManager(store), logger.NewNop())
	return uc, store, n
}

func seed(t *testing.T, store *memory.Store, at string, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	start := types.MustTimeString(at)
	end, err := start.AddMinutes(60)
	require.NoError(t, err)
	b, err := store.Bookings().Create(context.Background(), &domain.Booking{
		UserID:        testutil.ClientID,
		BookingTypeID: testutil.BaptismTypeID,
		BookingDate:   tomorrow,
		BookingTime:   start,
		EndTime:       end,
		Status:        status,
		PaymentStatus: domain.PaymentPaid,
	})
	require.NoError(t, err)
	return b
}

func TestExecute_MovesApprovedBooking(t *testing.T) {
	uc, store, n := setup(t)
	b := seed(t, store, "10:00", domain.BookingApproved)

	got, err := uc.Execute(context.Background(), &Request{
		Caller:    testutil.Client,
		BookingID: b.ID,
		Date:      tomorrow.AddDate(0, 0, 1),
		Time:      types.MustTimeString("14:00"),
		Reason:    ptr.Ptr("  family emergency "),
	})
	require.NoError(t, err)

	assert.Equal(t, domain.BookingApproved, got.Status)
	assert.True(t, domain.SameCalendarDate(tomorrow.AddDate(0, 0, 1), got.BookingDate))
	assert.Equal(t, types.MustTimeString("14:00"), got.BookingTime)
	assert.Equal(t, types.MustTimeString("15:00"), got.EndTime)
	require.NotNil(t, got.PreviousTime)
	assert.Equal(t, types.MustTimeString("10:00"), *got.PreviousTime)
	require.NotNil(t, got.RescheduleReason)
	assert.Equal(t, "family emergency", *got.RescheduleReason)

	require.Len(t, n.events, 1)
	assert.Equal(t, "booking.rescheduled", n.events[0].Topic)
	assert.False(t, n.events[0].Outbound)
}

func TestExecute_SameSlotDoesNotConflictWithItself(t *testing.T) {
	uc, store, _ := setup(t)
	b := seed(t, store, "10:00", domain.BookingApproved)

	_, err := uc.Execute(context.Background(), &Request{
		Caller: testutil.Staff, BookingID: b.ID, Date: tomorrow, Time: b.BookingTime,
	})
	assert.NoError(t, err)
}

func TestExecute_FailureLeavesBookingUnchanged(t *testing.T) {
	uc, store, n := setup(t)
	ctx := context.Background()
	b := seed(t, store, "10:00", domain.BookingApproved)
	seed(t, store, "11:00", domain.BookingPending)

	_, err := uc.Execute(ctx, &Request{
		Caller: testutil.Client, BookingID: b.ID, Date: tomorrow, Time: types.MustTimeString("11:00"),
	})
	assert.ErrorIs(t, err, domain.ErrSlotTaken)

	after, err := store.Bookings().GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, *b, *after)
	assert.Empty(t, n.events)
}

func TestExecute_PastDateAndBlocked(t *testing.T) {
	uc, store, _ := setup(t)
	ctx := context.Background()
	b := seed(t, store, "10:00", domain.BookingApproved)

	_, err := uc.Execute(ctx, &Request{
		Caller: testutil.Client, BookingID: b.ID, Date: testutil.Today.AddDate(0, 0, -2), Time: b.BookingTime,
	})
	assert.ErrorIs(t, err, domain.ErrPastDate)

	blocked := tomorrow.AddDate(0, 0, 3)
	_, err = store.BlockedDates().Create(ctx, &domain.BlockedDate{Date: blocked, Reason: "Diocesan assembly", CreatedBy: testutil.AdminID})
	require.NoError(t, err)
	_, err = uc.Execute(ctx, &Request{
		Caller: testutil.Client, BookingID: b.ID, Date: blocked, Time: b.BookingTime,
	})
	assert.ErrorIs(t, err, domain.ErrDateBlocked)
}

func TestExecute_OnlyApprovedBookings(t *testing.T) {
	uc, store, _ := setup(t)
	b := seed(t, store, "10:00", domain.BookingPending)

	_, err := uc.Execute(context.Background(), &Request{
		Caller: testutil.Client, BookingID: b.ID, Date: tomorrow, Time: types.MustTimeString("13:00"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestExecute_AccessAndNotFound(t *testing.T) {
	uc, store, _ := setup(t)
	b := seed(t, store, "10:00", domain.BookingApproved)

	_, err := uc.Execute(context.Background(), &Request{
		Caller: testutil.OtherClient, BookingID: b.ID, Date: tomorrow, Time: types.MustTimeString("13:00"),
	})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	_, err = uc.Execute(context.Background(), &Request{
		Caller: testutil.Staff, BookingID: 9999, Date: tomorrow, Time: types.MustTimeString("13:00"),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
