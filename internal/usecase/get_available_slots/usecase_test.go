package get_available_slots

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/memory"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/testutil"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/logger"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/types"
)

func setup(t *testing.T) (*UseCase, *memory.Store) {
	t.Helper()
	clock := testutil.NewClock(testutil.Now)
	store := testutil.NewStore(clock)
	uc := NewUseCase(store.Bookings(), store.BlockedDates(), store.Catalog(), testutil.Office(), logger.NewNop()).
		WithTimeProvider(clock)
	return uc, store
}

func startTimes(slots []domain.AvailableSlot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.StartTime.String())
	}
	return out
}

func TestExecute_GeneratesSlotsByTypeDuration(t *testing.T) {
	uc, _ := setup(t)
	tomorrow := testutil.Today.AddDate(0, 0, 1)

	res, err := uc.Execute(context.Background(), &Request{BookingTypeID: testutil.BaptismTypeID, Date: tomorrow})
	require.NoError(t, err)

	assert.Equal(t, []string{"08:00", "09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00"},
		startTimes(res.Day.Slots))
	assert.Equal(t, types.MustTimeString("17:00"), res.Day.Slots[8].EndTime)
	assert.Equal(t, 4, res.Day.RemainingCapacity())

	res, err = uc.Execute(context.Background(), &Request{BookingTypeID: testutil.MassTypeID, Date: tomorrow})
	require.NoError(t, err)
	assert.Len(t, res.Day.Slots, 18)
}

func TestExecute_TodaySkipsStartedSlots(t *testing.T) {
	uc, _ := setup(t)

	res, err := uc.Execute(context.Background(), &Request{BookingTypeID: testutil.BaptismTypeID, Date: testutil.Today})
	require.NoError(t, err)
	assert.Equal(t, "10:00", res.Day.Slots[0].StartTime.String())
	assert.Len(t, res.Day.Slots, 7)
}

func TestExecute_PastDateHasNoSlots(t *testing.T) {
	uc, _ := setup(t)

	res, err := uc.Execute(context.Background(), &Request{BookingTypeID: testutil.BaptismTypeID, Date: testutil.Today.AddDate(0, 0, -1)})
	require.NoError(t, err)
	assert.Empty(t, res.Day.Slots)
}

func TestExecute_MarksTakenAndBlocked(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	tomorrow := testutil.Today.AddDate(0, 0, 1)

	// Месса 10:00 занимает слот и для крещения
	_, err := store.Bookings().Create(ctx, &domain.Booking{
		UserID: testutil.ClientID, BookingTypeID: testutil.MassTypeID, BookingDate: tomorrow,
		BookingTime: types.MustTimeString("10:00"), EndTime: types.MustTimeString("10:30"),
		Status: domain.BookingApproved, PaymentStatus: domain.PaymentUnpaid,
	})
	require.NoError(t, err)
	_, err = store.Bookings().Create(ctx, &domain.Booking{
		UserID: testutil.ClientID, BookingTypeID: testutil.BaptismTypeID, BookingDate: tomorrow,
		BookingTime: types.MustTimeString("11:00"), EndTime: types.MustTimeString("12:00"),
		Status: domain.BookingPending, PaymentStatus: domain.PaymentUnpaid,
	})
	require.NoError(t, err)

	start, end := types.MustTimeString("14:00"), types.MustTimeString("16:00")
	_, err = store.BlockedDates().Create(ctx, &domain.BlockedDate{Date: tomorrow, StartTime: &start, EndTime: &end, Reason: "Parish council"})
	require.NoError(t, err)

	res, err := uc.Execute(ctx, &Request{BookingTypeID: testutil.BaptismTypeID, Date: tomorrow})
	require.NoError(t, err)

	byStart := map[string]domain.AvailableSlot{}
	for _, s := range res.Day.Slots {
		byStart[s.StartTime.String()] = s
	}
	assert.True(t, byStart["10:00"].Taken)
	assert.True(t, byStart["11:00"].Taken)
	assert.True(t, byStart["14:00"].Blocked)
	assert.True(t, byStart["15:00"].Blocked)
	assert.True(t, byStart["16:00"].IsFree())
	assert.True(t, byStart["09:00"].IsFree())

	// в лимит крещений считается только само крещение
	assert.Equal(t, 1, res.Day.BookedToday)
	assert.Equal(t, 3, res.Day.RemainingCapacity())
}

func TestExecute_UnknownType(t *testing.T) {
	uc, _ := setup(t)

	_, err := uc.Execute(context.Background(), &Request{BookingTypeID: 999, Date: testutil.Today})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Execute(context.Background(), &Request{BookingTypeID: 0, Date: testutil.Today})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
