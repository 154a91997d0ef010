package create_booking

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/memory"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/integrations/filestore"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/bookings"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/notifications"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/slots"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/testutil"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/logger"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/ptr"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/txmanager"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/types"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []notifications.Event
}

func (n *recordingNotifier) Emit(_ context.Context, ev notifications.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

type nopMetrics struct{}

func (nopMetrics) Transition(string, string) {}

// flakyTx проваливает первые failures транзакций ошибкой сериализации
type flakyTx struct {
	inner    TransactionManager
	failures int
	calls    int
}

func (f *flakyTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if f.calls <= f.failures {
		return fmt.Errorf("%w: could not serialize access", txmanager.ErrSerializationFailure)
	}
	return f.inner.DoSerializable(ctx, fn)
}

type fixture struct {
	uc       *UseCase
	store    *memory.Store
	notifier *recordingNotifier
	dir      string
}

func setup(t *testing.T, tx func(inner TransactionManager) TransactionManager) fixture {
	t.Helper()
	clock := testutil.NewClock(testutil.Now)
	store := testutil.NewStore(clock)
	allocator := slots.NewAllocator(store.Bookings(), store.BlockedDates(), testutil.Office(), nil, logger.NewNop()).
		WithTimeProvider(clock)

	var txm TransactionManager = memory.NewTxManager(store)
	if tx != nil {
		txm = tx(txm)
	}

	n := &recordingNotifier{}
	dir := t.TempDir()
	uc := NewUseCase(store.Bookings(), store.Catalog(), store.Payments(), filestore.NewLocalStore(dir, 1024),
		allocator, n, nopMetrics{}, txm, logger.NewNop())
	return fixture{uc: uc, store: store, notifier: n, dir: dir}
}

func request(at string) *Request {
	return &Request{
		Caller:        testutil.Client,
		BookingTypeID: testutil.BaptismTypeID,
		Date:          testutil.Today.AddDate(0, 0, 1),
		Time:          types.MustTimeString(at),
	}
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	f := setup(t, nil)

	res, err := f.uc.Execute(context.Background(), request("10:00"))
	require.NoError(t, err)

	b := res.Booking
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, domain.PaymentUnpaid, b.PaymentStatus)
	assert.Equal(t, testutil.ClientID, b.UserID)
	assert.Equal(t, "500", b.Fee.String())
	assert.Equal(t, types.MustTimeString("11:00"), b.EndTime)
	assert.Equal(t, "Baptism", res.TypeName)
	assert.Nil(t, res.Payment)

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, "booking.created", f.notifier.events[0].Topic)
	assert.True(t, f.notifier.events[0].Outbound)
}

func TestExecute_WithProofCreatesPendingPayment(t *testing.T) {
	f := setup(t, nil)
	req := request("10:00")
	req.PaymentMethod = ptr.Ptr(domain.MethodGCash)
	req.Proof = strings.NewReader("receipt")
	req.ProofName = "receipt.png"

	res, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res.Payment)
	assert.Equal(t, domain.PaymentPending, res.Booking.PaymentStatus)
	assert.Equal(t, domain.PaymentRecordPending, res.Payment.Status)
	assert.True(t, res.Payment.Amount.Equal(res.Booking.Fee))
	require.NotNil(t, res.Payment.ProofPath)
	assert.FileExists(t, f.dir+"/"+*res.Payment.ProofPath)

	require.Len(t, f.notifier.events, 2)
	assert.Equal(t, "payment.submitted", f.notifier.events[1].Topic)
}

func TestExecute_PaymentMethodWithoutProofStaysUnpaid(t *testing.T) {
	f := setup(t, nil)
	req := request("10:00")
	req.PaymentMethod = ptr.Ptr(domain.MethodGCash)

	res, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Nil(t, res.Payment)
	assert.Equal(t, domain.PaymentUnpaid, res.Booking.PaymentStatus)

	_, err = f.store.Payments().GetByReference(context.Background(), domain.ReferenceBooking, res.Booking.ID)
	require.Error(t, err)

	// платное бронирование без подтверждения одобрить нельзя
	svc := bookings.NewService(f.store.Bookings(), f.store.Catalog(), f.notifier, nopMetrics{},
		memory.NewTxManager(f.store), logger.NewNop())
	_, err = svc.Approve(context.Background(), testutil.Staff, res.Booking.ID)
	require.ErrorIs(t, err, domain.ErrPaymentRequired)
}

func TestExecute_ProofRejections(t *testing.T) {
	t.Run("free type", func(t *testing.T) {
		f := setup(t, nil)
		req := request("13:00")
		req.BookingTypeID = testutil.MassTypeID
		req.PaymentMethod = ptr.Ptr(domain.MethodCash)
		req.Proof = strings.NewReader("receipt")
		req.ProofName = "receipt.png"

		_, err := f.uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, domain.ErrValidation)

		// файл удалён вместе с откатом
		entries, err := os.ReadDir(f.dir + "/payments")
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("unsupported file", func(t *testing.T) {
		f := setup(t, nil)
		req := request("10:00")
		req.PaymentMethod = ptr.Ptr(domain.MethodGCash)
		req.Proof = strings.NewReader("MZ")
		req.ProofName = "receipt.exe"

		_, err := f.uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, domain.ErrValidation)

		list, err := f.store.Bookings().List(context.Background(), domain.BookingFilter{})
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("proof without method", func(t *testing.T) {
		f := setup(t, nil)
		req := request("10:00")
		req.Proof = strings.NewReader("receipt")
		req.ProofName = "receipt.png"

		_, err := f.uc.Execute(context.Background(), req)
		require.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestExecute_ConcurrentRequestsNeverDoubleBook(t *testing.T) {
	f := setup(t, nil)
	const workers = 12

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
		taken   int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := request("10:00")
			if i%2 == 1 {
				req.BookingTypeID = testutil.MassTypeID
			}
			_, err := f.uc.Execute(context.Background(), req)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case assert.ErrorIs(t, err, domain.ErrSlotTaken):
				taken++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	assert.Equal(t, workers-1, taken)

	active, err := f.store.Bookings().ListActiveByDate(context.Background(), testutil.Today.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestExecute_CapacityExceeded(t *testing.T) {
	f := setup(t, nil)
	for _, at := range []string{"08:00", "09:00", "10:00", "11:00"} {
		_, err := f.uc.Execute(context.Background(), request(at))
		require.NoError(t, err)
	}

	_, err := f.uc.Execute(context.Background(), request("14:00"))
	assert.ErrorIs(t, err, domain.ErrCapacityExceeded)
}

func TestExecute_RetriesSerializationFailureOnce(t *testing.T) {
	var flaky *flakyTx
	f := setup(t, func(inner TransactionManager) TransactionManager {
		flaky = &flakyTx{inner: inner, failures: 1}
		return flaky
	})

	res, err := f.uc.Execute(context.Background(), request("10:00"))
	require.NoError(t, err)
	assert.NotZero(t, res.Booking.ID)
	assert.Equal(t, 2, flaky.calls)
}

func TestExecute_SecondSerializationFailureIsConflict(t *testing.T) {
	var flaky *flakyTx
	f := setup(t, func(inner TransactionManager) TransactionManager {
		flaky = &flakyTx{inner: inner, failures: 2}
		return flaky
	})

	_, err := f.uc.Execute(context.Background(), request("10:00"))
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)
	assert.Equal(t, 2, flaky.calls)
	assert.Empty(t, f.notifier.events)
}

func TestExecute_Rejections(t *testing.T) {
	f := setup(t, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		mod  func(r *Request)
		want error
	}{
		{"system caller", func(r *Request) { r.Caller = domain.SystemCaller }, domain.ErrAccessDenied},
		{"unknown type", func(r *Request) { r.BookingTypeID = 999 }, domain.ErrNotFound},
		{"missing time", func(r *Request) { r.Time = "" }, domain.ErrValidation},
		{"seconds in time", func(r *Request) { r.Time = types.TimeString("10:00:37") }, domain.ErrValidation},
		{"bad method", func(r *Request) { r.PaymentMethod = ptr.Ptr(domain.PaymentMethod("crypto")) }, domain.ErrValidation},
		{"past date", func(r *Request) { r.Date = testutil.Today.AddDate(0, 0, -1) }, domain.ErrPastDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request("10:00")
			tt.mod(req)
			_, err := f.uc.Execute(ctx, req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExecute_InactiveType(t *testing.T) {
	f := setup(t, nil)
	f.store.AddBookingType(domain.BookingType{ID: 150, Name: "Retired", DurationMinutes: 30, MaxBookingsPerDay: 1})

	req := request("10:00")
	req.BookingTypeID = 150
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
