package review_payment

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/memory"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/notifications"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/testutil"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/logger"
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

func setup(t *testing.T) (*UseCase, *memory.Store, *recordingNotifier) {
	t.Helper()
	store := testutil.NewStore(testutil.NewClock(testutil.Now))
	n := &recordingNotifier{}
	uc := NewUseCase(store.Payments(), store.Documents(), store.Bookings(), n, nopMetrics{}, memory.NewTxManager(store), logger.NewNop())
	return uc, store, n
}

// submittedDocument заявка с платежом, ожидающим проверки
func submittedDocument(t *testing.T, store *memory.Store) (*domain.DocumentRequest, *domain.Payment) {
	t.Helper()
	ctx := context.Background()
	d, err := store.Documents().Create(ctx, &domain.DocumentRequest{
		UserID: testutil.ClientID, DocumentTypeID: testutil.CertificateTypeID, Fee: decimal.NewFromInt(100),
		Status: domain.DocumentPending, PaymentStatus: domain.PaymentPending,
	})
	require.NoError(t, err)
	p, err := store.Payments().Create(ctx, domain.Submission{
		UserID: d.UserID, ReferenceType: domain.ReferenceDocumentRequest, ReferenceID: d.ID,
		Amount: d.Fee, Method: domain.MethodGCash,
	})
	require.NoError(t, err)
	return d, p
}

func TestVerify_MarksEntityPaid(t *testing.T) {
	uc, store, n := setup(t)
	ctx := context.Background()
	d, p := submittedDocument(t, store)

	got, err := uc.Verify(ctx, testutil.Staff, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRecordVerified, got.Status)
	require.NotNil(t, got.VerifiedBy)
	assert.Equal(t, testutil.StaffID, *got.VerifiedBy)

	stored, err := store.Documents().GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, stored.PaymentStatus)

	require.Len(t, n.events, 1)
	assert.Equal(t, "payment.verified", n.events[0].Topic)

	// verified терминален
	_, err = uc.Reject(ctx, testutil.Staff, p.ID, "mistake")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestReject_RevertsEntityToUnpaid(t *testing.T) {
	uc, store, _ := setup(t)
	ctx := context.Background()
	d, p := submittedDocument(t, store)

	got, err := uc.Reject(ctx, testutil.Staff, p.ID, "  amount does not match ")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRecordRejected, got.Status)
	assert.Equal(t, "amount does not match", *got.RejectionReason)

	stored, err := store.Documents().GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentUnpaid, stored.PaymentStatus)

	_, err = uc.Verify(ctx, testutil.Staff, p.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestReject_RequiresReason(t *testing.T) {
	uc, store, _ := setup(t)
	d, p := submittedDocument(t, store)

	_, err := uc.Reject(context.Background(), testutil.Staff, p.ID, "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	stored, err := store.Payments().GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRecordPending, stored.Status)
	doc, err := store.Documents().GetByID(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, doc.PaymentStatus)
}

// failingEntities отказывает в смене payment_status заявки
type failingEntities struct{}

func (failingEntities) UpdatePaymentStatus(context.Context, int64, domain.PaymentStatus) error {
	return errors.New("connection reset")
}

func TestReview_EntityUpdateFailureRollsBackPayment(t *testing.T) {
	store := testutil.NewStore(testutil.NewClock(testutil.Now))
	n := &recordingNotifier{}
	uc := NewUseCase(store.Payments(), failingEntities{}, store.Bookings(), n, nopMetrics{},
		memory.NewTxManager(store), logger.NewNop())
	ctx := context.Background()
	d, p := submittedDocument(t, store)

	reviews := map[string]func() error{
		"verify": func() error {
			_, err := uc.Verify(ctx, testutil.Staff, p.ID)
			return err
		},
		"reject": func() error {
			_, err := uc.Reject(ctx, testutil.Staff, p.ID, "amount does not match")
			return err
		},
	}
	for name, review := range reviews {
		require.Error(t, review(), name)

		stored, err := store.Payments().GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentRecordPending, stored.Status, name)
		assert.Nil(t, stored.VerifiedBy, name)
		assert.Nil(t, stored.RejectionReason, name)

		doc, err := store.Documents().GetByID(ctx, d.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PaymentPending, doc.PaymentStatus, name)
	}
	assert.Empty(t, n.events)
}

func TestApplyGatewayResult(t *testing.T) {
	uc, store, _ := setup(t)
	ctx := context.Background()

	_, ok := submittedDocument(t, store)
	got, err := uc.ApplyGatewayResult(ctx, ok.ID, domain.GatewayVerified)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRecordVerified, got.Status)
	assert.Nil(t, got.VerifiedBy)

	_, failed := submittedDocument(t, store)
	got, err = uc.ApplyGatewayResult(ctx, failed.ID, domain.GatewayFailed)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRecordRejected, got.Status)
	assert.Equal(t, GatewayFailureReason, *got.RejectionReason)

	_, err = uc.ApplyGatewayResult(ctx, failed.ID, domain.GatewayStatus("refunded"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestVerify_BookingReference(t *testing.T) {
	uc, store, _ := setup(t)
	ctx := context.Background()
	b, err := store.Bookings().Create(ctx, &domain.Booking{
		UserID: testutil.ClientID, BookingTypeID: testutil.BaptismTypeID, Fee: decimal.NewFromInt(500),
		BookingDate: testutil.Today.AddDate(0, 0, 3), BookingTime: types.MustTimeString("09:00"),
		EndTime: types.MustTimeString("10:00"), Status: domain.BookingPending, PaymentStatus: domain.PaymentPending,
	})
	require.NoError(t, err)
	p, err := store.Payments().Create(ctx, domain.Submission{
		UserID: b.UserID, ReferenceType: domain.ReferenceBooking, ReferenceID: b.ID, Amount: b.Fee, Method: domain.MethodCash,
	})
	require.NoError(t, err)

	_, err = uc.Verify(ctx, testutil.Admin, p.ID)
	require.NoError(t, err)

	stored, err := store.Bookings().GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, stored.PaymentStatus)
}

func TestAccessAndAssign(t *testing.T) {
	uc, store, _ := setup(t)
	ctx := context.Background()
	_, p := submittedDocument(t, store)

	_, err := uc.Verify(ctx, testutil.Client, p.ID)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
	_, err = uc.ListPending(ctx, testutil.Client)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)
	_, err = uc.Verify(ctx, testutil.Staff, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.Assign(ctx, testutil.Admin, p.ID, testutil.StaffID))
	count, err := store.Payments().CountPendingByStaff(ctx, testutil.StaffID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	pending, err := uc.ListPending(ctx, testutil.Staff)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}
