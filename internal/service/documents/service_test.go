package documents

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/memory"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/notifications"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/testutil"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/logger"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/ptr"
)

type recordingNotifier struct {
	events []notifications.Event
}

func (n *recordingNotifier) Emit(_ context.Context, ev notifications.Event) {
	n.events = append(n.events, ev)
}

type recordingMetrics struct {
	events []string
}

func (m *recordingMetrics) Transition(entity, event string) {
	m.events = append(m.events, entity+"."+event)
}

type fixture struct {
	svc      *Service
	store    *memory.Store
	notifier *recordingNotifier
	metrics  *recordingMetrics
}

func setup(t *testing.T) fixture {
	t.Helper()
	store := testutil.NewStore(testutil.NewClock(testutil.Now))
	n := &recordingNotifier{}
	m := &recordingMetrics{}
	svc := NewService(store.Documents(), store.Catalog(), n, m, memory.NewTxManager(store), logger.NewNop())
	return fixture{svc: svc, store: store, notifier: n, metrics: m}
}

func (f fixture) request(t *testing.T, fee int64, status domain.DocumentStatus, paid domain.PaymentStatus) *domain.DocumentRequest {
	t.Helper()
	typeID := testutil.CertificateTypeID
	if fee == 0 {
		typeID = testutil.FreeCertTypeID
	}
	d, err := f.store.Documents().Create(context.Background(), &domain.DocumentRequest{
		UserID:         testutil.ClientID,
		DocumentTypeID: typeID,
		Fee:            decimal.NewFromInt(fee),
		Status:         status,
		PaymentStatus:  paid,
	})
	require.NoError(t, err)
	return d
}

func TestApprove_PaymentGate(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	unpaid := f.request(t, 100, domain.DocumentPending, domain.PaymentUnpaid)
	_, err := f.svc.Approve(ctx, testutil.Staff, unpaid.ID)
	assert.ErrorIs(t, err, domain.ErrPaymentRequired)
	assert.Empty(t, f.notifier.events)

	stored, err := f.store.Documents().GetByID(ctx, unpaid.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentPending, stored.Status)

	submitted := f.request(t, 100, domain.DocumentPending, domain.PaymentPending)
	resp, err := f.svc.Approve(ctx, testutil.Staff, submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.DocumentProcessing), resp.Status)
	assert.Equal(t, ptr.Ptr(testutil.StaffID), resp.ProcessedBy)
	assert.Equal(t, "Baptismal Certificate", resp.TypeName)

	free := f.request(t, 0, domain.DocumentPending, domain.PaymentUnpaid)
	_, err = f.svc.Approve(ctx, testutil.Staff, free.ID)
	assert.NoError(t, err)

	assert.Equal(t, []string{"document_request.approve", "document_request.approve"}, f.metrics.events)
	require.Len(t, f.notifier.events, 2)
	assert.Equal(t, "document_request.approved", f.notifier.events[0].Topic)
}

func TestFullLifecycle(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	d := f.request(t, 0, domain.DocumentPending, domain.PaymentUnpaid)

	_, err := f.svc.MarkReady(ctx, testutil.Staff, d.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.svc.Approve(ctx, testutil.Staff, d.ID)
	require.NoError(t, err)

	_, err = f.svc.MarkReady(ctx, testutil.Client, d.ID)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	resp, err := f.svc.MarkReady(ctx, testutil.Staff, d.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.DocumentReady), resp.Status)

	// владелец подтверждает получение
	resp, err = f.svc.Complete(ctx, testutil.Client, d.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.DocumentCompleted), resp.Status)

	for _, fn := range []func() error{
		func() error { _, err := f.svc.Cancel(ctx, testutil.Client, d.ID, nil); return err },
		func() error { _, err := f.svc.Reject(ctx, testutil.Staff, d.ID, "late"); return err },
		func() error { _, err := f.svc.Complete(ctx, testutil.Staff, d.ID); return err },
	} {
		assert.ErrorIs(t, fn(), domain.ErrInvalidTransition)
	}

	topics := make([]string, 0, len(f.notifier.events))
	for _, ev := range f.notifier.events {
		topics = append(topics, ev.Topic)
	}
	assert.Equal(t, []string{"document_request.approved", "document_request.ready", "document_request.completed"}, topics)
}

func TestReject_RequiresReason(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	d := f.request(t, 100, domain.DocumentPending, domain.PaymentUnpaid)

	_, err := f.svc.Reject(ctx, testutil.Staff, d.ID, "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)

	resp, err := f.svc.Reject(ctx, testutil.Staff, d.ID, " Incomplete requirements ")
	require.NoError(t, err)
	assert.Equal(t, string(domain.DocumentRejected), resp.Status)
	assert.Equal(t, ptr.Ptr("Incomplete requirements"), resp.RejectionReason)
}

func TestCancel_OnlyPending(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	d := f.request(t, 100, domain.DocumentPending, domain.PaymentUnpaid)
	_, err := f.svc.Cancel(ctx, testutil.OtherClient, d.ID, nil)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	resp, err := f.svc.Cancel(ctx, testutil.Client, d.ID, ptr.Ptr("  no longer needed "))
	require.NoError(t, err)
	assert.Equal(t, string(domain.DocumentCancelled), resp.Status)
	assert.Equal(t, ptr.Ptr("no longer needed"), resp.CancellationReason)

	processing := f.request(t, 100, domain.DocumentProcessing, domain.PaymentPaid)
	_, err = f.svc.Cancel(ctx, testutil.Client, processing.ID, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestAssign(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	d := f.request(t, 100, domain.DocumentPending, domain.PaymentUnpaid)

	assert.ErrorIs(t, f.svc.Assign(ctx, testutil.Client, d.ID, testutil.StaffID), domain.ErrAccessDenied)
	assert.ErrorIs(t, f.svc.Assign(ctx, testutil.Admin, d.ID, 0), domain.ErrValidation)
	require.NoError(t, f.svc.Assign(ctx, testutil.Admin, d.ID, testutil.StaffID))

	count, err := f.store.Documents().CountPendingByStaff(ctx, testutil.StaffID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	ready := f.request(t, 0, domain.DocumentReady, domain.PaymentUnpaid)
	assert.ErrorIs(t, f.svc.Assign(ctx, testutil.Admin, ready.ID, testutil.StaffID), domain.ErrInvalidTransition)
}

func TestGetAndList_Access(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	d := f.request(t, 100, domain.DocumentPending, domain.PaymentUnpaid)

	_, err := f.svc.GetByID(ctx, testutil.OtherClient, d.ID)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	_, err = f.svc.GetByID(ctx, testutil.Staff, 9999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	resp, err := f.svc.GetByID(ctx, testutil.Client, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "100.00", resp.Fee)

	_, err = f.svc.List(ctx, testutil.OtherClient, ptr.Ptr(testutil.ClientID), nil)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	list, err := f.svc.List(ctx, testutil.OtherClient, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, list.Requests)

	list, err = f.svc.List(ctx, testutil.Staff, nil, ptr.Ptr("pending"))
	require.NoError(t, err)
	assert.Len(t, list.Requests, 1)

	_, err = f.svc.List(ctx, testutil.Staff, nil, ptr.Ptr("archived"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}
