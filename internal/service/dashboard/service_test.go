package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/memory"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/sla"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/testutil"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/logger"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/types"
)

type gauge map[string]int

func (g gauge) SLACritical(kind string, count int) {
	g[kind] = count
}

// seed создаёт элементы в прошлом: часы отсчитываются назад от testutil.Now
func seed(t *testing.T, clock *testutil.Clock, store *memory.Store) {
	t.Helper()
	ctx := context.Background()

	// заявка 50 часов назад, бронирование 20 часов назад, платёж 30 часов назад
	clock.Advance(-50 * time.Hour)
	d, err := store.Documents().Create(ctx, &domain.DocumentRequest{
		UserID: testutil.ClientID, DocumentTypeID: testutil.CertificateTypeID,
		Fee: decimal.NewFromInt(100), Status: domain.DocumentPending, PaymentStatus: domain.PaymentUnpaid,
	})
	require.NoError(t, err)

	clock.Advance(20 * time.Hour)
	_, err = store.Payments().Create(ctx, domain.Submission{
		UserID: testutil.ClientID, ReferenceType: domain.ReferenceDocumentRequest, ReferenceID: d.ID,
		Amount: decimal.NewFromInt(100), Method: domain.MethodCash,
	})
	require.NoError(t, err)

	clock.Advance(10 * time.Hour)
	_, err = store.Bookings().Create(ctx, &domain.Booking{
		UserID: testutil.ClientID, BookingTypeID: testutil.BaptismTypeID,
		BookingDate: testutil.Today.AddDate(0, 0, 2), BookingTime: types.MustTimeString("10:00"),
		Status: domain.BookingPending, PaymentStatus: domain.PaymentUnpaid,
	})
	require.NoError(t, err)

	// не ожидает: в сводку не попадает
	_, err = store.Documents().Create(ctx, &domain.DocumentRequest{
		UserID: testutil.ClientID, DocumentTypeID: testutil.FreeCertTypeID,
		Status: domain.DocumentCompleted, PaymentStatus: domain.PaymentUnpaid,
	})
	require.NoError(t, err)

	clock.Advance(20 * time.Hour)
}

func TestCompute(t *testing.T) {
	clock := testutil.NewClock(testutil.Now)
	store := testutil.NewStore(clock)
	seed(t, clock, store)
	g := gauge{}

	svc := NewService(store.Documents(), store.Bookings(), store.Payments(), g, logger.NewNop()).
		WithTimeProvider(testutil.NewClock(testutil.Now))

	dash, err := svc.Compute(context.Background(), testutil.Staff)
	require.NoError(t, err)
	require.Len(t, dash.Rows, 3)

	assert.Equal(t, sla.KindDocument, dash.Rows[0].Kind)
	assert.Equal(t, sla.LevelCritical, dash.Rows[0].Level)
	assert.Equal(t, 50*time.Hour, dash.Rows[0].Age)
	assert.Equal(t, "Baptismal Certificate", dash.Rows[0].Label)

	assert.Equal(t, sla.KindPayment, dash.Rows[1].Kind)
	assert.Equal(t, sla.LevelCritical, dash.Rows[1].Level)

	assert.Equal(t, sla.KindBooking, dash.Rows[2].Kind)
	assert.Equal(t, sla.LevelWarning, dash.Rows[2].Level)
	assert.Equal(t, "Baptism 2024-06-12 10:00", dash.Rows[2].Label)

	assert.Equal(t, sla.Summary{Critical: 2, Warning: 1}, dash.Summary)
	assert.Equal(t, gauge{"document_request": 1, "payment": 1, "booking": 0}, g)
}

func TestCompute_StaffOnly(t *testing.T) {
	store := testutil.NewStore(testutil.NewClock(testutil.Now))
	svc := NewService(store.Documents(), store.Bookings(), store.Payments(), nil, logger.NewNop())

	_, err := svc.Compute(context.Background(), testutil.Client)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	dash, err := svc.Compute(context.Background(), testutil.Admin)
	require.NoError(t, err)
	assert.Empty(t, dash.Rows)
}
