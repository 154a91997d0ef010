package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/memory"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/catalog/models"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/testutil"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/logger"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/ptr"
)

func setup(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := testutil.NewStore(testutil.NewClock(testutil.Now))
	return NewService(store.Catalog(), memory.NewTxManager(store), logger.NewNop()), store
}

func TestGet_HidesInactiveFromPublic(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()
	store.AddBookingType(domain.BookingType{Name: "Blessing (retired)", DurationMinutes: 30, MaxBookingsPerDay: 1})

	public, err := svc.Get(ctx, testutil.Client)
	require.NoError(t, err)
	assert.Len(t, public.BookingTypes, 2)
	assert.Len(t, public.DocumentTypes, 2)

	admin, err := svc.Get(ctx, testutil.Admin)
	require.NoError(t, err)
	assert.Len(t, admin.BookingTypes, 3)
}

func TestUpdateBookingType(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()

	resp, err := svc.UpdateBookingType(ctx, testutil.Admin, testutil.BaptismTypeID, &models.UpdateBookingTypeRequest{
		Fee:               ptr.Ptr(decimal.RequireFromString("750.50")),
		MaxBookingsPerDay: ptr.Ptr(6),
	})
	require.NoError(t, err)
	assert.Equal(t, "750.50", resp.Fee)
	assert.Equal(t, 6, resp.MaxBookingsPerDay)
	assert.Equal(t, 60, resp.DurationMinutes)

	stored, err := store.Catalog().GetBookingType(ctx, testutil.BaptismTypeID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("750.5").Equal(stored.Fee))
}

func TestUpdateBookingType_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		caller domain.Caller
		id     int64
		req    models.UpdateBookingTypeRequest
		want   error
	}{
		{"staff is not admin", testutil.Staff, testutil.BaptismTypeID, models.UpdateBookingTypeRequest{}, domain.ErrAccessDenied},
		{"unknown type", testutil.Admin, 9999, models.UpdateBookingTypeRequest{}, domain.ErrNotFound},
		{"negative fee", testutil.Admin, testutil.BaptismTypeID, models.UpdateBookingTypeRequest{Fee: ptr.Ptr(decimal.NewFromInt(-1))}, domain.ErrValidation},
		{"zero duration", testutil.Admin, testutil.BaptismTypeID, models.UpdateBookingTypeRequest{DurationMinutes: ptr.Ptr(0)}, domain.ErrValidation},
		{"zero capacity", testutil.Admin, testutil.BaptismTypeID, models.UpdateBookingTypeRequest{MaxBookingsPerDay: ptr.Ptr(0)}, domain.ErrValidation},
		{"blank name", testutil.Admin, testutil.BaptismTypeID, models.UpdateBookingTypeRequest{Name: ptr.Ptr("  ")}, domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := setup(t)
			_, err := svc.UpdateBookingType(context.Background(), tt.caller, tt.id, &tt.req)
			assert.ErrorIs(t, err, tt.want)

			bt, err := store.Catalog().GetBookingType(context.Background(), testutil.BaptismTypeID)
			require.NoError(t, err)
			assert.Equal(t, 4, bt.MaxBookingsPerDay)
		})
	}
}
