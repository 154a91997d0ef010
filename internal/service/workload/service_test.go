package workload

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/memory"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/testutil"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/logger"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/ptr"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/types"
)

// Второй сотрудник, на которого переназначается работа
const backupStaffID int64 = 22

func setup(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := testutil.NewStore(testutil.NewClock(testutil.Now))
	store.AddUser(domain.User{ID: backupStaffID, FullName: "Carlo Dizon", Role: domain.RoleStaff})
	svc := NewService(store.Absences(), store.Users(), store.Documents(), store.Bookings(), store.Payments(), testutil.Office(), logger.NewNop()).
		WithTimeProvider(testutil.NewClock(testutil.Now))
	return svc, store
}

func assignWork(t *testing.T, store *memory.Store, staffID int64) {
	t.Helper()
	ctx := context.Background()

	d, err := store.Documents().Create(ctx, &domain.DocumentRequest{
		UserID: testutil.ClientID, DocumentTypeID: testutil.CertificateTypeID,
		Status: domain.DocumentPending, PaymentStatus: domain.PaymentUnpaid,
	})
	require.NoError(t, err)
	require.NoError(t, store.Documents().Assign(ctx, d.ID, staffID))

	for _, at := range []string{"09:00", "10:00"} {
		b, err := store.Bookings().Create(ctx, &domain.Booking{
			UserID: testutil.ClientID, BookingTypeID: testutil.BaptismTypeID,
			BookingDate: testutil.Today.AddDate(0, 0, 3), BookingTime: types.MustTimeString(at),
			Status: domain.BookingPending, PaymentStatus: domain.PaymentUnpaid,
		})
		require.NoError(t, err)
		require.NoError(t, store.Bookings().Assign(ctx, b.ID, staffID))
	}

	p, err := store.Payments().Create(ctx, domain.Submission{
		UserID: testutil.ClientID, ReferenceType: domain.ReferenceDocumentRequest, ReferenceID: d.ID,
		Amount: decimal.NewFromInt(100), Method: domain.MethodCash,
	})
	require.NoError(t, err)
	require.NoError(t, store.Payments().Assign(ctx, p.ID, staffID))
}

func TestPendingWorkload(t *testing.T) {
	svc, store := setup(t)
	assignWork(t, store, testutil.StaffID)

	w, err := svc.PendingWorkload(context.Background(), testutil.StaffID)
	require.NoError(t, err)
	assert.Equal(t, domain.Workload{Documents: 1, Bookings: 2, Payments: 1}, w)
	assert.Equal(t, 4, w.Total())

	w, err = svc.PendingWorkload(context.Background(), backupStaffID)
	require.NoError(t, err)
	assert.Zero(t, w.Total())
}

type failingCounter struct{}

func (failingCounter) CountPendingByStaff(context.Context, int64) (int, error) {
	return 0, errors.New("connection reset")
}

func TestPendingWorkload_CounterFailure(t *testing.T) {
	store := testutil.NewStore(testutil.NewClock(testutil.Now))
	svc := NewService(store.Absences(), store.Users(), store.Documents(), failingCounter{}, store.Payments(), testutil.Office(), logger.NewNop())

	_, err := svc.PendingWorkload(context.Background(), testutil.StaffID)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestAbsence_InclusiveBoundsAndOverview(t *testing.T) {
	svc, store := setup(t)
	ctx := context.Background()
	assignWork(t, store, testutil.StaffID)

	start := testutil.Today.AddDate(0, 0, 1)
	end := testutil.Today.AddDate(0, 0, 3)
	created, err := svc.CreateAbsence(ctx, testutil.Admin, &CreateAbsenceRequest{
		StaffID:    testutil.StaffID,
		StartDate:  start,
		EndDate:    end,
		Reason:     " Retreat ",
		ReassignTo: ptr.Ptr(backupStaffID),
	})
	require.NoError(t, err)
	assert.Equal(t, "Retreat", created.Reason)
	assert.Equal(t, testutil.AdminID, created.CreatedBy)

	for offset, want := range map[int]bool{0: false, 1: true, 2: true, 3: true, 4: false} {
		absent, _, err := svc.IsAbsent(ctx, testutil.StaffID, testutil.Today.AddDate(0, 0, offset))
		require.NoError(t, err)
		assert.Equal(t, want, absent, "day +%d", offset)
	}

	rows, err := svc.Overview(ctx, testutil.Staff, start)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byID := make(map[int64]domain.StaffWorkload)
	for _, r := range rows {
		byID[r.Staff.ID] = r
	}
	ana := byID[testutil.StaffID]
	assert.True(t, ana.Absent)
	assert.Equal(t, ptr.Ptr(backupStaffID), ana.ReassignTo)
	assert.Equal(t, 4, ana.Pending.Total())
	assert.False(t, byID[backupStaffID].Absent)

	// переназначение только подсказка: нагрузка остаётся за отсутствующим
	w, err := svc.PendingWorkload(ctx, backupStaffID)
	require.NoError(t, err)
	assert.Zero(t, w.Total())

	// нулевая дата означает сегодня, когда никто не отсутствует
	rows, err = svc.Overview(ctx, testutil.Admin, time.Time{})
	require.NoError(t, err)
	for _, r := range rows {
		assert.False(t, r.Absent)
	}
}

func TestCreateAbsence_Rejections(t *testing.T) {
	tomorrow := testutil.Today.AddDate(0, 0, 1)
	valid := func() *CreateAbsenceRequest {
		return &CreateAbsenceRequest{StaffID: testutil.StaffID, StartDate: tomorrow, EndDate: tomorrow, Reason: "Sick leave"}
	}

	tests := []struct {
		name   string
		caller domain.Caller
		mutate func(r *CreateAbsenceRequest)
		want   error
	}{
		{"staff cannot manage absences", testutil.Staff, func(*CreateAbsenceRequest) {}, domain.ErrAccessDenied},
		{"end before start", testutil.Admin, func(r *CreateAbsenceRequest) { r.EndDate = testutil.Today }, domain.ErrValidation},
		{"reassign to self", testutil.Admin, func(r *CreateAbsenceRequest) { r.ReassignTo = ptr.Ptr(testutil.StaffID) }, domain.ErrValidation},
		{"reassign to client", testutil.Admin, func(r *CreateAbsenceRequest) { r.ReassignTo = ptr.Ptr(testutil.ClientID) }, domain.ErrValidation},
		{"unknown staff", testutil.Admin, func(r *CreateAbsenceRequest) { r.StaffID = 999 }, domain.ErrNotFound},
		{"missing reason", testutil.Admin, func(r *CreateAbsenceRequest) { r.Reason = " " }, domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := setup(t)
			req := valid()
			tt.mutate(req)

			_, err := svc.CreateAbsence(context.Background(), tt.caller, req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDeleteAndListAbsences(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()
	tomorrow := testutil.Today.AddDate(0, 0, 1)

	a, err := svc.CreateAbsence(ctx, testutil.Admin, &CreateAbsenceRequest{
		StaffID: testutil.StaffID, StartDate: tomorrow, EndDate: tomorrow, Reason: "Seminar",
	})
	require.NoError(t, err)

	list, err := svc.ListAbsences(ctx, testutil.Staff, ListAbsencesRequest{From: testutil.Today, To: tomorrow})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.ListAbsences(ctx, testutil.Client, ListAbsencesRequest{StaffID: ptr.Ptr(testutil.StaffID)})
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	assert.ErrorIs(t, svc.DeleteAbsence(ctx, testutil.Staff, a.ID), domain.ErrAccessDenied)
	require.NoError(t, svc.DeleteAbsence(ctx, testutil.Admin, a.ID))
	assert.ErrorIs(t, svc.DeleteAbsence(ctx, testutil.Admin, a.ID), domain.ErrNotFound)

	list, err = svc.ListAbsences(ctx, testutil.Admin, ListAbsencesRequest{StaffID: ptr.Ptr(testutil.StaffID)})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestOverview_TodayInOfficeTimezone(t *testing.T) {
	office := testutil.Office()
	office.Location = time.FixedZone("PHT", 8*3600)

	// 20:00 UTC 10 июня это уже 11 июня в Маниле
	now := time.Date(2024, 6, 10, 20, 0, 0, 0, time.UTC)
	store := testutil.NewStore(testutil.NewClock(now))
	svc := NewService(store.Absences(), store.Users(), store.Documents(), store.Bookings(), store.Payments(),
		office, logger.NewNop()).WithTimeProvider(testutil.NewClock(now))
	ctx := context.Background()

	nextDay := time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)
	_, err := svc.CreateAbsence(ctx, testutil.Admin, &CreateAbsenceRequest{
		StaffID:   testutil.StaffID,
		StartDate: nextDay,
		EndDate:   nextDay,
		Reason:    "Seminar",
	})
	require.NoError(t, err)

	rows, err := svc.Overview(ctx, testutil.Staff, time.Time{})
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	for _, r := range rows {
		assert.Equal(t, r.Staff.ID == testutil.StaffID, r.Absent, "staff %d", r.Staff.ID)
	}
}
