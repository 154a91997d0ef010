package booking_action

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/middleware"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/bookings/models"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) result(args mock.Arguments) (*models.BookingResponse, error) {
	resp, _ := args.Get(0).(*models.BookingResponse)
	return resp, args.Error(1)
}

func (m *mockService) Approve(ctx context.Context, caller domain.Caller, id int64) (*models.BookingResponse, error) {
	return m.result(m.Called(ctx, caller, id))
}

func (m *mockService) Reject(ctx context.Context, caller domain.Caller, id int64, reason string) (*models.BookingResponse, error) {
	return m.result(m.Called(ctx, caller, id, reason))
}

func (m *mockService) Complete(ctx context.Context, caller domain.Caller, id int64) (*models.BookingResponse, error) {
	return m.result(m.Called(ctx, caller, id))
}

func (m *mockService) Cancel(ctx context.Context, caller domain.Caller, id int64, reason *string) (*models.BookingResponse, error) {
	return m.result(m.Called(ctx, caller, id, reason))
}

func (m *mockService) Assign(ctx context.Context, caller domain.Caller, id int64, staffID int64) error {
	return m.Called(ctx, caller, id, staffID).Error(0)
}

var staff = domain.Caller{UserID: 20, Role: domain.RoleStaff}

func serve(t *testing.T, svc BookingService, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/{action}", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, path, strings.NewReader(body))
	req = req.WithContext(middleware.WithCaller(req.Context(), staff))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_ApproveWithoutBody(t *testing.T) {
	svc := &mockService{}
	svc.On("Approve", mock.Anything, staff, int64(5)).Return(&models.BookingResponse{ID: 5, Status: "approved"}, nil)

	rec := serve(t, svc, "/bookings/5/approve", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"approved"`)
	svc.AssertExpectations(t)
}

func TestHandle_RejectPassesReason(t *testing.T) {
	svc := &mockService{}
	svc.On("Reject", mock.Anything, staff, int64(5), "Missing requirements").
		Return(&models.BookingResponse{ID: 5, Status: "rejected"}, nil)

	rec := serve(t, svc, "/bookings/5/reject", `{"reason":"Missing requirements"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_AssignReturnsNoContent(t *testing.T) {
	svc := &mockService{}
	svc.On("Assign", mock.Anything, staff, int64(5), int64(21)).Return(nil)

	rec := serve(t, svc, "/bookings/5/assign", `{"staffId":21}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		setup      func(*mockService)
		wantStatus int
	}{
		{name: "invalid id", path: "/bookings/abc/approve", wantStatus: http.StatusBadRequest},
		{name: "unknown action", path: "/bookings/5/archive", wantStatus: http.StatusNotFound},
		{name: "malformed body", path: "/bookings/5/cancel", body: `{"reason":`, wantStatus: http.StatusBadRequest},
		{name: "assign without staff", path: "/bookings/5/assign", body: `{}`, wantStatus: http.StatusBadRequest},
		{
			name: "payment required",
			path: "/bookings/5/approve",
			setup: func(m *mockService) {
				m.On("Approve", mock.Anything, staff, int64(5)).Return(nil, fmt.Errorf("%w: fee unpaid", domain.ErrPaymentRequired))
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "invalid transition",
			path: "/bookings/5/complete",
			setup: func(m *mockService) {
				m.On("Complete", mock.Anything, staff, int64(5)).Return(nil, domain.ErrInvalidTransition)
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "not found",
			path: "/bookings/5/cancel",
			setup: func(m *mockService) {
				m.On("Cancel", mock.Anything, staff, int64(5), (*string)(nil)).Return(nil, domain.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			if tt.setup != nil {
				tt.setup(svc)
			}

			rec := serve(t, svc, tt.path, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandle_NoCaller(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/bookings/{bookingId}/{action}", NewHandler(&mockService{}, logger.NewNop()).Handle)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/bookings/5/approve", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
