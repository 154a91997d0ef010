package submit_payment

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/middleware"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	submitPayment "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/usecase/submit_payment"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/logger"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *submitPayment.Request) (*domain.Payment, error) {
	args := m.Called(ctx, req)
	p, _ := args.Get(0).(*domain.Payment)
	return p, args.Error(1)
}

var client = domain.Caller{UserID: 7, Role: domain.RoleClient}

func form(t *testing.T, fields map[string]string, proofName string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if proofName != "" {
		part, err := mw.CreateFormFile(proofField, proofName)
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 receipt"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func serve(uc SubmitPaymentUseCase, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/payments", body)
	req.Header.Set("Content-Type", contentType)
	req = req.WithContext(middleware.WithCaller(req.Context(), client))
	rec := httptest.NewRecorder()
	NewHandler(uc, 1<<20, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandle_CashWithoutProof(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *submitPayment.Request) bool {
		return req.Caller == client &&
			req.ReferenceType == domain.ReferenceBooking &&
			req.ReferenceID == 12 &&
			req.Method == domain.MethodCash &&
			req.Proof == nil
	})).Return(&domain.Payment{
		ID:            3,
		UserID:        7,
		ReferenceType: domain.ReferenceBooking,
		ReferenceID:   12,
		Amount:        decimal.NewFromInt(500),
		Method:        domain.MethodCash,
		Status:        domain.PaymentRecordPending,
	}, nil)

	body, ct := form(t, map[string]string{"referenceType": "booking", "referenceId": "12", "method": "cash"}, "")
	rec := serve(uc, body, ct)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"amount":"500.00"`)
	uc.AssertExpectations(t)
}

func TestHandle_ProofIsPassedThrough(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *submitPayment.Request) bool {
		return req.Proof != nil && req.ProofName == "receipt.pdf" && req.Method == domain.MethodGCash
	})).Return(&domain.Payment{ID: 4, Status: domain.PaymentRecordPending}, nil)

	body, ct := form(t, map[string]string{"referenceType": "document_request", "referenceId": "3", "method": "gcash"}, "receipt.pdf")
	rec := serve(uc, body, ct)

	assert.Equal(t, http.StatusCreated, rec.Code)
	uc.AssertExpectations(t)
}

func TestHandle_BadInput(t *testing.T) {
	uc := &mockUseCase{}

	body, ct := form(t, map[string]string{"referenceType": "booking", "referenceId": "-1", "method": "cash"}, "")
	assert.Equal(t, http.StatusBadRequest, serve(uc, body, ct).Code)

	rec := serve(uc, bytes.NewBufferString(`{"referenceId":1}`), "application/json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "validation", err: domain.ErrValidation, wantStatus: http.StatusBadRequest},
		{name: "not owner", err: domain.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "already paid", err: domain.ErrInvalidTransition, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			body, ct := form(t, map[string]string{"referenceType": "booking", "referenceId": "12", "method": "paymaya"}, "")
			assert.Equal(t, tt.wantStatus, serve(uc, body, ct).Code)
		})
	}
}
