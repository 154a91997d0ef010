package gateway_callback

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/logger"
)

type mockApplier struct {
	mock.Mock
}

func (m *mockApplier) ApplyGatewayResult(ctx context.Context, paymentID int64, status domain.GatewayStatus) (*domain.Payment, error) {
	args := m.Called(ctx, paymentID, status)
	p, _ := args.Get(0).(*domain.Payment)
	return p, args.Error(1)
}

func serve(applier GatewayResultApplier, token, header, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/payments/{paymentId}/gateway-callback", NewHandler(applier, token, logger.NewNop()).Handle)

	req := httptest.NewRequest(http.MethodPost, "/payments/9/gateway-callback", strings.NewReader(body))
	if header != "" {
		req.Header.Set(HeaderGatewayToken, header)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_AppliesResult(t *testing.T) {
	applier := &mockApplier{}
	applier.On("ApplyGatewayResult", mock.Anything, int64(9), domain.GatewayFailed).Return(&domain.Payment{
		ID:     9,
		Amount: decimal.NewFromInt(100),
		Status: domain.PaymentRecordRejected,
	}, nil)

	rec := serve(applier, "secret", "secret", `{"status":"failed"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"amount":"100.00"`)
	applier.AssertExpectations(t)
}

func TestHandle_Token(t *testing.T) {
	applier := &mockApplier{}

	assert.Equal(t, http.StatusUnauthorized, serve(applier, "secret", "", `{"status":"verified"}`).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(applier, "secret", "wrong", `{"status":"verified"}`).Code)
	applier.AssertNotCalled(t, "ApplyGatewayResult", mock.Anything, mock.Anything, mock.Anything)

	// без настроенного токена проверка отключена
	applier.On("ApplyGatewayResult", mock.Anything, int64(9), domain.GatewayVerified).
		Return(&domain.Payment{ID: 9, Status: domain.PaymentRecordVerified}, nil)
	assert.Equal(t, http.StatusOK, serve(applier, "", "", `{"status":"verified"}`).Code)
}

func TestHandle_InvalidStatus(t *testing.T) {
	rec := serve(&mockApplier{}, "", "", `{"status":"pending"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_AlreadyProcessed(t *testing.T) {
	applier := &mockApplier{}
	applier.On("ApplyGatewayResult", mock.Anything, int64(9), domain.GatewayVerified).Return(nil, domain.ErrInvalidTransition)

	rec := serve(applier, "", "", `{"status":"verified"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
}
