package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/integrations/filestore"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/testutil"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/logger"
)

const gatewayToken = "gw-secret"

type env struct {
	t       *testing.T
	handler http.Handler
}

func newEnv(t *testing.T) *env {
	t.Helper()
	clock := testutil.NewClock(testutil.Now)
	store := testutil.NewStore(clock)

	h := NewHandler(Dependencies{
		Storage:        NewMemoryStorage(store),
		Files:          filestore.NewLocalStore(t.TempDir(), 1<<20),
		Office:         testutil.Office(),
		GatewayToken:   gatewayToken,
		MaxUploadBytes: 1 << 20,
		Clock:          clock,
		Logger:         logger.NewNop(),
	})
	return &env{t: t, handler: h}
}

func (e *env) do(method, path string, caller *domain.Caller, body interface{}) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(e.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if caller != nil {
		req.Header.Set("X-User-ID", strconv.FormatInt(caller.UserID, 10))
		req.Header.Set("X-User-Role", string(caller.Role))
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *env) submitPayment(caller domain.Caller, refType string, refID int64, method, proofName string) *httptest.ResponseRecorder {
	e.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(e.t, mw.WriteField("referenceType", refType))
	require.NoError(e.t, mw.WriteField("referenceId", strconv.FormatInt(refID, 10)))
	require.NoError(e.t, mw.WriteField("method", method))
	if proofName != "" {
		part, err := mw.CreateFormFile("proof", proofName)
		require.NoError(e.t, err)
		_, err = part.Write([]byte("\x89PNG receipt"))
		require.NoError(e.t, err)
	}
	require.NoError(e.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/payments", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-User-ID", strconv.FormatInt(caller.UserID, 10))
	req.Header.Set("X-User-Role", string(caller.Role))
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
}

func ptrTo(c domain.Caller) *domain.Caller { return &c }

var tomorrow = testutil.Today.AddDate(0, 0, 1).Format(domain.DateFormat)

func TestBookingLifecycleOverHTTP(t *testing.T) {
	e := newEnv(t)
	client, staff := ptrTo(testutil.Client), ptrTo(testutil.Staff)

	// слоты публичные
	rec := e.do(http.MethodGet, fmt.Sprintf("/api/v1/booking-types/%d/available-slots?date=%s", testutil.BaptismTypeID, tomorrow), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var slotsResp struct {
		RemainingCapacity int `json:"remainingCapacity"`
		Slots             []struct {
			StartTime string `json:"startTime"`
			Available bool   `json:"available"`
		} `json:"slots"`
	}
	decode(t, rec, &slotsResp)
	assert.Equal(t, 4, slotsResp.RemainingCapacity)
	require.NotEmpty(t, slotsResp.Slots)
	assert.Equal(t, "08:00", slotsResp.Slots[0].StartTime)

	rec = e.do(http.MethodPost, "/api/v1/bookings", client, map[string]interface{}{
		"bookingTypeId": testutil.BaptismTypeID,
		"bookingDate":   tomorrow,
		"bookingTime":   "10:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created struct {
		Booking struct {
			ID            int64  `json:"id"`
			Status        string `json:"status"`
			PaymentStatus string `json:"paymentStatus"`
			EndTime       string `json:"endTime"`
		} `json:"booking"`
	}
	decode(t, rec, &created)
	bookingID := created.Booking.ID
	assert.Equal(t, "pending", created.Booking.Status)
	assert.Equal(t, "unpaid", created.Booking.PaymentStatus)
	assert.Equal(t, "11:00", created.Booking.EndTime)

	// тот же слот занят для любого типа
	rec = e.do(http.MethodPost, "/api/v1/bookings", ptrTo(testutil.OtherClient), map[string]interface{}{
		"bookingTypeId": testutil.MassTypeID,
		"bookingDate":   tomorrow,
		"bookingTime":   "10:00",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// без оплаты одобрить нельзя
	rec = e.do(http.MethodPatch, fmt.Sprintf("/api/v1/bookings/%d/approve", bookingID), staff, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = e.submitPayment(testutil.Client, "booking", bookingID, "gcash", "receipt.png")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var payment struct {
		ID        int64   `json:"id"`
		Amount    string  `json:"amount"`
		Status    string  `json:"status"`
		ProofPath *string `json:"proofPath"`
	}
	decode(t, rec, &payment)
	assert.Equal(t, "500.00", payment.Amount)
	assert.Equal(t, "pending", payment.Status)
	require.NotNil(t, payment.ProofPath)

	rec = e.do(http.MethodGet, "/api/v1/payments/pending", staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), fmt.Sprintf(`"id":%d`, payment.ID))

	rec = e.do(http.MethodPatch, fmt.Sprintf("/api/v1/payments/%d/verify", payment.ID), staff, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = e.do(http.MethodPatch, fmt.Sprintf("/api/v1/bookings/%d/approve", bookingID), staff, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var approved struct {
		Status        string `json:"status"`
		PaymentStatus string `json:"paymentStatus"`
	}
	decode(t, rec, &approved)
	assert.Equal(t, "approved", approved.Status)
	assert.Equal(t, "paid", approved.PaymentStatus)

	rec = e.do(http.MethodPatch, fmt.Sprintf("/api/v1/bookings/%d/reschedule", bookingID), client, map[string]interface{}{
		"bookingDate": tomorrow,
		"bookingTime": "14:00",
		"reason":      "Godparents arrive late",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var moved struct {
		BookingTime  string  `json:"bookingTime"`
		PreviousTime *string `json:"previousTime"`
		Status       string  `json:"status"`
	}
	decode(t, rec, &moved)
	assert.Equal(t, "14:00", moved.BookingTime)
	require.NotNil(t, moved.PreviousTime)
	assert.Equal(t, "10:00", *moved.PreviousTime)
	assert.Equal(t, "approved", moved.Status)

	rec = e.do(http.MethodGet, fmt.Sprintf("/api/v1/users/%d/notifications", testutil.ClientID), client, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Booking approved")
	assert.Contains(t, rec.Body.String(), "Payment verified")
}

func TestDocumentRequestLifecycleOverHTTP(t *testing.T) {
	e := newEnv(t)
	client, staff := ptrTo(testutil.Client), ptrTo(testutil.Staff)

	rec := e.do(http.MethodPost, "/api/v1/document-requests", client, map[string]interface{}{
		"documentTypeId": testutil.FreeCertTypeID,
		"purpose":        "Sponsor for confirmation",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var doc struct {
		ID     int64  `json:"id"`
		Status string `json:"status"`
	}
	decode(t, rec, &doc)
	assert.Equal(t, "pending", doc.Status)

	// клиент не может продвигать заявку
	rec = e.do(http.MethodPatch, fmt.Sprintf("/api/v1/document-requests/%d/approve", doc.ID), client, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	for _, step := range []struct{ action, status string }{
		{"approve", "processing"},
		{"ready", "ready"},
		{"complete", "completed"},
	} {
		rec = e.do(http.MethodPatch, fmt.Sprintf("/api/v1/document-requests/%d/%s", doc.ID, step.action), staff, nil)
		require.Equal(t, http.StatusOK, rec.Code, "%s: %s", step.action, rec.Body.String())
		decode(t, rec, &doc)
		assert.Equal(t, step.status, doc.Status)
	}

	// из terminal состояния переходов нет
	rec = e.do(http.MethodPatch, fmt.Sprintf("/api/v1/document-requests/%d/cancel", doc.ID), client, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = e.do(http.MethodPatch, fmt.Sprintf("/api/v1/document-requests/%d/archive", doc.ID), staff, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAccessRulesOverHTTP(t *testing.T) {
	e := newEnv(t)

	rec := e.do(http.MethodGet, "/api/v1/bookings", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = e.do(http.MethodGet, "/api/v1/dashboard", ptrTo(testutil.Client), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(http.MethodGet, "/api/v1/dashboard", ptrTo(testutil.Staff), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(http.MethodPost, "/api/v1/admin/blocked-dates", ptrTo(testutil.Staff), map[string]interface{}{
		"date": tomorrow, "reason": "Parish fiesta",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(http.MethodPost, "/api/v1/admin/blocked-dates", ptrTo(testutil.Admin), map[string]interface{}{
		"date": tomorrow, "reason": "Parish fiesta",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = e.do(http.MethodPost, "/api/v1/bookings", ptrTo(testutil.Client), map[string]interface{}{
		"bookingTypeId": testutil.MassTypeID,
		"bookingDate":   tomorrow,
		"bookingTime":   "09:00",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = e.do(http.MethodGet, fmt.Sprintf("/api/v1/blocked-dates?from=%s&to=%s", tomorrow, tomorrow), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Parish fiesta")
}

func TestGatewayCallbackRequiresToken(t *testing.T) {
	e := newEnv(t)

	rec := e.do(http.MethodPost, "/api/v1/document-requests", ptrTo(testutil.Client), map[string]interface{}{
		"documentTypeId": testutil.CertificateTypeID,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var doc struct {
		ID int64 `json:"id"`
	}
	decode(t, rec, &doc)

	rec = e.submitPayment(testutil.Client, "document_request", doc.ID, "cash", "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var payment struct {
		ID int64 `json:"id"`
	}
	decode(t, rec, &payment)

	path := fmt.Sprintf("/api/v1/payments/%d/gateway-callback", payment.ID)
	rec = e.do(http.MethodPost, path, nil, map[string]string{"status": "verified"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(`{"status":"verified"}`))
	req.Header.Set("X-Gateway-Token", gatewayToken)
	ok := httptest.NewRecorder()
	e.handler.ServeHTTP(ok, req)
	require.Equal(t, http.StatusOK, ok.Code, ok.Body.String())
	assert.Contains(t, ok.Body.String(), `"status":"verified"`)

	rec = e.do(http.MethodGet, fmt.Sprintf("/api/v1/document-requests/%d", doc.ID), ptrTo(testutil.Client), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"paymentStatus":"paid"`)
}
