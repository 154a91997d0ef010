package notifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/logger"
)

func TestWebhookSender_Send(t *testing.T) {
	var got Message
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := NewWebhookSender(srv.URL, time.Second, logger.NewNop())
	msg := Message{Topic: "booking.approved", UserID: 7, Title: "Booking approved", ReferenceType: "booking", ReferenceID: 3}

	require.NoError(t, s.Send(context.Background(), msg))
	assert.Equal(t, msg.Topic, got.Topic)
	assert.Equal(t, int64(3), got.ReferenceID)
}

func TestWebhookSender_Non2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway down", http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewWebhookSender(srv.URL, time.Second, logger.NewNop())
	err := s.Send(context.Background(), Message{Topic: "document_request.ready"})
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestLogSender_NeverFails(t *testing.T) {
	assert.NoError(t, NewLogSender(logger.NewNop()).Send(context.Background(), Message{}))
}
