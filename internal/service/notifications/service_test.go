package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/infra/storage/memory"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/integrations/notifier"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/logger"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/types"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, msg notifier.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func booking() *domain.Booking {
	return &domain.Booking{
		ID:          12,
		UserID:      7,
		BookingDate: time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC),
		BookingTime: types.MustTimeString("09:00"),
	}
}

func TestEmit_MilestoneGoesOutbound(t *testing.T) {
	store := memory.NewStore()
	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.MatchedBy(func(msg notifier.Message) bool {
		return msg.Topic == "booking.approved" && msg.UserID == 7 && msg.ReferenceID == 12
	})).Return(nil).Once()

	svc := NewService(store.Notifications(), sender, logger.NewNop())
	svc.Emit(context.Background(), BookingEvent(booking(), "approved"))

	sender.AssertExpectations(t)
	list, err := store.Notifications().ListByUser(context.Background(), 7, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, domain.SeveritySuccess, list[0].Severity)
	assert.Contains(t, list[0].Message, "2024-06-11 09:00")
}

func TestEmit_NonMilestoneStaysInPortal(t *testing.T) {
	store := memory.NewStore()
	sender := &mockSender{}

	svc := NewService(store.Notifications(), sender, logger.NewNop())
	svc.Emit(context.Background(), BookingEvent(booking(), "rescheduled"))

	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	list, err := store.Notifications().ListByUser(context.Background(), 7, 10)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestEmit_SendFailureIsSwallowed(t *testing.T) {
	store := memory.NewStore()
	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	svc := NewService(store.Notifications(), sender, logger.NewNop())
	reason := "Incomplete requirements"
	d := &domain.DocumentRequest{ID: 3, UserID: 7, RejectionReason: &reason}

	assert.NotPanics(t, func() {
		svc.Emit(context.Background(), DocumentEvent(d, "rejected"))
	})
	sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestListForUser_Access(t *testing.T) {
	store := memory.NewStore()
	svc := NewService(store.Notifications(), nil, logger.NewNop())
	svc.Emit(context.Background(), BookingEvent(booking(), "created"))

	_, err := svc.ListForUser(context.Background(), domain.Caller{UserID: 8, Role: domain.RoleClient}, 7, 0)
	assert.ErrorIs(t, err, domain.ErrAccessDenied)

	list, err := svc.ListForUser(context.Background(), domain.Caller{UserID: 7, Role: domain.RoleClient}, 7, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = svc.ListForUser(context.Background(), domain.Caller{UserID: 20, Role: domain.RoleStaff}, 7, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
