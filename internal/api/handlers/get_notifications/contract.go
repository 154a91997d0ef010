package get_notifications

import (
	"context"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

type NotificationService interface {
	ListForUser(ctx context.Context, caller domain.Caller, userID int64, limit uint64) ([]*domain.Notification, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
