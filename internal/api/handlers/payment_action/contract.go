package payment_action

import (
	"context"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

type PaymentReviewer interface {
	Verify(ctx context.Context, caller domain.Caller, paymentID int64) (*domain.Payment, error)
	Reject(ctx context.Context, caller domain.Caller, paymentID int64, reason string) (*domain.Payment, error)
	Assign(ctx context.Context, caller domain.Caller, paymentID int64, staffID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
