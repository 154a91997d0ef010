package list_pending_payments

import (
	"context"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

type PaymentReviewer interface {
	ListPending(ctx context.Context, caller domain.Caller) ([]*domain.Payment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
