package gateway_callback

import (
	"context"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

type GatewayResultApplier interface {
	ApplyGatewayResult(ctx context.Context, paymentID int64, status domain.GatewayStatus) (*domain.Payment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
