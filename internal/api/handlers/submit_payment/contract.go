package submit_payment

import (
	"context"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	submitPayment "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/usecase/submit_payment"
)

type SubmitPaymentUseCase interface {
	Execute(ctx context.Context, req *submitPayment.Request) (*domain.Payment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
