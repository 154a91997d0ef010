package submit_payment

import (
	"io"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

// Request модель отправки оплаты клиентом
type Request struct {
	Caller        domain.Caller
	ReferenceType domain.ReferenceType
	ReferenceID   int64
	Method        domain.PaymentMethod
	ProofName     string    // исходное имя файла, по нему определяется тип
	Proof         io.Reader // nil, если подтверждение не приложено
}
