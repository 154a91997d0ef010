package payment

import (
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// ReferenceConstraint уникальность платежа на (reference_type, reference_id)
const ReferenceConstraint = "payments_reference_uq"
