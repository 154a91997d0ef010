package booking

import (
	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// ActiveSlotConstraint частичный уникальный индекс (booking_date, booking_time) по активным бронированиям
const ActiveSlotConstraint = "bookings_active_slot_uq"
