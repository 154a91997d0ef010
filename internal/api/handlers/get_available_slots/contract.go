package get_available_slots

import (
	"context"

	getAvailableSlots "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/usecase/get_available_slots"
)

// SlotFinder расписание слотов типа на дату с учётом блокировок и занятости
type SlotFinder interface {
	Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
