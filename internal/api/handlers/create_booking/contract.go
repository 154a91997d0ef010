package create_booking

import (
	"context"

	createBooking "github.com/ManzanoHerchelle/parish-church-system-sub000/internal/usecase/create_booking"
)

// BookingRequester принимает заявку на бронирование и, при платном типе, создаёт ожидающий платёж
type BookingRequester interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
