package update_booking_type

import (
	"context"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/catalog/models"
)

type CatalogService interface {
	UpdateBookingType(ctx context.Context, caller domain.Caller, id int64, req *models.UpdateBookingTypeRequest) (*models.BookingTypeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
