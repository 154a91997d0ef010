package list_bookings

import (
	"net/http"
	"strconv"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/api/handlers"
	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/service/bookings/models"
)

// ParseQuery собирает фильтр из query параметров
func ParseQuery(r *http.Request) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		Status: handlers.QueryString(r, "status"),
	}

	var err error
	if req.UserID, err = handlers.QueryID(r, "userId"); err != nil {
		return nil, err
	}
	if req.BookingTypeID, err = handlers.QueryID(r, "bookingTypeId"); err != nil {
		return nil, err
	}

	start, err := handlers.QueryDate(r, "startDate")
	if err != nil {
		return nil, err
	}
	if !start.IsZero() {
		req.StartDate = &start
	}
	end, err := handlers.QueryDate(r, "endDate")
	if err != nil {
		return nil, err
	}
	if !end.IsZero() {
		req.EndDate = &end
	}

	if raw := r.URL.Query().Get("includeInactive"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, handlers.ErrInvalidParam
		}
		req.IncludeInactive = include
	}

	return req, nil
}
