package handlers

import (
	"errors"
	"net/http"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/internal/domain"
)

const (
	msgPastDate            = "the selected date is in the past"
	msgDateBlocked         = "the parish office is not accepting bookings at the selected date and time"
	msgCapacityExceeded    = "no more bookings of this type are accepted on the selected date"
	msgSlotTaken           = "the selected time slot is already taken"
	msgPaymentRequired     = "payment must be submitted before this request can be approved"
	msgInvalidTransition   = "this action is not allowed in the current status"
	msgNotFound            = "the requested record was not found"
	msgConcurrencyConflict = "the request conflicted with another update, please confirm and retry"
	msgAccessDenied        = "you are not allowed to perform this action"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// StatusFor HTTP статус и сообщение для доменной ошибки
// Для ошибок валидации клиент получает текст ошибки целиком
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrPastDate):
		return http.StatusBadRequest, msgPastDate
	case errors.Is(err, domain.ErrDateBlocked):
		return http.StatusConflict, msgDateBlocked
	case errors.Is(err, domain.ErrCapacityExceeded):
		return http.StatusConflict, msgCapacityExceeded
	case errors.Is(err, domain.ErrSlotTaken):
		return http.StatusConflict, msgSlotTaken
	case errors.Is(err, domain.ErrPaymentRequired):
		return http.StatusUnprocessableEntity, msgPaymentRequired
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, msgInvalidTransition
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, msgNotFound
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return http.StatusConflict, msgConcurrencyConflict
	case errors.Is(err, domain.ErrAccessDenied):
		return http.StatusForbidden, msgAccessDenied
	default:
		return http.StatusInternalServerError, msgInternalError
	}
}

// RespondDomainError отвечает по виду ошибки; 5xx логируются как Error, остальные как Warn
func RespondDomainError(w http.ResponseWriter, logger Logger, route string, err error) {
	status, message := StatusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("%s - failed: %v", route, err)
	} else {
		logger.Warn("%s - rejected (%d): %v", route, status, err)
	}
	RespondError(w, status, message)
}
