package pgerrors

import (
	"errors"

	"github.com/lib/pq"
)

// SQLSTATE коды, которые различает сервис
const (
	CodeUniqueViolation      = "23505"
	CodeSerializationFailure = "40001"
	CodeDeadlockDetected     = "40P01"
)

// IsUniqueViolation true, если err нарушение уникальности; constraint "" совпадает с любым ограничением
func IsUniqueViolation(err error, constraint string) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	if string(pqErr.Code) != CodeUniqueViolation {
		return false
	}
	return constraint == "" || pqErr.Constraint == constraint
}

// IsSerializationFailure true для ошибок, после которых транзакцию можно повторить
func IsSerializationFailure(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	code := string(pqErr.Code)
	return code == CodeSerializationFailure || code == CodeDeadlockDetected
}
