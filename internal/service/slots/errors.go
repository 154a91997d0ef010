package slots

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках проверки слота
	ErrInternal = errors.New("slots: internal error")
)
