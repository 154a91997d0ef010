package notifier

import "errors"

var (
	// ErrMarshal возвращается, когда сообщение не удалось сериализовать
	ErrMarshal = errors.New("notifier: failed to marshal message")

	// ErrPublish возвращается, когда брокер или получатель не принял сообщение
	ErrPublish = errors.New("notifier: failed to publish message")

	// ErrInvalidResponse возвращается при неожиданном ответе webhook-получателя
	ErrInvalidResponse = errors.New("notifier: invalid response")

	// ErrUnknownBackend возвращается для неизвестного значения notifier.backend
	ErrUnknownBackend = errors.New("notifier: unknown backend")
)
