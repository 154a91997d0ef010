package notifier

import "context"

// Sender доставляет исходящее уведомление; реализации не повторяют отправку
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
