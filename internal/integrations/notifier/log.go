package notifier

import "context"

// LogSender пишет уведомления в лог; backend по умолчанию для локального запуска
type LogSender struct {
	log Logger
}

// NewLogSender создает отправителя в лог
func NewLogSender(log Logger) *LogSender {
	return &LogSender{log: log}
}

// Send логирует сообщение
func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.log.Info("notify user=%d topic=%s title=%q ref=%s#%d", msg.UserID, msg.Topic, msg.Title, msg.ReferenceType, msg.ReferenceID)
	return nil
}
