package notifier

import "time"

// Message исходящее уведомление клиенту о ходе заявки
// Topic используется как routing key (amqp) и как поле события (redis, webhook)
type Message struct {
	Topic         string    `json:"topic"` // например, "booking.approved"
	UserID        int64     `json:"user_id"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	Severity      string    `json:"severity"`
	ReferenceType string    `json:"reference_type"`
	ReferenceID   int64     `json:"reference_id"`
	OccurredAt    time.Time `json:"occurred_at"`
}
