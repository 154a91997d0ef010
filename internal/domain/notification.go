package domain

import "time"

// Severity of a client notification
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Notification an in-portal message for a client
type Notification struct {
	ID        int64
	UserID    int64
	Title     string
	Message   string
	Severity  Severity
	IsRead    bool
	CreatedAt time.Time
}
