// Package sla classifies the age of pending requests for the admin dashboard.
package sla

import "time"

// Kind entity kinds that carry an SLA
type Kind string

const (
	KindDocument Kind = "document_request"
	KindBooking  Kind = "booking"
	KindPayment  Kind = "payment"
)

// Level age bucket
type Level string

const (
	LevelOK       Level = "ok"
	LevelWarning  Level = "warning"
	LevelCritical Level = "critical"
)

// Thresholds a pending item is warning once its age reaches Warning, critical at Critical
type Thresholds struct {
	Warning  time.Duration
	Critical time.Duration
}

var thresholds = map[Kind]Thresholds{
	KindDocument: {Warning: 36 * time.Hour, Critical: 48 * time.Hour},
	KindBooking:  {Warning: 18 * time.Hour, Critical: 24 * time.Hour},
	KindPayment:  {Warning: 18 * time.Hour, Critical: 24 * time.Hour},
}

// ThresholdsFor returns the thresholds of a kind; unknown kinds never escalate
func ThresholdsFor(kind Kind) (Thresholds, bool) {
	t, ok := thresholds[kind]
	return t, ok
}

// Age elapsed time since creation, never negative
func Age(createdAt, now time.Time) time.Duration {
	age := now.Sub(createdAt)
	if age < 0 {
		return 0
	}
	return age
}

// Classify buckets a pending item by its age at now
func Classify(kind Kind, createdAt, now time.Time) Level {
	t, ok := thresholds[kind]
	if !ok {
		return LevelOK
	}

	age := Age(createdAt, now)
	switch {
	case age >= t.Critical:
		return LevelCritical
	case age >= t.Warning:
		return LevelWarning
	default:
		return LevelOK
	}
}

// ClassifyStatus classifies only while the item is still pending; anything else is ok
func ClassifyStatus(kind Kind, pending bool, createdAt, now time.Time) Level {
	if !pending {
		return LevelOK
	}
	return Classify(kind, createdAt, now)
}

// Row dashboard line for one pending item
type Row struct {
	Kind      Kind
	ID        int64
	UserID    int64
	Label     string
	CreatedAt time.Time
	Age       time.Duration
	Level     Level
}

// NewRow builds a Row classified at now
func NewRow(kind Kind, id, userID int64, label string, createdAt, now time.Time) Row {
	return Row{
		Kind:      kind,
		ID:        id,
		UserID:    userID,
		Label:     label,
		CreatedAt: createdAt,
		Age:       Age(createdAt, now),
		Level:     Classify(kind, createdAt, now),
	}
}

// Summary per-level counts over a set of rows
type Summary struct {
	OK       int
	Warning  int
	Critical int
}

// Summarize counts rows by level
func Summarize(rows []Row) Summary {
	var s Summary
	for _, r := range rows {
		switch r.Level {
		case LevelCritical:
			s.Critical++
		case LevelWarning:
			s.Warning++
		default:
			s.OK++
		}
	}
	return s
}
