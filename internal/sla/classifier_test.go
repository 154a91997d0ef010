package sla

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var now = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func TestClassify_DocumentScenario(t *testing.T) {
	assert.Equal(t, LevelWarning, Classify(KindDocument, now.Add(-40*time.Hour), now))
	assert.Equal(t, LevelCritical, Classify(KindDocument, now.Add(-50*time.Hour), now))
}

func TestClassify_Thresholds(t *testing.T) {
	tests := []struct {
		kind Kind
		age  time.Duration
		want Level
	}{
		{KindDocument, 35*time.Hour + 59*time.Minute, LevelOK},
		{KindDocument, 36 * time.Hour, LevelWarning},
		{KindDocument, 48 * time.Hour, LevelCritical},
		{KindBooking, 17 * time.Hour, LevelOK},
		{KindBooking, 18 * time.Hour, LevelWarning},
		{KindBooking, 24 * time.Hour, LevelCritical},
		{KindPayment, 20 * time.Hour, LevelWarning},
		{KindPayment, 72 * time.Hour, LevelCritical},
		{Kind("unknown"), 1000 * time.Hour, LevelOK},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+tt.age.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.kind, now.Add(-tt.age), now))
		})
	}
}

func TestClassify_FutureCreatedAtIsOK(t *testing.T) {
	assert.Equal(t, LevelOK, Classify(KindBooking, now.Add(time.Hour), now))
	assert.Equal(t, time.Duration(0), Age(now.Add(time.Hour), now))
}

func TestClassify_Monotonic(t *testing.T) {
	rank := map[Level]int{LevelOK: 0, LevelWarning: 1, LevelCritical: 2}

	for _, kind := range []Kind{KindDocument, KindBooking, KindPayment} {
		createdAt := now
		prev := LevelOK
		for step := 0; step <= 80*4; step++ {
			at := createdAt.Add(time.Duration(step) * 15 * time.Minute)
			got := Classify(kind, createdAt, at)
			assert.GreaterOrEqual(t, rank[got], rank[prev], "%s regressed at %s", kind, at)
			prev = got
		}
		assert.Equal(t, LevelCritical, prev)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	createdAt := now.Add(-20 * time.Hour)
	first := Classify(KindPayment, createdAt, now)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Classify(KindPayment, createdAt, now))
	}
}

func TestClassifyStatus_NonPendingIsOK(t *testing.T) {
	old := now.Add(-100 * time.Hour)
	assert.Equal(t, LevelOK, ClassifyStatus(KindDocument, false, old, now))
	assert.Equal(t, LevelCritical, ClassifyStatus(KindDocument, true, old, now))
}

func TestSummarize(t *testing.T) {
	rows := []Row{
		NewRow(KindDocument, 1, 10, "Baptismal certificate", now.Add(-50*time.Hour), now),
		NewRow(KindBooking, 2, 11, "Baptism", now.Add(-20*time.Hour), now),
		NewRow(KindPayment, 3, 12, "booking #2", now.Add(-30*time.Hour), now),
		NewRow(KindPayment, 4, 12, "document_request #1", now.Add(-time.Hour), now),
	}

	assert.Equal(t, Summary{OK: 1, Warning: 1, Critical: 2}, Summarize(rows))
}
