package domain

import (
	"time"

	"github.com/ManzanoHerchelle/parish-church-system-sub000/pkg/types"
)

// BlockedDate disables new bookings for a whole day, or for [StartTime, EndTime) when both are set
type BlockedDate struct {
	ID        int64
	Date      time.Time
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Reason    string
	CreatedBy int64
	CreatedAt time.Time
}

// IsFullDay reports whether the block covers the whole day
func (b *BlockedDate) IsFullDay() bool {
	return b.StartTime == nil || b.EndTime == nil
}

// Covers reports whether a booking starting at t on the blocked date is disallowed
func (b *BlockedDate) Covers(t types.TimeString) bool {
	if b.IsFullDay() {
		return true
	}
	return !t.IsBefore(*b.StartTime) && t.IsBefore(*b.EndTime)
}
