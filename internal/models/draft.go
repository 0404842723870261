package models

import (
	"time"

	"github.com/google/uuid"
)

// Draft represents one draft instance. All teams, players, auctions and
// settings hang off a draft.
type Draft struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// DraftSettings holds the per-draft timer policy. It is fetched at the start
// of each operation, never cached as a process singleton.
type DraftSettings struct {
	DraftID           uuid.UUID `json:"draft_id"`
	NominationSeconds int       `json:"nomination_seconds"`
	BidSeconds        int       `json:"bid_seconds"`
	QuietHoursEnabled bool      `json:"quiet_hours_enabled"`
	QuietStartMinute  int       `json:"quiet_start_minute"` // minute of day, 0-1439
	QuietEndMinute    int       `json:"quiet_end_minute"`   // may be < start (window wraps midnight)
	QuietTimezone     string    `json:"quiet_timezone"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// NominationDuration returns the initial countdown for a new auction.
func (s DraftSettings) NominationDuration() time.Duration {
	return time.Duration(s.NominationSeconds) * time.Second
}

// BidDuration returns the minimum time-remaining guarantee after a bid.
func (s DraftSettings) BidDuration() time.Duration {
	return time.Duration(s.BidSeconds) * time.Second
}
