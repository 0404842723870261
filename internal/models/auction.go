package models

import (
	"time"

	"github.com/google/uuid"
)

// Auction represents the bidding process for one player, bounded by a
// deadline. At most one open auction exists per player; high_bid > 0 implies
// high_team_id is set; closed_at is the terminal marker and is written
// exactly once.
type Auction struct {
	ID                uuid.UUID      `json:"id"`
	DraftID           uuid.UUID      `json:"draft_id"`
	PlayerID          uuid.UUID      `json:"player_id"`
	NominatedByTeamID *uuid.UUID     `json:"nominated_by_team_id,omitempty"`
	HighBid           int            `json:"high_bid"`
	HighTeamID        *uuid.UUID     `json:"high_team_id,omitempty"`
	EndsAt            time.Time      `json:"ends_at"`
	LastBidAt         *time.Time     `json:"last_bid_at,omitempty"`
	Paused            bool           `json:"paused"`
	PauseRemaining    *time.Duration `json:"-"` // countdown frozen at pause time
	ClosedAt          *time.Time     `json:"closed_at,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
}

// Open reports whether the auction is still accepting bids or awaiting
// finalization.
func (a *Auction) Open() bool {
	return a.ClosedAt == nil
}
