package events

import (
	"time"

	"github.com/google/uuid"
)

// Event payload types shared between the repositories that append them and
// the gateway that broadcasts them.

// NominatePayload is the payload for a NOMINATE event
type NominatePayload struct {
	AuctionID uuid.UUID  `json:"auction_id"`
	PlayerID  uuid.UUID  `json:"player_id"`
	ByTeamID  *uuid.UUID `json:"by_team_id"`
	EndsAt    time.Time  `json:"ends_at"`
}

// BidPayload is the payload for a BID event
type BidPayload struct {
	AuctionID uuid.UUID `json:"auction_id"`
	TeamID    uuid.UUID `json:"team_id"`
	Amount    int       `json:"amount"`
	PlayerID  uuid.UUID `json:"player_id"`
	EndsAt    time.Time `json:"ends_at"`
}

// FinalizePayload is the payload for a FINALIZE event
type FinalizePayload struct {
	AuctionID uuid.UUID  `json:"auction_id"`
	PlayerID  uuid.UUID  `json:"player_id"`
	TeamID    *uuid.UUID `json:"team_id,omitempty"`
	Amount    int        `json:"amount"`
	Status    string     `json:"status"`
}

// QuietHoursPayload is the payload for a QUIET_HOURS event
type QuietHoursPayload struct {
	Paused bool `json:"paused"`
	Count  int  `json:"count"`
}

// SettingsPayload is the payload for a SETTINGS event
type SettingsPayload struct {
	NominationSeconds int  `json:"nomination_seconds"`
	BidSeconds        int  `json:"bid_seconds"`
	QuietHoursEnabled bool `json:"quiet_hours_enabled"`
}

// CountPayload is the payload for import, replace and reset events
type CountPayload struct {
	Count int `json:"count"`
}

// RemovedPayload is the payload for clear events that report how many rows
// were deleted
type RemovedPayload struct {
	Removed int `json:"removed"`
}
