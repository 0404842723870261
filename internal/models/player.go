package models

import (
	"time"

	"github.com/google/uuid"
)

// Position is a roster position code, e.g. "SS" or "SP/RP".
type Position string

// Primary positions a player can be listed at.
const (
	PosCatcher     Position = "C"
	PosFirstBase   Position = "1B"
	PosSecondBase  Position = "2B"
	PosShortstop   Position = "SS"
	PosThirdBase   Position = "3B"
	PosRightField  Position = "RF"
	PosCenterField Position = "CF"
	PosLeftField   Position = "LF"
	PosStarter     Position = "SP"
	PosSwingman    Position = "SP/RP"
	PosReliever    Position = "RP"
	PosCloser      Position = "CP"
)

// Composite secondary positions.
const (
	PosInfield         Position = "IF"
	PosOutfield        Position = "OF"
	PosInfieldOutfield Position = "IF/OF"
	PosFirstOrOutfield Position = "1B/OF"
)

// PositionEligibility is the tagged pair of positions a player carries:
// a required primary and an optional secondary category.
type PositionEligibility struct {
	Primary   Position  `json:"position_primary"`
	Secondary *Position `json:"position_secondary,omitempty"`
}

// Player represents one draftable item. DraftedByTeamID and WinningBid are
// set together, exactly once, at finalization.
type Player struct {
	ID             uuid.UUID           `json:"id"`
	DraftID        uuid.UUID           `json:"draft_id"`
	Name           string              `json:"name"`
	Position       PositionEligibility `json:"position"`
	DraftedByTeamID *uuid.UUID         `json:"drafted_by_team_id,omitempty"`
	WinningBid     *int                `json:"winning_bid,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
}

// Drafted reports whether the player has already been awarded.
func (p *Player) Drafted() bool {
	return p.DraftedByTeamID != nil
}
