package models

import (
	"time"

	"github.com/google/uuid"
)

// Team represents one bidding team in a draft. Budget and roster counters
// only ever decrease at finalization; every other reader treats them as a
// read-only snapshot.
type Team struct {
	ID                   uuid.UUID `json:"id"`
	DraftID              uuid.UUID `json:"draft_id"`
	Name                 string    `json:"name"`
	JoinCode             string    `json:"-"`
	BudgetTotal          int       `json:"budget_total"`
	BudgetRemaining      int       `json:"budget_remaining"`
	RosterSpotsTotal     int       `json:"roster_spots_total"`
	RosterSpotsRemaining int       `json:"roster_spots_remaining"`
	CreatedAt            time.Time `json:"created_at"`
}
