package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType identifies a state-changing action recorded in the draft event
// log.
type EventType string

const (
	EventNominate              EventType = "NOMINATE"
	EventBid                   EventType = "BID"
	EventFinalize              EventType = "FINALIZE"
	EventSettings              EventType = "SETTINGS"
	EventQuietHours            EventType = "QUIET_HOURS"
	EventImportTeams           EventType = "IMPORT_TEAMS"
	EventImportPlayers         EventType = "IMPORT_PLAYERS"
	EventReplaceTeams          EventType = "REPLACE_TEAMS"
	EventReplaceUndraftedClear EventType = "REPLACE_UNDRAFTED_PLAYERS_CLEAR"
	EventResetDraft            EventType = "RESET_DRAFT"
)

// DraftEvent is one append-only audit record. The log is never read back
// into decision logic.
type DraftEvent struct {
	ID        int64           `json:"id"`
	DraftID   uuid.UUID       `json:"draft_id"`
	EventType EventType       `json:"event_type"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}
