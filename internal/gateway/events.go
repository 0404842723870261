package gateway

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mcdev12/draftroom/internal/models"
)

// RoomEvent is the frame pushed to every WebSocket client watching a draft.
// Data carries the same payload the repositories wrote to the outbox, so
// clients see exactly what the audit log recorded.
type RoomEvent struct {
	ID        string           `json:"id"`
	DraftID   string           `json:"draft_id"`
	Type      models.EventType `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	Data      json.RawMessage  `json:"data"`
}

var knownEventTypes = map[models.EventType]bool{
	models.EventNominate:              true,
	models.EventBid:                   true,
	models.EventFinalize:              true,
	models.EventSettings:              true,
	models.EventQuietHours:            true,
	models.EventImportTeams:           true,
	models.EventImportPlayers:         true,
	models.EventReplaceTeams:          true,
	models.EventReplaceUndraftedClear: true,
	models.EventResetDraft:            true,
}

// newRoomEvent validates the relay envelope fields and wraps them in the
// client-facing frame.
func newRoomEvent(eventID, eventType, draftID string, payload json.RawMessage) (*RoomEvent, error) {
	t := models.EventType(eventType)
	if !knownEventTypes[t] {
		return nil, fmt.Errorf("unknown event type: %s", eventType)
	}

	return &RoomEvent{
		ID:        eventID,
		DraftID:   draftID,
		Type:      t,
		Timestamp: time.Now(),
		Data:      payload,
	}, nil
}
