package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/draftroom/internal/models"
)

// Append writes one audit record to draft_events and the matching outbox row
// inside the caller's transaction. The outbox insert fires the NOTIFY
// trigger that wakes the relay; the audit row is never read back into
// decision logic.
func Append(ctx context.Context, tx *sql.Tx, draftID uuid.UUID, eventType models.EventType, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", eventType, err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO draft_events (draft_id, event_type, payload) VALUES ($1, $2, $3)`,
		draftID, string(eventType), body,
	); err != nil {
		return fmt.Errorf("insert %s event: %w", eventType, err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO outbox (id, draft_id, event_type, payload) VALUES ($1, $2, $3, $4)`,
		uuid.New(), draftID, string(eventType), body,
	); err != nil {
		return fmt.Errorf("insert %s outbox row: %w", eventType, err)
	}

	return nil
}
