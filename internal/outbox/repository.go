package outbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Repository reads and settles outbox rows. Rows are written by
// events.Append inside the mutating transactions; this side only consumes.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const outboxColumns = `id, draft_id, event_type, payload, created_at, sent_at`

// FetchOutboxByID returns one unsent outbox event.
func (r *Repository) FetchOutboxByID(ctx context.Context, id uuid.UUID) (*OutboxEvent, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+outboxColumns+` FROM outbox WHERE id = $1 AND sent_at IS NULL`, id)

	var e OutboxEvent
	err := row.Scan(&e.ID, &e.DraftID, &e.EventType, &e.Payload, &e.CreatedAt, &e.SentAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("outbox event %s not found or already sent", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch outbox event: %w", err)
	}
	return &e, nil
}

// FetchUnsentOutbox returns up to limit unsent events in insertion order.
func (r *Repository) FetchUnsentOutbox(ctx context.Context, limit int32) ([]OutboxEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+outboxColumns+` FROM outbox WHERE sent_at IS NULL ORDER BY created_at LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unsent outbox events: %w", err)
	}
	defer rows.Close()

	var out []OutboxEvent
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(&e.ID, &e.DraftID, &e.EventType, &e.Payload, &e.CreatedAt, &e.SentAt); err != nil {
			return nil, fmt.Errorf("failed to scan outbox event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// MarkOutboxSent stamps one event as delivered.
func (r *Repository) MarkOutboxSent(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE outbox SET sent_at = NOW() WHERE id = $1 AND sent_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("failed to mark outbox event as sent: %w", err)
	}
	return nil
}
