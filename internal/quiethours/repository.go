package quiethours

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mcdev12/draftroom/internal/events"
	"github.com/mcdev12/draftroom/internal/models"
	"github.com/mcdev12/draftroom/internal/sqlutil"
)

// Repository applies pause and resume transitions to whole drafts at once.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// PauseOpen freezes every open, unpaused auction in the draft, recording
// the remaining duration of each. Returns the number paused. A QUIET_HOURS
// event is appended in the same transaction when anything changed.
func (r *Repository) PauseOpen(ctx context.Context, draftID uuid.UUID, now time.Time) (int, error) {
	count := 0
	err := sqlutil.Run(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE auctions
			SET paused = TRUE,
				pause_remaining_seconds = GREATEST(0, EXTRACT(EPOCH FROM (ends_at - $2::timestamptz)))
			WHERE draft_id = $1 AND closed_at IS NULL AND paused = FALSE`,
			draftID, now)
		if err != nil {
			return fmt.Errorf("failed to pause auctions: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to count paused auctions: %w", err)
		}
		count = int(n)
		if count == 0 {
			return nil
		}
		return events.Append(ctx, tx, draftID, models.EventQuietHours,
			events.QuietHoursPayload{Paused: true, Count: count})
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// ResumePaused thaws every paused open auction in the draft, restoring each
// deadline from its stored remaining duration. A deadline never moves
// backwards. Returns the number resumed.
func (r *Repository) ResumePaused(ctx context.Context, draftID uuid.UUID, now time.Time) (int, error) {
	count := 0
	err := sqlutil.Run(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE auctions
			SET paused = FALSE,
				ends_at = GREATEST(ends_at, $2::timestamptz + make_interval(secs => COALESCE(pause_remaining_seconds, 0))),
				pause_remaining_seconds = NULL
			WHERE draft_id = $1 AND closed_at IS NULL AND paused = TRUE`,
			draftID, now)
		if err != nil {
			return fmt.Errorf("failed to resume auctions: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to count resumed auctions: %w", err)
		}
		count = int(n)
		if count == 0 {
			return nil
		}
		return events.Append(ctx, tx, draftID, models.EventQuietHours,
			events.QuietHoursPayload{Paused: false, Count: count})
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
