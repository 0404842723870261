package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mcdev12/draftroom/internal/events"
	"github.com/mcdev12/draftroom/internal/models"
	"github.com/mcdev12/draftroom/internal/sqlutil"
)

// Defaults applied when a draft has no settings row yet.
const (
	DefaultNominationSeconds = 600
	DefaultBidSeconds        = 120
	DefaultQuietTimezone     = "America/New_York"
)

// Repository handles draft settings persistence.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetSettings returns the draft's settings, or the defaults when none have
// been saved yet.
func (r *Repository) GetSettings(ctx context.Context, draftID uuid.UUID) (*models.DraftSettings, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT draft_id, nomination_seconds, bid_seconds, quiet_hours_enabled,
			quiet_start_minute, quiet_end_minute, quiet_timezone, updated_at
		FROM draft_settings WHERE draft_id = $1`, draftID)

	var s models.DraftSettings
	err := row.Scan(
		&s.DraftID,
		&s.NominationSeconds,
		&s.BidSeconds,
		&s.QuietHoursEnabled,
		&s.QuietStartMinute,
		&s.QuietEndMinute,
		&s.QuietTimezone,
		&s.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.DraftSettings{
			DraftID:           draftID,
			NominationSeconds: DefaultNominationSeconds,
			BidSeconds:        DefaultBidSeconds,
			QuietTimezone:     DefaultQuietTimezone,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft settings: %w", err)
	}
	return &s, nil
}

// SaveSettings upserts the draft's settings row keyed on draft_id and
// records a SETTINGS event in the same transaction.
func (r *Repository) SaveSettings(ctx context.Context, s *models.DraftSettings) error {
	return sqlutil.Run(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO draft_settings (
				draft_id, nomination_seconds, bid_seconds, quiet_hours_enabled,
				quiet_start_minute, quiet_end_minute, quiet_timezone, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
			ON CONFLICT (draft_id) DO UPDATE SET
				nomination_seconds = EXCLUDED.nomination_seconds,
				bid_seconds = EXCLUDED.bid_seconds,
				quiet_hours_enabled = EXCLUDED.quiet_hours_enabled,
				quiet_start_minute = EXCLUDED.quiet_start_minute,
				quiet_end_minute = EXCLUDED.quiet_end_minute,
				quiet_timezone = EXCLUDED.quiet_timezone,
				updated_at = NOW()`,
			s.DraftID, s.NominationSeconds, s.BidSeconds, s.QuietHoursEnabled,
			s.QuietStartMinute, s.QuietEndMinute, s.QuietTimezone)
		if err != nil {
			return fmt.Errorf("failed to save draft settings: %w", err)
		}
		return events.Append(ctx, tx, s.DraftID, models.EventSettings, events.SettingsPayload{
			NominationSeconds: s.NominationSeconds,
			BidSeconds:        s.BidSeconds,
			QuietHoursEnabled: s.QuietHoursEnabled,
		})
	})
}
