package drafts

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

// ErrDraftNotFound is returned when a draft id does not exist.
var ErrDraftNotFound = errors.New("draft not found")

// Repository handles draft lifecycle persistence.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// GetDraft retrieves a single draft by id.
func (r *Repository) GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	var d models.Draft
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM drafts WHERE id = $1`, id).
		Scan(&d.ID, &d.Name, &d.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return &d, nil
}

// CreateDraft inserts a new draft.
func (r *Repository) CreateDraft(ctx context.Context, name string) (*models.Draft, error) {
	var d models.Draft
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO drafts (id, name) VALUES ($1, $2) RETURNING id, name, created_at`,
		uuid.New(), name).
		Scan(&d.ID, &d.Name, &d.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create draft: %w", err)
	}
	return &d, nil
}

// ListDraftIDs returns every draft id. The background sweeper uses this to
// know which drafts to tick.
func (r *Repository) ListDraftIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM drafts ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan draft id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ResetDraft clears all auction state: every auction is deleted, players
// revert to undrafted, and teams get their full budget and roster spots
// back. Teams, players and settings rows survive.
func (r *Repository) ResetDraft(ctx context.Context, draftID uuid.UUID) error {
	return sqlutil.Run(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM auctions WHERE draft_id = $1`, draftID); err != nil {
			return fmt.Errorf("failed to delete auctions: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE players SET drafted_by_team_id = NULL, winning_bid = NULL
			WHERE draft_id = $1`, draftID); err != nil {
			return fmt.Errorf("failed to reset players: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE teams SET budget_remaining = budget_total,
				roster_spots_remaining = roster_spots_total
			WHERE draft_id = $1`, draftID); err != nil {
			return fmt.Errorf("failed to reset teams: %w", err)
		}
		return events.Append(ctx, tx, draftID, models.EventResetDraft, struct{}{})
	})
}
