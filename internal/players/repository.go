package players

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/mcdev12/draftroom/internal/events"
	"github.com/mcdev12/draftroom/internal/models"
	"github.com/mcdev12/draftroom/internal/sqlutil"
)

// Repository handles player persistence. Position eligibility lives in the
// players.metadata jsonb column.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const playerColumns = `id, draft_id, name, metadata, drafted_by_team_id, winning_bid, created_at`

func scanPlayer(row interface{ Scan(...any) error }) (*models.Player, error) {
	var p models.Player
	var metadata pqtype.NullRawMessage
	var draftedBy uuid.NullUUID
	var winningBid sql.NullInt32
	err := row.Scan(
		&p.ID,
		&p.DraftID,
		&p.Name,
		&metadata,
		&draftedBy,
		&winningBid,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if metadata.Valid {
		if err := json.Unmarshal(metadata.RawMessage, &p.Position); err != nil {
			return nil, fmt.Errorf("failed to decode player metadata: %w", err)
		}
	}
	p.DraftedByTeamID = sqlutil.FromNullUUID(draftedBy)
	p.WinningBid = sqlutil.FromSqlInt32(winningBid)
	return &p, nil
}

// GetPlayer retrieves a single player by id.
func (r *Repository) GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE id = $1`, id)
	p, err := scanPlayer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}
	return p, nil
}

// ListPlayers returns all players in a draft ordered by name.
func (r *Repository) ListPlayers(ctx context.Context, draftID uuid.UUID) ([]models.Player, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+playerColumns+` FROM players WHERE draft_id = $1 ORDER BY name`, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var out []models.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// PlayerUpsert is one row of a player import.
type PlayerUpsert struct {
	Name     string
	Position models.PositionEligibility
}

// UpsertPlayers inserts or updates players keyed on (draft_id, name). Only
// the position metadata is updated on conflict; drafted state is left
// alone. The count is recorded as an IMPORT_PLAYERS event in the same
// transaction.
func (r *Repository) UpsertPlayers(ctx context.Context, draftID uuid.UUID, rows []PlayerUpsert) error {
	return sqlutil.Run(ctx, r.db, func(tx *sql.Tx) error {
		const query = `
			INSERT INTO players (id, draft_id, name, metadata)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (draft_id, name) DO UPDATE SET metadata = EXCLUDED.metadata`
		for _, row := range rows {
			metadata, err := json.Marshal(row.Position)
			if err != nil {
				return fmt.Errorf("failed to encode player metadata: %w", err)
			}
			_, err = tx.ExecContext(ctx, query, uuid.New(), draftID, row.Name,
				pqtype.NullRawMessage{RawMessage: metadata, Valid: true})
			if err != nil {
				return fmt.Errorf("failed to upsert player %q: %w", row.Name, err)
			}
		}
		return events.Append(ctx, tx, draftID, models.EventImportPlayers,
			events.CountPayload{Count: len(rows)})
	})
}

// ReplaceUndrafted removes every undrafted player in the draft, along with
// any auctions referencing them, and returns the number removed. Drafted
// players and their closed auctions are untouched.
func (r *Repository) ReplaceUndrafted(ctx context.Context, draftID uuid.UUID) (int, error) {
	removed := 0
	err := sqlutil.Run(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			DELETE FROM auctions
			WHERE draft_id = $1 AND player_id IN (
				SELECT id FROM players WHERE draft_id = $1 AND drafted_by_team_id IS NULL
			)`, draftID)
		if err != nil {
			return fmt.Errorf("failed to delete auctions for undrafted players: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			`DELETE FROM players WHERE draft_id = $1 AND drafted_by_team_id IS NULL`, draftID)
		if err != nil {
			return fmt.Errorf("failed to delete undrafted players: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to count deleted players: %w", err)
		}
		removed = int(n)

		return events.Append(ctx, tx, draftID, models.EventReplaceUndraftedClear,
			events.RemovedPayload{Removed: removed})
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
