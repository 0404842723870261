package teams

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mcdev12/draftroom/internal/events"
	"github.com/mcdev12/draftroom/internal/models"
	"github.com/mcdev12/draftroom/internal/sqlutil"
)

// Repository handles team persistence.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const teamColumns = `id, draft_id, name, join_code, budget_total, budget_remaining,
	roster_spots_total, roster_spots_remaining, created_at`

func scanTeam(row interface{ Scan(...any) error }) (*models.Team, error) {
	var t models.Team
	err := row.Scan(
		&t.ID,
		&t.DraftID,
		&t.Name,
		&t.JoinCode,
		&t.BudgetTotal,
		&t.BudgetRemaining,
		&t.RosterSpotsTotal,
		&t.RosterSpotsRemaining,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTeam retrieves a single team by id.
func (r *Repository) GetTeam(ctx context.Context, id uuid.UUID) (*models.Team, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE id = $1`, id)
	t, err := scanTeam(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return t, nil
}

// GetTeamByJoinCode resolves a team within a draft by its join code.
func (r *Repository) GetTeamByJoinCode(ctx context.Context, draftID uuid.UUID, code string) (*models.Team, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE draft_id = $1 AND join_code = $2`,
		draftID, code)
	t, err := scanTeam(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidJoinCode
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team by join code: %w", err)
	}
	return t, nil
}

// ListTeams returns all teams in a draft ordered by name.
func (r *Repository) ListTeams(ctx context.Context, draftID uuid.UUID) ([]models.Team, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE draft_id = $1 ORDER BY name`, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var out []models.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// TeamUpsert is one row of an import. Remaining budget and spots are
// initialized from the totals.
type TeamUpsert struct {
	Name     string
	JoinCode string
	Budget   int
	Spots    int
}

// UpsertTeams inserts or updates teams keyed on (draft_id, name), resetting
// remaining budget and roster spots to the imported totals. The count is
// recorded as an IMPORT_TEAMS event in the same transaction.
func (r *Repository) UpsertTeams(ctx context.Context, draftID uuid.UUID, rows []TeamUpsert) error {
	return sqlutil.Run(ctx, r.db, func(tx *sql.Tx) error {
		if err := upsertTeamsInTx(ctx, tx, draftID, rows); err != nil {
			return err
		}
		return events.Append(ctx, tx, draftID, models.EventImportTeams,
			events.CountPayload{Count: len(rows)})
	})
}

// ReplaceTeams deletes every team in the draft and inserts the given set.
// Refused while the draft has any open auction or drafted player, since
// deleting teams then would orphan live state.
func (r *Repository) ReplaceTeams(ctx context.Context, draftID uuid.UUID, rows []TeamUpsert) error {
	return sqlutil.Run(ctx, r.db, func(tx *sql.Tx) error {
		var openAuctions, draftedPlayers int
		err := tx.QueryRowContext(ctx,
			`SELECT
				(SELECT COUNT(*) FROM auctions WHERE draft_id = $1 AND closed_at IS NULL),
				(SELECT COUNT(*) FROM players WHERE draft_id = $1 AND drafted_by_team_id IS NOT NULL)`,
			draftID).Scan(&openAuctions, &draftedPlayers)
		if err != nil {
			return fmt.Errorf("failed to check draft state: %w", err)
		}
		if openAuctions > 0 || draftedPlayers > 0 {
			return ErrReplaceBlocked
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM teams WHERE draft_id = $1`, draftID); err != nil {
			return fmt.Errorf("failed to delete teams: %w", err)
		}
		if err := upsertTeamsInTx(ctx, tx, draftID, rows); err != nil {
			return err
		}
		return events.Append(ctx, tx, draftID, models.EventReplaceTeams,
			events.CountPayload{Count: len(rows)})
	})
}

func upsertTeamsInTx(ctx context.Context, tx *sql.Tx, draftID uuid.UUID, rows []TeamUpsert) error {
	const query = `
		INSERT INTO teams (
			id, draft_id, name, join_code, budget_total, budget_remaining,
			roster_spots_total, roster_spots_remaining
		) VALUES ($1, $2, $3, $4, $5, $5, $6, $6)
		ON CONFLICT (draft_id, name) DO UPDATE SET
			join_code = EXCLUDED.join_code,
			budget_total = EXCLUDED.budget_total,
			budget_remaining = EXCLUDED.budget_total,
			roster_spots_total = EXCLUDED.roster_spots_total,
			roster_spots_remaining = EXCLUDED.roster_spots_total`
	for _, row := range rows {
		_, err := tx.ExecContext(ctx, query,
			uuid.New(), draftID, row.Name, row.JoinCode, row.Budget, row.Spots)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: %s", ErrDuplicateJoinCode, row.JoinCode)
			}
			return fmt.Errorf("failed to upsert team %q: %w", row.Name, err)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
