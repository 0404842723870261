package auction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mcdev12/draftroom/internal/events"
	"github.com/mcdev12/draftroom/internal/models"
	"github.com/mcdev12/draftroom/internal/sqlutil"
)

// Repository implements auction data access. Per-auction mutations go
// through conditional updates so that concurrent bids and finalizations
// serialize at the storage layer rather than through in-process locks.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new auction repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const auctionColumns = `id, draft_id, player_id, nominated_by_team_id, high_bid, high_team_id,
	ends_at, last_bid_at, paused, pause_remaining_seconds, closed_at, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAuction(row rowScanner) (*models.Auction, error) {
	var (
		a           models.Auction
		nominatedBy uuid.NullUUID
		highTeam    uuid.NullUUID
		lastBidAt   sql.NullTime
		remaining   sql.NullFloat64
		closedAt    sql.NullTime
	)
	err := row.Scan(
		&a.ID, &a.DraftID, &a.PlayerID, &nominatedBy, &a.HighBid, &highTeam,
		&a.EndsAt, &lastBidAt, &a.Paused, &remaining, &closedAt, &a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.NominatedByTeamID = sqlutil.FromNullUUID(nominatedBy)
	a.HighTeamID = sqlutil.FromNullUUID(highTeam)
	a.LastBidAt = sqlutil.FromSqlTime(lastBidAt)
	a.PauseRemaining = sqlutil.FromSqlSeconds(remaining)
	a.ClosedAt = sqlutil.FromSqlTime(closedAt)
	return &a, nil
}

// GetAuction retrieves one auction by ID.
func (r *Repository) GetAuction(ctx context.Context, id uuid.UUID) (*models.Auction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+auctionColumns+` FROM auctions WHERE id = $1`, id)
	a, err := scanAuction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAuctionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get auction: %w", err)
	}
	return a, nil
}

// ListOpenAuctions retrieves every open auction for a draft.
func (r *Repository) ListOpenAuctions(ctx context.Context, draftID uuid.UUID) ([]models.Auction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+auctionColumns+` FROM auctions
		 WHERE draft_id = $1 AND closed_at IS NULL
		 ORDER BY ends_at`, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list open auctions: %w", err)
	}
	defer rows.Close()

	var auctions []models.Auction
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan auction: %w", err)
		}
		auctions = append(auctions, *a)
	}
	return auctions, rows.Err()
}

// ListExpiredOpen retrieves open, unpaused auctions whose deadline has
// passed. The deadline is checked lazily by whichever caller evaluates it
// next; there is no per-auction timer.
func (r *Repository) ListExpiredOpen(ctx context.Context, draftID uuid.UUID, now time.Time) ([]models.Auction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+auctionColumns+` FROM auctions
		 WHERE draft_id = $1 AND closed_at IS NULL AND NOT paused AND ends_at <= $2
		 ORDER BY ends_at`, draftID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list expired auctions: %w", err)
	}
	defer rows.Close()

	var auctions []models.Auction
	for rows.Next() {
		a, err := scanAuction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan auction: %w", err)
		}
		auctions = append(auctions, *a)
	}
	return auctions, rows.Err()
}

// CreateAuctionRequest carries everything needed to open a new auction.
type CreateAuctionRequest struct {
	ID                uuid.UUID
	DraftID           uuid.UUID
	PlayerID          uuid.UUID
	NominatedByTeamID *uuid.UUID
	EndsAt            time.Time
}

// CreateAuction opens a new auction and appends the NOMINATE event in one
// transaction. The partial unique index on (draft_id, player_id) where
// closed_at is null closes the race between two simultaneous nominations.
func (r *Repository) CreateAuction(ctx context.Context, req CreateAuctionRequest) (*models.Auction, error) {
	var created *models.Auction
	err := sqlutil.Run(ctx, r.db, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			`INSERT INTO auctions (id, draft_id, player_id, nominated_by_team_id, high_bid, high_team_id, ends_at)
			 VALUES ($1, $2, $3, $4, 0, NULL, $5)
			 RETURNING `+auctionColumns,
			req.ID, req.DraftID, req.PlayerID, sqlutil.ToNullUUID(req.NominatedByTeamID), req.EndsAt)

		a, err := scanAuction(row)
		if isUniqueViolation(err) {
			return ErrDuplicateAuction
		}
		if err != nil {
			return fmt.Errorf("failed to create auction: %w", err)
		}
		created = a

		return events.Append(ctx, tx, req.DraftID, models.EventNominate, events.NominatePayload{
			AuctionID: a.ID,
			PlayerID:  a.PlayerID,
			ByTeamID:  a.NominatedByTeamID,
			EndsAt:    a.EndsAt,
		})
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ApplyBidRequest is the conditional write for one accepted bid. PrevHighBid
// and PrevHighTeamID are the state the bidder observed; the update succeeds
// only if they still match.
type ApplyBidRequest struct {
	AuctionID      uuid.UUID
	DraftID        uuid.UUID
	PlayerID       uuid.UUID
	TeamID         uuid.UUID
	Amount         int
	PrevHighBid    int
	PrevHighTeamID *uuid.UUID
	EndsAt         time.Time
	Now            time.Time
}

// ApplyBid applies one bid with a compare-and-set on (high_bid, high_team_id)
// and appends the BID event in the same transaction. Returns ErrBidConflict
// when a concurrent bid got there first.
func (r *Repository) ApplyBid(ctx context.Context, req ApplyBidRequest) error {
	return sqlutil.Run(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE auctions
			 SET high_bid = $1, high_team_id = $2, last_bid_at = $3, ends_at = $4
			 WHERE id = $5
			   AND closed_at IS NULL
			   AND high_bid = $6
			   AND high_team_id IS NOT DISTINCT FROM $7`,
			req.Amount, req.TeamID, req.Now, req.EndsAt,
			req.AuctionID, req.PrevHighBid, sqlutil.ToNullUUID(req.PrevHighTeamID))
		if err != nil {
			return fmt.Errorf("failed to apply bid: %w", err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read bid result: %w", err)
		}
		if rows == 0 {
			return ErrBidConflict
		}

		return events.Append(ctx, tx, req.DraftID, models.EventBid, events.BidPayload{
			AuctionID: req.AuctionID,
			TeamID:    req.TeamID,
			Amount:    req.Amount,
			PlayerID:  req.PlayerID,
			EndsAt:    req.EndsAt,
		})
	})
}

// AwardOutcome reports what one successful award transaction did.
type AwardOutcome struct {
	Status   FinalizeStatus
	PlayerID uuid.UUID
	TeamID   *uuid.UUID
	Amount   int
}

// AwardAuction performs the terminal transition as a single transaction
// across the auction, player and team rows. The compare-and-set on
// closed_at guarantees exactly one caller wins; every later caller gets
// ErrAuctionClosed. Nothing is partially applied: a failed roster or budget
// guard rolls the whole transaction back and the auction stays open.
func (r *Repository) AwardAuction(ctx context.Context, auctionID uuid.UUID, now time.Time) (*AwardOutcome, error) {
	var outcome *AwardOutcome
	err := sqlutil.Run(ctx, r.db, func(tx *sql.Tx) error {
		var (
			draftID  uuid.UUID
			playerID uuid.UUID
			highBid  int
			highTeam uuid.NullUUID
		)
		err := tx.QueryRowContext(ctx,
			`UPDATE auctions
			 SET closed_at = $2, paused = FALSE, pause_remaining_seconds = NULL
			 WHERE id = $1 AND closed_at IS NULL
			 RETURNING draft_id, player_id, high_bid, high_team_id`,
			auctionID, now).Scan(&draftID, &playerID, &highBid, &highTeam)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAuctionClosed
		}
		if err != nil {
			return fmt.Errorf("failed to close auction: %w", err)
		}

		if !highTeam.Valid {
			outcome = &AwardOutcome{Status: StatusNoBids, PlayerID: playerID}
			return events.Append(ctx, tx, draftID, models.EventFinalize, events.FinalizePayload{
				AuctionID: auctionID,
				PlayerID:  playerID,
				Status:    string(StatusNoBids),
			})
		}

		// Lock the winner's row and check the guards before charging.
		var budget, spots int
		err = tx.QueryRowContext(ctx,
			`SELECT budget_remaining, roster_spots_remaining FROM teams WHERE id = $1 FOR UPDATE`,
			highTeam.UUID).Scan(&budget, &spots)
		if err != nil {
			return fmt.Errorf("failed to lock winning team: %w", err)
		}
		if spots <= 0 {
			return ErrRosterOverflow
		}
		if budget < highBid {
			return ErrBudgetOverdraft
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE teams
			 SET budget_remaining = budget_remaining - $2,
			     roster_spots_remaining = roster_spots_remaining - 1
			 WHERE id = $1`,
			highTeam.UUID, highBid); err != nil {
			return fmt.Errorf("failed to charge winning team: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE players
			 SET drafted_by_team_id = $2, winning_bid = $3
			 WHERE id = $1 AND drafted_by_team_id IS NULL`,
			playerID, highTeam.UUID, highBid)
		if err != nil {
			return fmt.Errorf("failed to mark player drafted: %w", err)
		}
		rows, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read player update result: %w", err)
		}
		if rows == 0 {
			return ErrAlreadyDrafted
		}

		winner := highTeam.UUID
		outcome = &AwardOutcome{
			Status:   StatusAwarded,
			PlayerID: playerID,
			TeamID:   &winner,
			Amount:   highBid,
		}
		return events.Append(ctx, tx, draftID, models.EventFinalize, events.FinalizePayload{
			AuctionID: auctionID,
			PlayerID:  playerID,
			TeamID:    &winner,
			Amount:    highBid,
			Status:    string(StatusAwarded),
		})
	})
	if err != nil {
		return nil, err
	}
	return outcome, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
