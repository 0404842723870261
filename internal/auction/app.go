package auction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/clock"
	"github.com/mcdev12/draftroom/internal/ledger"
	"github.com/mcdev12/draftroom/internal/models"
	"github.com/mcdev12/draftroom/internal/players"
)

// AuctionRepository defines what the app layer needs from the auction repository
type AuctionRepository interface {
	GetAuction(ctx context.Context, id uuid.UUID) (*models.Auction, error)
	ListOpenAuctions(ctx context.Context, draftID uuid.UUID) ([]models.Auction, error)
	ListExpiredOpen(ctx context.Context, draftID uuid.UUID, now time.Time) ([]models.Auction, error)
	CreateAuction(ctx context.Context, req CreateAuctionRequest) (*models.Auction, error)
	ApplyBid(ctx context.Context, req ApplyBidRequest) error
	AwardAuction(ctx context.Context, auctionID uuid.UUID, now time.Time) (*AwardOutcome, error)
}

// TeamRepository defines what the app layer needs from the teams repository
type TeamRepository interface {
	GetTeamByJoinCode(ctx context.Context, draftID uuid.UUID, code string) (*models.Team, error)
}

// PlayerRepository defines what the app layer needs from the players repository
type PlayerRepository interface {
	GetPlayer(ctx context.Context, id uuid.UUID) (*models.Player, error)
}

// SettingsRepository defines what the app layer needs from the settings repository
type SettingsRepository interface {
	GetSettings(ctx context.Context, draftID uuid.UUID) (*models.DraftSettings, error)
}

// App coordinates nominations, bids and finalizations for auctions.
type App struct {
	repo     AuctionRepository
	teams    TeamRepository
	players  PlayerRepository
	settings SettingsRepository
	clock    clockwork.Clock
}

// NewApp creates a new auction App
func NewApp(repo AuctionRepository, teams TeamRepository, players PlayerRepository, settings SettingsRepository, clk clockwork.Clock) *App {
	return &App{
		repo:     repo,
		teams:    teams,
		players:  players,
		settings: settings,
		clock:    clk,
	}
}

// Nominate opens a new auction for an undrafted player. The storage layer's
// partial unique index guards against two simultaneous nominations of the
// same player.
func (a *App) Nominate(ctx context.Context, draftID, playerID uuid.UUID, byTeamID *uuid.UUID) (*models.Auction, error) {
	player, err := a.players.GetPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if player.DraftID != draftID {
		return nil, fmt.Errorf("player does not belong to this draft: %w", players.ErrPlayerNotFound)
	}
	if player.Drafted() {
		return nil, ErrAlreadyDrafted
	}

	settings, err := a.settings.GetSettings(ctx, draftID)
	if err != nil {
		return nil, fmt.Errorf("failed to get draft settings: %w", err)
	}
	if settings.NominationSeconds < 1 {
		return nil, fmt.Errorf("invalid nomination timer setting: %d", settings.NominationSeconds)
	}

	now := a.clock.Now()
	created, err := a.repo.CreateAuction(ctx, CreateAuctionRequest{
		ID:                uuid.New(),
		DraftID:           draftID,
		PlayerID:          playerID,
		NominatedByTeamID: byTeamID,
		EndsAt:            clock.OnNominate(now, *settings),
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("draft_id", draftID.String()).
		Str("auction_id", created.ID.String()).
		Str("player_id", playerID.String()).
		Time("ends_at", created.EndsAt).
		Msg("nominated player")
	return created, nil
}

// PlaceBidRequest carries one bid attempt. The team authenticates by join
// code; identity resolution is the only thing done with it.
type PlaceBidRequest struct {
	DraftID   uuid.UUID
	AuctionID uuid.UUID
	TeamCode  string
	Amount    int
}

// PlaceBid validates and applies one bid. Preconditions are checked in
// order, first failure wins: auction open, not paused, deadline not passed,
// roster space, minimum increment, available budget. The write is conditioned on
// the observed (high_bid, high_team) pair and retried once on conflict.
func (a *App) PlaceBid(ctx context.Context, req PlaceBidRequest) (*models.Auction, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrBidTooLow)
	}

	team, err := a.teams.GetTeamByJoinCode(ctx, req.DraftID, req.TeamCode)
	if err != nil {
		return nil, err
	}

	settings, err := a.settings.GetSettings(ctx, req.DraftID)
	if err != nil {
		return nil, fmt.Errorf("failed to get draft settings: %w", err)
	}

	// One retry: the second bidder to reach the write wins if it still
	// beats the minimum increment against the newly applied value.
	for attempt := 0; attempt < 2; attempt++ {
		auction, err := a.repo.GetAuction(ctx, req.AuctionID)
		if err != nil {
			return nil, err
		}
		if auction.DraftID != req.DraftID {
			return nil, ErrWrongDraft
		}
		if auction.ClosedAt != nil {
			return nil, ErrAuctionClosed
		}
		// A frozen countdown takes no bids: accepting one would either be
		// lost on resume or demand resume-time deadline surgery. The stale
		// wall-clock ends_at of a paused auction is also meaningless, so
		// this check comes before the deadline check.
		if auction.Paused {
			return nil, ErrAuctionPaused
		}

		now := a.clock.Now()
		if now.After(auction.EndsAt) {
			return nil, ErrAuctionEnded
		}
		if team.RosterSpotsRemaining <= 0 {
			return nil, ErrNoRosterSpace
		}
		if req.Amount < auction.HighBid+MinIncrement {
			return nil, fmt.Errorf("%w: bid must be at least %d", ErrBidTooLow, auction.HighBid+MinIncrement)
		}

		// Recomputed from the live set of open auctions on every attempt;
		// never cached.
		open, err := a.repo.ListOpenAuctions(ctx, req.DraftID)
		if err != nil {
			return nil, fmt.Errorf("failed to list open auctions: %w", err)
		}
		available := ledger.Available(team, open, &auction.ID)
		if req.Amount > available {
			return nil, fmt.Errorf("%w (%d available)", ErrInsufficientBudget, available)
		}

		newEndsAt := clock.OnBid(auction.EndsAt, now, *settings)
		err = a.repo.ApplyBid(ctx, ApplyBidRequest{
			AuctionID:      auction.ID,
			DraftID:        auction.DraftID,
			PlayerID:       auction.PlayerID,
			TeamID:         team.ID,
			Amount:         req.Amount,
			PrevHighBid:    auction.HighBid,
			PrevHighTeamID: auction.HighTeamID,
			EndsAt:         newEndsAt,
			Now:            now,
		})
		if errors.Is(err, ErrBidConflict) {
			log.Debug().
				Str("auction_id", auction.ID.String()).
				Int("attempt", attempt+1).
				Msg("bid lost compare-and-set, retrying against new state")
			continue
		}
		if err != nil {
			return nil, err
		}

		log.Info().
			Str("auction_id", auction.ID.String()).
			Str("team_id", team.ID.String()).
			Int("amount", req.Amount).
			Time("ends_at", newEndsAt).
			Msg("bid accepted")

		applied := *auction
		applied.HighBid = req.Amount
		applied.HighTeamID = &team.ID
		applied.LastBidAt = &now
		applied.EndsAt = newEndsAt
		return &applied, nil
	}

	return nil, ErrBidConflict
}

// Finalize transitions one auction to its terminal state at most once.
// Every caller after the first observes ALREADY_CLOSED; force bypasses the
// deadline check but none of the award invariants.
func (a *App) Finalize(ctx context.Context, draftID, auctionID uuid.UUID, force bool) (FinalizeStatus, error) {
	auction, err := a.repo.GetAuction(ctx, auctionID)
	if err != nil {
		return "", err
	}
	if auction.DraftID != draftID {
		return "", ErrWrongDraft
	}
	if auction.ClosedAt != nil {
		return StatusAlreadyClosed, nil
	}

	now := a.clock.Now()
	if !force && !clock.IsExpired(auction, now) {
		return "", ErrNotExpiredYet
	}

	outcome, err := a.repo.AwardAuction(ctx, auctionID, now)
	if errors.Is(err, ErrAuctionClosed) {
		// A concurrent trigger finalized it between our read and write.
		return StatusAlreadyClosed, nil
	}
	if err != nil {
		// Invariant-violation errors abort the transaction; the auction
		// stays open for manual resolution rather than corrupting the
		// winner's ledger.
		log.Error().
			Err(err).
			Str("auction_id", auctionID.String()).
			Msg("finalize aborted")
		return "", err
	}

	evt := log.Info().
		Str("auction_id", auctionID.String()).
		Str("status", string(outcome.Status))
	if outcome.TeamID != nil {
		evt = evt.Str("team_id", outcome.TeamID.String()).Int("amount", outcome.Amount)
	}
	evt.Msg("auction finalized")
	return outcome.Status, nil
}

// SweepExpired funnels every expired open auction through Finalize. All
// finalization triggers converge on the same idempotent transition, so the
// sweep is safe to run concurrently with forced and manual finalizes.
func (a *App) SweepExpired(ctx context.Context, draftID uuid.UUID) (int, error) {
	expired, err := a.repo.ListExpiredOpen(ctx, draftID, a.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to list expired auctions: %w", err)
	}

	finalized := 0
	for _, auction := range expired {
		status, err := a.Finalize(ctx, draftID, auction.ID, false)
		if err != nil {
			if errors.Is(err, ErrNotExpiredYet) {
				// Paused or extended since we listed it.
				continue
			}
			log.Error().
				Err(err).
				Str("auction_id", auction.ID.String()).
				Msg("sweep failed to finalize auction")
			continue
		}
		if status == StatusAwarded || status == StatusNoBids {
			finalized++
		}
	}
	return finalized, nil
}
