// Package sweeper runs the background maintenance loop: every interval it
// applies the quiet-hours window and finalizes expired auctions for each
// known draft. Finalization stays idempotent, so running the sweeper next
// to the auto-finalize endpoint is safe.
package sweeper

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/quiethours"
)

// DraftLister enumerates the drafts the sweeper maintains.
type DraftLister interface {
	ListDraftIDs(ctx context.Context) ([]uuid.UUID, error)
}

// AuctionSweeper finalizes the expired auctions of one draft.
type AuctionSweeper interface {
	SweepExpired(ctx context.Context, draftID uuid.UUID) (int, error)
}

// QuietHoursApplier pauses or resumes a draft's auctions to match its
// quiet-hours window.
type QuietHoursApplier interface {
	Apply(ctx context.Context, draftID uuid.UUID) (*quiethours.Result, error)
}

// Config holds sweeper tuning knobs.
type Config struct {
	Interval time.Duration
	Workers  int
}

// DefaultConfig returns the default sweeper configuration.
func DefaultConfig() Config {
	return Config{
		Interval: 15 * time.Second,
		Workers:  4,
	}
}

// Sweeper dispatches per-draft maintenance work to a small worker pool.
type Sweeper struct {
	drafts   DraftLister
	auctions AuctionSweeper
	quiet    QuietHoursApplier
	clock    clockwork.Clock
	config   Config

	workCh chan uuid.UUID
}

// New creates a sweeper. Workers below 1 are clamped to 1.
func New(drafts DraftLister, auctions AuctionSweeper, quiet QuietHoursApplier, clk clockwork.Clock, config Config) *Sweeper {
	if config.Workers < 1 {
		config.Workers = 1
	}
	return &Sweeper{
		drafts:   drafts,
		auctions: auctions,
		quiet:    quiet,
		clock:    clk,
		config:   config,
		workCh:   make(chan uuid.UUID, 64),
	}
}

// Run ticks until ctx is cancelled. Each tick enqueues every draft for its
// workers to sweep.
func (s *Sweeper) Run(ctx context.Context) error {
	log.Info().
		Dur("interval", s.config.Interval).
		Int("workers", s.config.Workers).
		Msg("sweeper started")

	var wg sync.WaitGroup
	workerCtx, cancelWorkers := context.WithCancel(ctx)
	defer cancelWorkers()

	for i := 0; i < s.config.Workers; i++ {
		wg.Add(1)
		go s.worker(workerCtx, &wg, i)
	}

	ticker := s.clock.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("sweeper shutting down")
			cancelWorkers()
			close(s.workCh)
			wg.Wait()
			log.Info().Msg("sweeper workers drained")
			return nil
		case <-ticker.Chan():
			s.enqueueDrafts(ctx)
		}
	}
}

func (s *Sweeper) enqueueDrafts(ctx context.Context) {
	ids, err := s.drafts.ListDraftIDs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list drafts for sweep")
		return
	}

	for _, id := range ids {
		select {
		case s.workCh <- id:
		default:
			log.Warn().Str("draft_id", id.String()).Msg("sweep queue full, skipping draft this tick")
		}
	}
}

func (s *Sweeper) worker(ctx context.Context, wg *sync.WaitGroup, workerID int) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case draftID, ok := <-s.workCh:
			if !ok {
				return
			}
			s.sweepDraft(ctx, draftID, workerID)
		}
	}
}

// sweepDraft applies quiet hours first so that a draft entering its window
// is paused before any expiry check runs.
func (s *Sweeper) sweepDraft(ctx context.Context, draftID uuid.UUID, workerID int) {
	res, err := s.quiet.Apply(ctx, draftID)
	if err != nil {
		log.Error().
			Err(err).
			Str("draft_id", draftID.String()).
			Int("worker_id", workerID).
			Msg("quiet hours apply failed")
		return
	}
	if res.Paused > 0 || res.Resumed > 0 {
		log.Info().
			Str("draft_id", draftID.String()).
			Bool("in_window", res.InWindow).
			Int("paused", res.Paused).
			Int("resumed", res.Resumed).
			Msg("quiet hours applied")
	}

	closed, err := s.auctions.SweepExpired(ctx, draftID)
	if err != nil {
		log.Error().
			Err(err).
			Str("draft_id", draftID.String()).
			Int("worker_id", workerID).
			Msg("sweep failed")
		return
	}
	if closed > 0 {
		log.Info().
			Str("draft_id", draftID.String()).
			Int("closed", closed).
			Msg("expired auctions finalized")
	}
}
