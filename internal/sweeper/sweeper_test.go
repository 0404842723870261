package sweeper

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/draftroom/internal/quiethours"
)

type fakeLister struct {
	mu  sync.Mutex
	ids []uuid.UUID
	err error
}

func (f *fakeLister) ListDraftIDs(ctx context.Context) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ids, f.err
}

func (f *fakeLister) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

type fakeAuctions struct {
	mu    sync.Mutex
	swept map[uuid.UUID]int
	done  chan uuid.UUID
}

func newFakeAuctions() *fakeAuctions {
	return &fakeAuctions{swept: make(map[uuid.UUID]int), done: make(chan uuid.UUID, 16)}
}

func (f *fakeAuctions) SweepExpired(ctx context.Context, draftID uuid.UUID) (int, error) {
	f.mu.Lock()
	f.swept[draftID]++
	f.mu.Unlock()
	f.done <- draftID
	return 1, nil
}

type fakeQuiet struct {
	mu     sync.Mutex
	calls  map[uuid.UUID]int
	result quiethours.Result
	err    error
}

func newFakeQuiet() *fakeQuiet {
	return &fakeQuiet{calls: make(map[uuid.UUID]int)}
}

func (f *fakeQuiet) Apply(ctx context.Context, draftID uuid.UUID) (*quiethours.Result, error) {
	f.mu.Lock()
	f.calls[draftID]++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	res := f.result
	return &res, nil
}

func awaitSweep(t *testing.T, done chan uuid.UUID) uuid.UUID {
	t.Helper()
	select {
	case id := <-done:
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for sweep")
		return uuid.Nil
	}
}

func TestRunSweepsEveryDraftOnTick(t *testing.T) {
	draftA := uuid.New()
	draftB := uuid.New()
	lister := &fakeLister{ids: []uuid.UUID{draftA, draftB}}
	auctions := newFakeAuctions()
	quiet := newFakeQuiet()
	clk := clockwork.NewFakeClock()

	cfg := DefaultConfig()
	s := New(lister, auctions, quiet, clk, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan error, 1)
	go func() { runDone <- s.Run(ctx) }()

	require.NoError(t, clk.BlockUntilContext(ctx, 1))
	clk.Advance(cfg.Interval)

	seen := map[uuid.UUID]bool{}
	seen[awaitSweep(t, auctions.done)] = true
	seen[awaitSweep(t, auctions.done)] = true
	require.True(t, seen[draftA])
	require.True(t, seen[draftB])

	quiet.mu.Lock()
	require.Equal(t, 1, quiet.calls[draftA])
	require.Equal(t, 1, quiet.calls[draftB])
	quiet.mu.Unlock()

	cancel()
	select {
	case err := <-runDone:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not shut down")
	}
}

func TestQuietHoursFailureSkipsSweep(t *testing.T) {
	draftID := uuid.New()
	lister := &fakeLister{ids: []uuid.UUID{draftID}}
	auctions := newFakeAuctions()
	quiet := newFakeQuiet()
	quiet.err = errors.New("boom")
	clk := clockwork.NewFakeClock()

	cfg := DefaultConfig()
	s := New(lister, auctions, quiet, clk, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	require.NoError(t, clk.BlockUntilContext(ctx, 1))
	clk.Advance(cfg.Interval)

	require.Eventually(t, func() bool {
		quiet.mu.Lock()
		defer quiet.mu.Unlock()
		return quiet.calls[draftID] == 1
	}, 2*time.Second, 10*time.Millisecond)

	auctions.mu.Lock()
	require.Zero(t, auctions.swept[draftID])
	auctions.mu.Unlock()
}

func TestListFailureDoesNotStopLoop(t *testing.T) {
	draftID := uuid.New()
	lister := &fakeLister{ids: []uuid.UUID{draftID}, err: errors.New("db down")}
	auctions := newFakeAuctions()
	quiet := newFakeQuiet()
	clk := clockwork.NewFakeClock()

	cfg := DefaultConfig()
	s := New(lister, auctions, quiet, clk, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	require.NoError(t, clk.BlockUntilContext(ctx, 1))
	clk.Advance(cfg.Interval)

	// Recover the lister and confirm the next tick still sweeps.
	lister.setErr(nil)
	require.NoError(t, clk.BlockUntilContext(ctx, 1))
	clk.Advance(cfg.Interval)

	require.Equal(t, draftID, awaitSweep(t, auctions.done))
}
