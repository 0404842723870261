package auction

import "errors"

// State-conflict errors are expected under concurrency and are normal
// control flow: callers re-fetch and may retry the user action.
var (
	ErrAuctionNotFound  = errors.New("auction not found")
	ErrWrongDraft       = errors.New("auction does not belong to this draft")
	ErrAuctionClosed    = errors.New("auction already closed")
	ErrAuctionPaused    = errors.New("auction is paused")
	ErrAuctionEnded     = errors.New("auction has ended")
	ErrAlreadyDrafted   = errors.New("player is already drafted")
	ErrDuplicateAuction = errors.New("an open auction already exists for this player")
	ErrNotExpiredYet    = errors.New("auction has not expired yet")

	ErrNoRosterSpace      = errors.New("no roster spots remaining")
	ErrBidTooLow          = errors.New("bid below minimum increment")
	ErrInsufficientBudget = errors.New("bid exceeds available budget")

	// ErrBidConflict means the compare-and-set write lost to a concurrent
	// bid on the same auction; the processor retries once against the new
	// state before surfacing it.
	ErrBidConflict = errors.New("auction changed while placing bid")
)

// Invariant-violation errors indicate a race slipped past its guard. The
// whole transaction aborts, nothing is partially applied, and the auction
// stays open for manual resolution.
var (
	ErrRosterOverflow  = errors.New("winner has no roster spots remaining")
	ErrBudgetOverdraft = errors.New("winning bid exceeds remaining budget")
)
