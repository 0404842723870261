// Package clock encapsulates the deadline rules for a single auction:
// the initial nomination countdown, the anti-snipe extension on each bid,
// and the quiet-hours pause/resume that freezes remaining time.
package clock

import (
	"time"

	"github.com/mcdev12/draftroom/internal/models"
)

// OnNominate returns the deadline for a freshly nominated auction.
func OnNominate(now time.Time, settings models.DraftSettings) time.Time {
	return now.Add(settings.NominationDuration())
}

// OnBid returns the deadline after an accepted bid. The deadline only ever
// moves forward: every accepted bid leaves at least bid_seconds of bidding
// time remaining.
func OnBid(endsAt, now time.Time, settings models.DraftSettings) time.Time {
	floor := now.Add(settings.BidDuration())
	if floor.After(endsAt) {
		return floor
	}
	return endsAt
}

// IsExpired reports whether the auction's deadline has passed. A paused or
// closed auction never expires.
func IsExpired(a *models.Auction, now time.Time) bool {
	return a.ClosedAt == nil && !a.Paused && !now.Before(a.EndsAt)
}

// Pause freezes the countdown, recording the remaining duration at the
// moment of pause so that later cycles cannot erode it. Pausing an already
// paused or closed auction is a no-op.
func Pause(a *models.Auction, now time.Time) {
	if a.Paused || a.ClosedAt != nil {
		return
	}
	remaining := a.EndsAt.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	a.Paused = true
	a.PauseRemaining = &remaining
}

// Resume restarts the countdown with the duration that remained at pause
// time. The deadline never moves backwards: if ends_at was pushed past
// now+remaining while frozen, the later deadline stands. Resuming a running
// auction is a no-op.
func Resume(a *models.Auction, now time.Time) {
	if !a.Paused {
		return
	}
	if a.PauseRemaining != nil {
		restored := now.Add(*a.PauseRemaining)
		if restored.After(a.EndsAt) {
			a.EndsAt = restored
		}
	}
	a.Paused = false
	a.PauseRemaining = nil
}
