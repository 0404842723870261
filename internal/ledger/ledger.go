// Package ledger computes a team's true spendable budget given its committed
// high bids across all open auctions. Pure query layer, no side effects.
// Callers must recompute from the live set of open auctions on every bid
// attempt; any other auction's high bid can change concurrently.
package ledger

import (
	"github.com/google/uuid"

	"github.com/mcdev12/draftroom/internal/models"
)

// Committed returns the sum of the team's high bids over open auctions.
func Committed(open []models.Auction, teamID uuid.UUID) int {
	total := 0
	for i := range open {
		a := &open[i]
		if a.ClosedAt != nil {
			continue
		}
		if a.HighTeamID == nil || *a.HighTeamID != teamID {
			continue
		}
		total += a.HighBid
	}
	return total
}

// Available returns the team's spendable budget. When excluding is set and
// the team currently holds the high bid on that auction, its high bid is
// credited back: a team raising its own bid is not charged twice for the
// same commitment. The result never goes below zero.
func Available(team *models.Team, open []models.Auction, excluding *uuid.UUID) int {
	committed := 0
	for i := range open {
		a := &open[i]
		if a.ClosedAt != nil {
			continue
		}
		if a.HighTeamID == nil || *a.HighTeamID != team.ID {
			continue
		}
		if excluding != nil && a.ID == *excluding {
			continue
		}
		committed += a.HighBid
	}

	available := team.BudgetRemaining - committed
	if available < 0 {
		return 0
	}
	return available
}
