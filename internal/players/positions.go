package players

import (
	"strings"

	"github.com/mcdev12/draftroom/internal/models"
)

var primaryPositions = map[models.Position]bool{
	models.PosCatcher:     true,
	models.PosFirstBase:   true,
	models.PosSecondBase:  true,
	models.PosShortstop:   true,
	models.PosThirdBase:   true,
	models.PosRightField:  true,
	models.PosCenterField: true,
	models.PosLeftField:   true,
	models.PosStarter:     true,
	models.PosSwingman:    true,
	models.PosReliever:    true,
	models.PosCloser:      true,
}

var secondaryPositions = map[models.Position]bool{
	models.PosCatcher:         true,
	models.PosFirstBase:       true,
	models.PosSecondBase:      true,
	models.PosShortstop:       true,
	models.PosThirdBase:       true,
	models.PosRightField:      true,
	models.PosCenterField:     true,
	models.PosLeftField:       true,
	models.PosInfield:         true,
	models.PosOutfield:        true,
	models.PosInfieldOutfield: true,
	models.PosFirstOrOutfield: true,
}

// covered maps each composite position to the concrete positions it spans.
var covered = map[models.Position][]models.Position{
	models.PosInfield: {
		models.PosFirstBase, models.PosSecondBase, models.PosShortstop, models.PosThirdBase,
	},
	models.PosOutfield: {
		models.PosLeftField, models.PosCenterField, models.PosRightField,
	},
	models.PosInfieldOutfield: {
		models.PosFirstBase, models.PosSecondBase, models.PosShortstop, models.PosThirdBase,
		models.PosLeftField, models.PosCenterField, models.PosRightField,
	},
	models.PosFirstOrOutfield: {
		models.PosFirstBase,
		models.PosLeftField, models.PosCenterField, models.PosRightField,
	},
	models.PosSwingman: {
		models.PosStarter, models.PosReliever,
	},
}

// NormalizePosition canonicalizes raw CSV input, e.g. " ss " -> "SS".
func NormalizePosition(raw string) models.Position {
	return models.Position(strings.ToUpper(strings.TrimSpace(raw)))
}

// ValidPrimary reports whether p is an allowed primary position.
func ValidPrimary(p models.Position) bool {
	return primaryPositions[p]
}

// ValidSecondary reports whether p is an allowed secondary position.
func ValidSecondary(p models.Position) bool {
	return secondaryPositions[p]
}

// Covers reports whether a player listed at pos can fill slot. Concrete
// positions cover only themselves; composites span their member positions.
func Covers(pos, slot models.Position) bool {
	if pos == slot {
		return true
	}
	for _, c := range covered[pos] {
		if c == slot {
			return true
		}
	}
	return false
}

// Eligible reports whether the player's primary or secondary position
// covers the given slot.
func Eligible(e models.PositionEligibility, slot models.Position) bool {
	if Covers(e.Primary, slot) {
		return true
	}
	return e.Secondary != nil && Covers(*e.Secondary, slot)
}
