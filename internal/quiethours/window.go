// Package quiethours freezes and thaws auction timers over a recurring
// daily window.
package quiethours

import (
	"fmt"
	"time"

	"github.com/mcdev12/draftroom/internal/models"
)

// InWindow reports whether now falls inside the draft's quiet window. The
// window is [start, end) in minutes of day in the configured timezone and
// may wrap past midnight. A start equal to its end is an empty window.
func InWindow(now time.Time, s models.DraftSettings) (bool, error) {
	if !s.QuietHoursEnabled {
		return false, nil
	}
	loc, err := time.LoadLocation(s.QuietTimezone)
	if err != nil {
		return false, fmt.Errorf("invalid quiet hours timezone %q: %w", s.QuietTimezone, err)
	}

	local := now.In(loc)
	minute := local.Hour()*60 + local.Minute()

	start, end := s.QuietStartMinute, s.QuietEndMinute
	switch {
	case start == end:
		return false, nil
	case start < end:
		return minute >= start && minute < end, nil
	default:
		// Wraps midnight, e.g. 23:00 to 08:00.
		return minute >= start || minute < end, nil
	}
}
