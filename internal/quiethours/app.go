package quiethours

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/models"
)

// QuietHoursRepository defines what the app layer needs from the repository
type QuietHoursRepository interface {
	PauseOpen(ctx context.Context, draftID uuid.UUID, now time.Time) (int, error)
	ResumePaused(ctx context.Context, draftID uuid.UUID, now time.Time) (int, error)
}

// SettingsRepository defines what the app layer needs from the settings
// repository
type SettingsRepository interface {
	GetSettings(ctx context.Context, draftID uuid.UUID) (*models.DraftSettings, error)
}

// App reconciles a draft's auction timers with its quiet window. Apply is
// idempotent: once a draft is paused, repeated in-window ticks touch
// nothing, and the first out-of-window tick thaws everything at once.
type App struct {
	repo     QuietHoursRepository
	settings SettingsRepository
	clock    clockwork.Clock
}

func NewApp(repo QuietHoursRepository, settings SettingsRepository, clk clockwork.Clock) *App {
	return &App{repo: repo, settings: settings, clock: clk}
}

// Result reports what one Apply call did to a draft.
type Result struct {
	InWindow bool `json:"in_window"`
	Paused   int  `json:"paused"`
	Resumed  int  `json:"resumed"`
}

// Apply pauses or resumes the draft's open auctions depending on whether
// the current time falls inside the quiet window. Disabling the feature
// counts as leaving the window, so stuck pauses always clear.
func (a *App) Apply(ctx context.Context, draftID uuid.UUID) (*Result, error) {
	settings, err := a.settings.GetSettings(ctx, draftID)
	if err != nil {
		return nil, err
	}

	now := a.clock.Now()
	inWindow, err := InWindow(now, *settings)
	if err != nil {
		return nil, err
	}

	result := &Result{InWindow: inWindow}
	if inWindow {
		result.Paused, err = a.repo.PauseOpen(ctx, draftID, now)
	} else {
		result.Resumed, err = a.repo.ResumePaused(ctx, draftID, now)
	}
	if err != nil {
		return nil, err
	}

	if result.Paused > 0 || result.Resumed > 0 {
		log.Info().
			Str("draft_id", draftID.String()).
			Bool("in_window", inWindow).
			Int("paused", result.Paused).
			Int("resumed", result.Resumed).
			Msg("applied quiet hours")
	}
	return result, nil
}
