package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/models"
)

// SettingsRepository defines what the app layer needs from the repository
type SettingsRepository interface {
	GetSettings(ctx context.Context, draftID uuid.UUID) (*models.DraftSettings, error)
	SaveSettings(ctx context.Context, s *models.DraftSettings) error
}

// App validates and persists per-draft settings.
type App struct {
	repo SettingsRepository
}

func NewApp(repo SettingsRepository) *App {
	return &App{repo: repo}
}

// GetSettings returns the draft's effective settings.
func (a *App) GetSettings(ctx context.Context, draftID uuid.UUID) (*models.DraftSettings, error) {
	return a.repo.GetSettings(ctx, draftID)
}

// Save validates and persists the settings. Timer seconds must be
// non-negative, quiet window bounds are minutes of day, and the timezone
// must be a loadable IANA name.
func (a *App) Save(ctx context.Context, s *models.DraftSettings) error {
	if s.DraftID == uuid.Nil {
		return fmt.Errorf("%w: draft_id is required", ErrInvalidSettings)
	}
	if s.NominationSeconds < 0 {
		return fmt.Errorf("%w: nomination_seconds must be non-negative", ErrInvalidSettings)
	}
	if s.BidSeconds < 0 {
		return fmt.Errorf("%w: bid_seconds must be non-negative", ErrInvalidSettings)
	}
	if s.QuietStartMinute < 0 || s.QuietStartMinute > 1439 {
		return fmt.Errorf("%w: quiet_start_minute must be between 0 and 1439", ErrInvalidSettings)
	}
	if s.QuietEndMinute < 0 || s.QuietEndMinute > 1439 {
		return fmt.Errorf("%w: quiet_end_minute must be between 0 and 1439", ErrInvalidSettings)
	}
	if s.QuietTimezone == "" {
		s.QuietTimezone = DefaultQuietTimezone
	}
	if _, err := time.LoadLocation(s.QuietTimezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidSettings, s.QuietTimezone)
	}

	if err := a.repo.SaveSettings(ctx, s); err != nil {
		return err
	}
	log.Info().
		Str("draft_id", s.DraftID.String()).
		Int("nomination_seconds", s.NominationSeconds).
		Int("bid_seconds", s.BidSeconds).
		Bool("quiet_hours_enabled", s.QuietHoursEnabled).
		Msg("saved draft settings")
	return nil
}
