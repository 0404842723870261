package settings

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/draftroom/internal/models"
)

type fakeSettingsRepo struct {
	saved *models.DraftSettings
}

func (f *fakeSettingsRepo) GetSettings(_ context.Context, draftID uuid.UUID) (*models.DraftSettings, error) {
	if f.saved != nil && f.saved.DraftID == draftID {
		return f.saved, nil
	}
	return &models.DraftSettings{
		DraftID:           draftID,
		NominationSeconds: DefaultNominationSeconds,
		BidSeconds:        DefaultBidSeconds,
		QuietTimezone:     DefaultQuietTimezone,
	}, nil
}

func (f *fakeSettingsRepo) SaveSettings(_ context.Context, s *models.DraftSettings) error {
	f.saved = s
	return nil
}

func TestSaveValidSettings(t *testing.T) {
	repo := &fakeSettingsRepo{}
	app := NewApp(repo)

	err := app.Save(context.Background(), &models.DraftSettings{
		DraftID:           uuid.New(),
		NominationSeconds: 600,
		BidSeconds:        120,
		QuietHoursEnabled: true,
		QuietStartMinute:  23 * 60,
		QuietEndMinute:    8 * 60,
		QuietTimezone:     "America/Chicago",
	})
	require.NoError(t, err)
	require.NotNil(t, repo.saved)
	assert.Equal(t, 600, repo.saved.NominationSeconds)
}

func TestSaveDefaultsEmptyTimezone(t *testing.T) {
	repo := &fakeSettingsRepo{}
	app := NewApp(repo)

	err := app.Save(context.Background(), &models.DraftSettings{
		DraftID:           uuid.New(),
		NominationSeconds: 600,
		BidSeconds:        120,
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultQuietTimezone, repo.saved.QuietTimezone)
}

func TestSaveRejectsBadValues(t *testing.T) {
	app := NewApp(&fakeSettingsRepo{})
	base := func() *models.DraftSettings {
		return &models.DraftSettings{
			DraftID:           uuid.New(),
			NominationSeconds: 600,
			BidSeconds:        120,
		}
	}

	s := base()
	s.DraftID = uuid.Nil
	assert.ErrorIs(t, app.Save(context.Background(), s), ErrInvalidSettings)

	s = base()
	s.NominationSeconds = -1
	assert.ErrorIs(t, app.Save(context.Background(), s), ErrInvalidSettings)

	s = base()
	s.BidSeconds = -1
	assert.ErrorIs(t, app.Save(context.Background(), s), ErrInvalidSettings)

	s = base()
	s.QuietStartMinute = 1440
	assert.ErrorIs(t, app.Save(context.Background(), s), ErrInvalidSettings)

	s = base()
	s.QuietEndMinute = -5
	assert.ErrorIs(t, app.Save(context.Background(), s), ErrInvalidSettings)

	s = base()
	s.QuietTimezone = "Mars/Olympus_Mons"
	assert.ErrorIs(t, app.Save(context.Background(), s), ErrInvalidSettings)
}
