package quiethours

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/draftroom/internal/models"
)

func settingsWith(start, end int) models.DraftSettings {
	return models.DraftSettings{
		QuietHoursEnabled: true,
		QuietStartMinute:  start,
		QuietEndMinute:    end,
		QuietTimezone:     "UTC",
	}
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 4, 15, hour, minute, 0, 0, time.UTC)
}

func TestInWindowSimple(t *testing.T) {
	s := settingsWith(9*60, 17*60)

	for _, tc := range []struct {
		now  time.Time
		want bool
	}{
		{at(8, 59), false},
		{at(9, 0), true},
		{at(12, 30), true},
		{at(16, 59), true},
		{at(17, 0), false},
		{at(23, 0), false},
	} {
		got, err := InWindow(tc.now, s)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "at %s", tc.now)
	}
}

func TestInWindowWrapsMidnight(t *testing.T) {
	s := settingsWith(23*60, 8*60)

	for _, tc := range []struct {
		now  time.Time
		want bool
	}{
		{at(22, 59), false},
		{at(23, 0), true},
		{at(23, 59), true},
		{at(0, 0), true},
		{at(3, 30), true},
		{at(7, 59), true},
		{at(8, 0), false},
		{at(12, 0), false},
	} {
		got, err := InWindow(tc.now, s)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "at %s", tc.now)
	}
}

func TestInWindowDisabledOrEmpty(t *testing.T) {
	s := settingsWith(9*60, 17*60)
	s.QuietHoursEnabled = false
	got, err := InWindow(at(12, 0), s)
	require.NoError(t, err)
	assert.False(t, got)

	empty := settingsWith(600, 600)
	got, err = InWindow(at(10, 0), empty)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestInWindowUsesConfiguredTimezone(t *testing.T) {
	s := settingsWith(23*60, 8*60)
	s.QuietTimezone = "America/New_York"

	// 03:00 UTC on this date is 23:00 in New York (EDT).
	got, err := InWindow(time.Date(2026, 4, 15, 3, 0, 0, 0, time.UTC), s)
	require.NoError(t, err)
	assert.True(t, got)

	// 02:59 UTC is 22:59 in New York.
	got, err = InWindow(time.Date(2026, 4, 15, 2, 59, 0, 0, time.UTC), s)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestInWindowRejectsBadTimezone(t *testing.T) {
	s := settingsWith(0, 60)
	s.QuietTimezone = "Mars/Olympus_Mons"
	_, err := InWindow(at(0, 30), s)
	assert.Error(t, err)
}

type fakeQuietRepo struct {
	pausedCount  int
	resumedCount int
	pauseCalls   int
	resumeCalls  int
}

func (f *fakeQuietRepo) PauseOpen(_ context.Context, _ uuid.UUID, _ time.Time) (int, error) {
	f.pauseCalls++
	return f.pausedCount, nil
}

func (f *fakeQuietRepo) ResumePaused(_ context.Context, _ uuid.UUID, _ time.Time) (int, error) {
	f.resumeCalls++
	return f.resumedCount, nil
}

type fakeSettings struct {
	s models.DraftSettings
}

func (f *fakeSettings) GetSettings(_ context.Context, draftID uuid.UUID) (*models.DraftSettings, error) {
	cp := f.s
	cp.DraftID = draftID
	return &cp, nil
}

func TestApplyPausesInsideWindow(t *testing.T) {
	repo := &fakeQuietRepo{pausedCount: 3}
	clk := clockwork.NewFakeClockAt(time.Date(2026, 4, 15, 23, 30, 0, 0, time.UTC))
	app := NewApp(repo, &fakeSettings{s: settingsWith(23*60, 8*60)}, clk)

	result, err := app.Apply(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, result.InWindow)
	assert.Equal(t, 3, result.Paused)
	assert.Equal(t, 0, result.Resumed)
	assert.Equal(t, 1, repo.pauseCalls)
	assert.Equal(t, 0, repo.resumeCalls)
}

func TestApplyResumesOutsideWindow(t *testing.T) {
	repo := &fakeQuietRepo{resumedCount: 2}
	clk := clockwork.NewFakeClockAt(time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC))
	app := NewApp(repo, &fakeSettings{s: settingsWith(23*60, 8*60)}, clk)

	result, err := app.Apply(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, result.InWindow)
	assert.Equal(t, 2, result.Resumed)
}

func TestApplyResumesWhenDisabled(t *testing.T) {
	repo := &fakeQuietRepo{resumedCount: 1}
	s := settingsWith(0, 1439)
	s.QuietHoursEnabled = false
	clk := clockwork.NewFakeClockAt(time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC))
	app := NewApp(repo, &fakeSettings{s: s}, clk)

	result, err := app.Apply(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, result.InWindow)
	assert.Equal(t, 1, result.Resumed)
}
