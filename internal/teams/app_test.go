package teams

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/draftroom/internal/models"
)

type fakeTeamsRepo struct {
	teams    map[string]*models.Team
	upserted []TeamUpsert
	replaced []TeamUpsert
	blocked  bool
}

func (f *fakeTeamsRepo) GetTeamByJoinCode(_ context.Context, draftID uuid.UUID, code string) (*models.Team, error) {
	t, ok := f.teams[code]
	if !ok || t.DraftID != draftID {
		return nil, ErrInvalidJoinCode
	}
	return t, nil
}

func (f *fakeTeamsRepo) ListTeams(_ context.Context, _ uuid.UUID) ([]models.Team, error) {
	var out []models.Team
	for _, t := range f.teams {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTeamsRepo) UpsertTeams(_ context.Context, _ uuid.UUID, rows []TeamUpsert) error {
	f.upserted = rows
	return nil
}

func (f *fakeTeamsRepo) ReplaceTeams(_ context.Context, _ uuid.UUID, rows []TeamUpsert) error {
	if f.blocked {
		return ErrReplaceBlocked
	}
	f.replaced = rows
	return nil
}

func TestParseTeamsCSV(t *testing.T) {
	rows, err := ParseTeamsCSV("name,code,budget,spots\nSharks,ABC123,260,23\nJets,XYZ789,260,23\n")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, TeamUpsert{Name: "Sharks", JoinCode: "ABC123", Budget: 260, Spots: 23}, rows[0])
	assert.Equal(t, TeamUpsert{Name: "Jets", JoinCode: "XYZ789", Budget: 260, Spots: 23}, rows[1])
}

func TestParseTeamsCSVHeaderAliases(t *testing.T) {
	rows, err := ParseTeamsCSV("team,join_code,budget,roster_spots_total\nSharks,ABC123,100,10\n")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ABC123", rows[0].JoinCode)
	assert.Equal(t, 10, rows[0].Spots)
}

func TestParseTeamsCSVStripsBOM(t *testing.T) {
	rows, err := ParseTeamsCSV("\ufeffname,code,budget,spots\nSharks,ABC123,100,10\n")
	require.NoError(t, err)
	assert.Equal(t, "Sharks", rows[0].Name)
}

func TestParseTeamsCSVRowNumbersAreHuman(t *testing.T) {
	_, err := ParseTeamsCSV("name,code,budget,spots\nSharks,ABC123,100,10\n,MISSING,50,5\nJets,XYZ789,abc,10\n")
	ve, ok := IsValidation(err)
	require.True(t, ok)
	require.Len(t, ve.Rows, 2)
	assert.Equal(t, 3, ve.Rows[0].Row)
	assert.Contains(t, ve.Rows[0].Message, "name is required")
	assert.Equal(t, 4, ve.Rows[1].Row)
	assert.Contains(t, ve.Rows[1].Message, "budget")
}

func TestParseTeamsCSVRejectsDuplicates(t *testing.T) {
	_, err := ParseTeamsCSV("name,code,budget,spots\nSharks,ABC123,100,10\nSharks,DEF456,100,10\nJets,ABC123,100,10\n")
	ve, ok := IsValidation(err)
	require.True(t, ok)
	require.Len(t, ve.Rows, 2)
	assert.Contains(t, ve.Rows[0].Message, "duplicate name")
	assert.Contains(t, ve.Rows[1].Message, "duplicate code")
}

func TestParseTeamsCSVMissingColumns(t *testing.T) {
	_, err := ParseTeamsCSV("name,code\nSharks,ABC123\n")
	ve, ok := IsValidation(err)
	require.True(t, ok)
	require.Len(t, ve.Rows, 2)
	assert.Equal(t, 1, ve.Rows[0].Row)
	assert.Contains(t, ve.Rows[0].Message, "budget")
	assert.Contains(t, ve.Rows[1].Message, "spots")
}

func TestParseTeamsCSVRejectsZeroSpots(t *testing.T) {
	_, err := ParseTeamsCSV("name,code,budget,spots\nSharks,ABC123,100,0\n")
	ve, ok := IsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Rows[0].Message, "spots")
}

func TestParseTeamsCSVEmpty(t *testing.T) {
	_, err := ParseTeamsCSV("")
	_, ok := IsValidation(err)
	assert.True(t, ok)

	_, err = ParseTeamsCSV("name,code,budget,spots\n")
	_, ok = IsValidation(err)
	assert.True(t, ok)
}

func TestJoinTeamTrimsCode(t *testing.T) {
	draftID := uuid.New()
	team := &models.Team{ID: uuid.New(), DraftID: draftID, Name: "Sharks", JoinCode: "ABC123"}
	app := NewApp(&fakeTeamsRepo{teams: map[string]*models.Team{"ABC123": team}})

	got, err := app.JoinTeam(context.Background(), draftID, "  ABC123 ")
	require.NoError(t, err)
	assert.Equal(t, team.ID, got.ID)

	_, err = app.JoinTeam(context.Background(), draftID, "   ")
	assert.ErrorIs(t, err, ErrInvalidJoinCode)

	_, err = app.JoinTeam(context.Background(), uuid.New(), "ABC123")
	assert.ErrorIs(t, err, ErrInvalidJoinCode)
}

func TestImportTeamsRoundsThroughRepo(t *testing.T) {
	repo := &fakeTeamsRepo{}
	app := NewApp(repo)

	count, err := app.ImportTeams(context.Background(), uuid.New(), "name,code,budget,spots\nSharks,ABC123,100,10\n")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, repo.upserted, 1)
}

func TestReplaceTeamsPropagatesGuard(t *testing.T) {
	app := NewApp(&fakeTeamsRepo{blocked: true})

	_, err := app.ReplaceTeams(context.Background(), uuid.New(), "name,code,budget,spots\nSharks,ABC123,100,10\n")
	assert.ErrorIs(t, err, ErrReplaceBlocked)
}
