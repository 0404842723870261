package players

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/draftroom/internal/models"
)

func TestParsePlayersCSVHeaderless(t *testing.T) {
	rows, err := ParsePlayersCSV("Bobby Witt Jr.,SS,IF\nTarik Skubal,SP,\nCal Raleigh,C\n")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Bobby Witt Jr.", rows[0].Name)
	assert.Equal(t, models.PosShortstop, rows[0].Position.Primary)
	require.NotNil(t, rows[0].Position.Secondary)
	assert.Equal(t, models.PosInfield, *rows[0].Position.Secondary)

	assert.Equal(t, models.PosStarter, rows[1].Position.Primary)
	assert.Nil(t, rows[1].Position.Secondary)

	assert.Equal(t, models.PosCatcher, rows[2].Position.Primary)
	assert.Nil(t, rows[2].Position.Secondary)
}

func TestParsePlayersCSVSniffsHeader(t *testing.T) {
	rows, err := ParsePlayersCSV("name,primary,secondary\nElly De La Cruz,SS,IF/OF\n")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Elly De La Cruz", rows[0].Name)
}

func TestParsePlayersCSVHeaderAliases(t *testing.T) {
	rows, err := ParsePlayersCSV("pos2,pos1,name\nOF,CF,Julio Rodriguez\n")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Julio Rodriguez", rows[0].Name)
	assert.Equal(t, models.PosCenterField, rows[0].Position.Primary)
	require.NotNil(t, rows[0].Position.Secondary)
	assert.Equal(t, models.PosOutfield, *rows[0].Position.Secondary)
}

func TestParsePlayersCSVFirstRowThatLooksLikeDataIsData(t *testing.T) {
	// "SS" is not a header cell, so the first row is a player row.
	rows, err := ParsePlayersCSV("Gunnar Henderson,SS\nAdley Rutschman,C\n")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestParsePlayersCSVNormalizesPositions(t *testing.T) {
	rows, err := ParsePlayersCSV("Someone, ss , if/of \n")
	require.NoError(t, err)
	assert.Equal(t, models.PosShortstop, rows[0].Position.Primary)
	assert.Equal(t, models.PosInfieldOutfield, *rows[0].Position.Secondary)
}

func TestParsePlayersCSVSkipsEmptyNames(t *testing.T) {
	rows, err := ParsePlayersCSV("Witt,SS\n,1B\nSkubal,SP\n")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestParsePlayersCSVRejectsBadPositions(t *testing.T) {
	_, err := ParsePlayersCSV("Witt,QB\n")
	require.Error(t, err)
	assert.True(t, IsCSVError(err))
	assert.Contains(t, err.Error(), "invalid primary position")

	_, err = ParsePlayersCSV("Witt,SS,QB\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid secondary position")

	// IF is a composite category, valid only as secondary.
	_, err = ParsePlayersCSV("Witt,IF\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid primary position")

	_, err = ParsePlayersCSV("Witt,\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing primary position")
}

func TestParsePlayersCSVEmpty(t *testing.T) {
	_, err := ParsePlayersCSV("")
	assert.True(t, IsCSVError(err))

	_, err = ParsePlayersCSV("\n\n")
	assert.True(t, IsCSVError(err))
}

type fakePlayersRepo struct {
	upserted []PlayerUpsert
	removed  int
}

func (f *fakePlayersRepo) GetPlayer(_ context.Context, _ uuid.UUID) (*models.Player, error) {
	return nil, ErrPlayerNotFound
}

func (f *fakePlayersRepo) ListPlayers(_ context.Context, _ uuid.UUID) ([]models.Player, error) {
	return nil, nil
}

func (f *fakePlayersRepo) UpsertPlayers(_ context.Context, _ uuid.UUID, rows []PlayerUpsert) error {
	f.upserted = rows
	return nil
}

func (f *fakePlayersRepo) ReplaceUndrafted(_ context.Context, _ uuid.UUID) (int, error) {
	return f.removed, nil
}

func TestImportPlayersRoundsThroughRepo(t *testing.T) {
	repo := &fakePlayersRepo{}
	app := NewApp(repo)

	count, err := app.ImportPlayers(context.Background(), uuid.New(), "Witt,SS\nSkubal,SP\n")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, repo.upserted, 2)
}

func TestReplaceUndraftedReportsRemoved(t *testing.T) {
	app := NewApp(&fakePlayersRepo{removed: 7})

	removed, err := app.ReplaceUndrafted(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 7, removed)
}
