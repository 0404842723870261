package players

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcdev12/draftroom/internal/models"
)

func TestCovers(t *testing.T) {
	assert.True(t, Covers(models.PosShortstop, models.PosShortstop))
	assert.False(t, Covers(models.PosShortstop, models.PosSecondBase))

	assert.True(t, Covers(models.PosInfield, models.PosFirstBase))
	assert.True(t, Covers(models.PosInfield, models.PosThirdBase))
	assert.False(t, Covers(models.PosInfield, models.PosCatcher))
	assert.False(t, Covers(models.PosInfield, models.PosLeftField))

	assert.True(t, Covers(models.PosOutfield, models.PosCenterField))
	assert.False(t, Covers(models.PosOutfield, models.PosFirstBase))

	assert.True(t, Covers(models.PosInfieldOutfield, models.PosSecondBase))
	assert.True(t, Covers(models.PosInfieldOutfield, models.PosRightField))

	assert.True(t, Covers(models.PosFirstOrOutfield, models.PosFirstBase))
	assert.True(t, Covers(models.PosFirstOrOutfield, models.PosLeftField))
	assert.False(t, Covers(models.PosFirstOrOutfield, models.PosSecondBase))

	assert.True(t, Covers(models.PosSwingman, models.PosStarter))
	assert.True(t, Covers(models.PosSwingman, models.PosReliever))
	assert.False(t, Covers(models.PosSwingman, models.PosCloser))
}

func TestEligible(t *testing.T) {
	ofSecondary := models.PosOutfield
	e := models.PositionEligibility{Primary: models.PosFirstBase, Secondary: &ofSecondary}

	assert.True(t, Eligible(e, models.PosFirstBase))
	assert.True(t, Eligible(e, models.PosCenterField))
	assert.False(t, Eligible(e, models.PosShortstop))

	bare := models.PositionEligibility{Primary: models.PosCloser}
	assert.True(t, Eligible(bare, models.PosCloser))
	assert.False(t, Eligible(bare, models.PosReliever))
}

func TestPositionSets(t *testing.T) {
	assert.True(t, ValidPrimary(models.PosSwingman))
	assert.False(t, ValidPrimary(models.PosInfield))
	assert.True(t, ValidSecondary(models.PosInfield))
	assert.False(t, ValidSecondary(models.PosStarter))
	assert.False(t, ValidPrimary(NormalizePosition("qb")))
}
