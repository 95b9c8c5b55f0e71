package simulation

import (
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/lineup-lab/internal/models"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func savedLineup(name string, ids ...int64) *models.SavedLineup {
	l := &models.SavedLineup{ID: uuid.New(), Name: name, TeamID: "NYY"}
	for i, id := range ids {
		l.Players = append(l.Players, models.LineupEntry{PlayerID: id, BattingOrder: i + 1})
	}
	return l
}

func TestBuildBatchSingleLineupNoBaseline(t *testing.T) {
	b := NewBuilder(quietLogger())
	l := savedLineup("Opening Day", 1, 2, 3, 4, 5, 6, 7, 8, 9)

	configs, err := b.BuildBatch([]*models.SavedLineup{l}, false)
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.False(t, configs[0].IsBaseline)
	assert.Len(t, configs[0].PlayerIDs, 9)
	assert.Equal(t, "Opening Day", configs[0].Name)
}

func TestBuildBatchOrdersByBattingOrder(t *testing.T) {
	b := NewBuilder(quietLogger())
	l := savedLineup("Scrambled", 0)
	l.Players = []models.LineupEntry{
		{PlayerID: 30, BattingOrder: 3},
		{PlayerID: 10, BattingOrder: 1},
		{PlayerID: 90, BattingOrder: 9},
		{PlayerID: 20, BattingOrder: 2},
		{PlayerID: 50, BattingOrder: 5},
		{PlayerID: 40, BattingOrder: 4},
		{PlayerID: 70, BattingOrder: 7},
		{PlayerID: 60, BattingOrder: 6},
		{PlayerID: 80, BattingOrder: 8},
	}

	configs, err := b.BuildBatch([]*models.SavedLineup{l}, false)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 20, 30, 40, 50, 60, 70, 80, 90}, configs[0].PlayerIDs)
}

func TestBuildBatchSkipsInvalidLineups(t *testing.T) {
	b := NewBuilder(quietLogger())
	valid := savedLineup("Valid", 1, 2, 3, 4, 5, 6, 7, 8, 9)
	short := savedLineup("Short", 1, 2, 3)
	dupes := savedLineup("Dupes", 1, 2, 3, 4, 5, 6, 7, 8, 1)

	configs, err := b.BuildBatch([]*models.SavedLineup{short, valid, dupes}, false)
	require.NoError(t, err)
	require.Len(t, configs, 1)
	assert.Equal(t, "Valid", configs[0].Name)
}

func TestBuildBatchEmptyBatchFails(t *testing.T) {
	b := NewBuilder(quietLogger())
	short := savedLineup("Short", 1, 2, 3)

	_, err := b.BuildBatch([]*models.SavedLineup{short}, true)
	assert.ErrorIs(t, err, models.ErrNoValidLineups)

	_, err = b.BuildBatch(nil, false)
	assert.ErrorIs(t, err, models.ErrNoValidLineups)
}

func TestBuildBatchBaselineDedup(t *testing.T) {
	b := NewBuilder(quietLogger())
	// Same nine players, different batting orders.
	first := savedLineup("Order A", 1, 2, 3, 4, 5, 6, 7, 8, 9)
	second := savedLineup("Order B", 9, 8, 7, 6, 5, 4, 3, 2, 1)

	configs, err := b.BuildBatch([]*models.SavedLineup{first, second}, true)
	require.NoError(t, err)

	var baselines []models.SimulationConfig
	for _, c := range configs {
		if c.IsBaseline {
			baselines = append(baselines, c)
		}
	}
	require.Len(t, baselines, 1, "identical player sets must share one baseline")
	assert.Equal(t, "wOBA Baseline (Order A)", baselines[0].Name)
	assert.Equal(t, first.OrderedPlayerIDs(), baselines[0].PlayerIDs,
		"baseline carries the ids untouched; ordering is the oracle's job")
}

func TestBuildBatchDistinctSetsGetOwnBaselines(t *testing.T) {
	b := NewBuilder(quietLogger())
	first := savedLineup("A", 1, 2, 3, 4, 5, 6, 7, 8, 9)
	second := savedLineup("B", 11, 12, 13, 14, 15, 16, 17, 18, 19)

	configs, err := b.BuildBatch([]*models.SavedLineup{first, second}, true)
	require.NoError(t, err)
	require.Len(t, configs, 4)

	baselineCount := 0
	for _, c := range configs {
		if c.IsBaseline {
			baselineCount++
			assert.Contains(t, c.Name, "wOBA Baseline (")
		}
	}
	assert.Equal(t, 2, baselineCount)
}

func TestValidateGameCount(t *testing.T) {
	b := NewBuilder(quietLogger())

	assert.NoError(t, b.ValidateGameCount(100))
	assert.NoError(t, b.ValidateGameCount(20000))
	assert.NoError(t, b.ValidateGameCount(100000))
	assert.ErrorIs(t, b.ValidateGameCount(99), models.ErrInvalidGameCount)
	assert.ErrorIs(t, b.ValidateGameCount(100001), models.ErrInvalidGameCount)
}

func TestValidateLineupNamesLineup(t *testing.T) {
	b := NewBuilder(quietLogger())
	short := savedLineup("Road Trip", 1, 2, 3)

	err := b.ValidateLineup(short)
	require.ErrorIs(t, err, models.ErrInvalidLineupSize)
	assert.Contains(t, err.Error(), "Road Trip")
}

func TestCanonicalKey(t *testing.T) {
	assert.Equal(t, "1,2,10", CanonicalKey([]int64{10, 1, 2}))
	assert.Equal(t,
		CanonicalKey([]int64{1, 2, 3}),
		CanonicalKey([]int64{3, 2, 1}),
	)
	assert.NotEqual(t, CanonicalKey([]int64{1, 2}), CanonicalKey([]int64{1, 3}))
}
