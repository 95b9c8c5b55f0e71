package lineup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/lineup-lab/internal/models"
)

func nineNamed() []models.Player {
	players := make([]models.Player, 9)
	for i := range players {
		players[i] = models.Player{ID: int64(i + 1), Name: "Batter", Position: "IF"}
	}
	return players
}

func assertContiguousOrder(t *testing.T, players []models.Player) {
	t.Helper()
	for i, p := range players {
		require.Equal(t, i+1, p.BattingOrder, "batting order must match list position")
	}
}

func idsOf(players []models.Player) []int64 {
	ids := make([]int64, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	return ids
}

func TestNewSequencerNumbersPlayers(t *testing.T) {
	s := NewSequencer(nineNamed())
	assertContiguousOrder(t, s.Players())
}

func TestMoveForward(t *testing.T) {
	s := NewSequencer(nineNamed())

	require.True(t, s.Move(1, 4))

	got := idsOf(s.Players())
	assert.Equal(t, []int64{2, 3, 4, 1, 5, 6, 7, 8, 9}, got)
	assertContiguousOrder(t, s.Players())
}

func TestMoveBackward(t *testing.T) {
	s := NewSequencer(nineNamed())

	require.True(t, s.Move(7, 2))

	got := idsOf(s.Players())
	assert.Equal(t, []int64{1, 7, 2, 3, 4, 5, 6, 8, 9}, got)
	assertContiguousOrder(t, s.Players())
}

func TestMoveSameIDIsNoOp(t *testing.T) {
	s := NewSequencer(nineNamed())
	before := idsOf(s.Players())

	assert.False(t, s.Move(3, 3))
	assert.Equal(t, before, idsOf(s.Players()))
	assertContiguousOrder(t, s.Players())
}

func TestMoveUnknownTargetIsNoOp(t *testing.T) {
	s := NewSequencer(nineNamed())
	before := idsOf(s.Players())

	assert.False(t, s.Move(3, 99))
	assert.False(t, s.Move(99, 3))
	assert.Equal(t, before, idsOf(s.Players()))
}

func TestMovePreservesPermutation(t *testing.T) {
	s := NewSequencer(nineNamed())
	moves := [][2]int64{{1, 9}, {5, 1}, {9, 4}, {2, 2}, {3, 8}, {8, 3}}

	for _, m := range moves {
		s.Move(m[0], m[1])

		players := s.Players()
		require.Len(t, players, 9)
		seen := make(map[int64]bool)
		for _, p := range players {
			require.False(t, seen[p.ID], "player %d duplicated", p.ID)
			seen[p.ID] = true
		}
		assertContiguousOrder(t, players)
	}
}

func TestValidForSimulation(t *testing.T) {
	s := NewSequencer(nineNamed())
	assert.True(t, s.ValidForSimulation())

	short := NewSequencer(nineNamed()[:8])
	assert.False(t, short.ValidForSimulation())

	dupes := nineNamed()
	dupes[8].ID = dupes[0].ID
	assert.False(t, NewSequencer(dupes).ValidForSimulation())
}

func TestEntriesMatchOrder(t *testing.T) {
	s := NewSequencer(nineNamed())
	s.Move(9, 1)

	entries := s.Entries()
	require.Len(t, entries, 9)
	assert.Equal(t, int64(9), entries[0].PlayerID)
	assert.Equal(t, 1, entries[0].BattingOrder)
	assert.Equal(t, 9, entries[8].BattingOrder)
}

func TestValidateSaveName(t *testing.T) {
	assert.NoError(t, ValidateSaveName("Opening Day"))
	assert.ErrorIs(t, ValidateSaveName(""), models.ErrLineupNameRequired)
	assert.ErrorIs(t, ValidateSaveName("   "), models.ErrLineupNameRequired)
}
