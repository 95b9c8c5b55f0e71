package lineup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/lineup-lab/internal/models"
)

func testPlayer(id int64) models.Player {
	return models.Player{ID: id, Name: "Player", Position: "OF"}
}

func TestToggleAddsAndRemoves(t *testing.T) {
	s := NewSelection(9)

	assert.True(t, s.Toggle(testPlayer(1)))
	assert.True(t, s.Contains(1))
	assert.Equal(t, 1, s.Count())

	assert.False(t, s.Toggle(testPlayer(1)))
	assert.False(t, s.Contains(1))
	assert.Equal(t, 0, s.Count())
}

func TestToggleEnforcesCap(t *testing.T) {
	s := NewSelection(9)
	for i := int64(1); i <= 9; i++ {
		require.True(t, s.Toggle(testPlayer(i)))
	}

	assert.False(t, s.Toggle(testPlayer(10)))
	assert.Equal(t, 9, s.Count())
	assert.False(t, s.Contains(10))
	assert.NotEmpty(t, s.Warning())

	// A removal after the rejected add still works
	assert.False(t, s.Toggle(testPlayer(5)))
	assert.Equal(t, 8, s.Count())
}

func TestCapNeverExceededUnderArbitraryToggles(t *testing.T) {
	s := NewSelection(9)
	ids := []int64{1, 2, 3, 1, 4, 5, 6, 7, 8, 9, 10, 2, 11, 12, 3, 13, 14, 15, 16}
	for _, id := range ids {
		s.Toggle(testPlayer(id))
		require.LessOrEqual(t, s.Count(), 9)
	}
}

func TestWarningExpires(t *testing.T) {
	now := time.Now()
	s := NewSelection(9, WithClock(func() time.Time { return now }))

	for i := int64(1); i <= 9; i++ {
		s.Toggle(testPlayer(i))
	}
	s.Toggle(testPlayer(10))
	require.NotEmpty(t, s.Warning())

	now = now.Add(DefaultWarningTTL + time.Second)
	assert.Empty(t, s.Warning())
}

func TestChangeHookFiresOnlyOnMutation(t *testing.T) {
	var events []bool
	s := NewSelection(2, WithChangeHook(func(_ models.Player, selected bool) {
		events = append(events, selected)
	}))

	s.Toggle(testPlayer(1))
	s.Toggle(testPlayer(2))
	s.Toggle(testPlayer(3)) // rejected, no event
	s.Toggle(testPlayer(1)) // removal

	assert.Equal(t, []bool{true, true, false}, events)
}

func TestClearResetsSelectionAndWarning(t *testing.T) {
	s := NewSelection(1)
	s.Toggle(testPlayer(1))
	s.Toggle(testPlayer(2))
	require.NotEmpty(t, s.Warning())

	s.Clear()
	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.Warning())
}

func TestPlayersPreservesInsertionOrder(t *testing.T) {
	s := NewSelection(9)
	s.Toggle(testPlayer(3))
	s.Toggle(testPlayer(1))
	s.Toggle(testPlayer(2))
	s.Toggle(testPlayer(1)) // remove

	players := s.Players()
	require.Len(t, players, 2)
	assert.Equal(t, int64(3), players[0].ID)
	assert.Equal(t, int64(2), players[1].ID)
}

func TestRemoveDropsSelectedPlayer(t *testing.T) {
	s := NewSelection(9)
	s.Toggle(testPlayer(1))

	assert.True(t, s.Remove(1))
	assert.False(t, s.Contains(1))
	assert.False(t, s.Remove(42))
}
