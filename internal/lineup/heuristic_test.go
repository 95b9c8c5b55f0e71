package lineup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/lineup-lab/internal/models"
)

func statPlayer(id int64, avg, obp, ops float64) models.Player {
	return models.Player{ID: id, Name: "Batter", Position: "OF", AVG: avg, OBP: obp, OPS: ops}
}

func TestGenerateEmptyInput(t *testing.T) {
	assert.Empty(t, Generate(nil))
	assert.Empty(t, Generate([]models.Player{}))
}

func TestGenerateMembershipAndCap(t *testing.T) {
	var players []models.Player
	for i := int64(1); i <= 14; i++ {
		players = append(players, statPlayer(i, 0.250, 0.320, 0.700+float64(i)*0.01))
	}

	input := make(map[int64]bool)
	for _, p := range players {
		input[p.ID] = true
	}

	order := Generate(players)
	require.LessOrEqual(t, len(order), 9)
	for _, p := range order {
		assert.True(t, input[p.ID], "generated player %d must come from the input", p.ID)
	}
}

func TestGenerateLeadoffPrefersOBP(t *testing.T) {
	players := []models.Player{
		statPlayer(1, 0.280, 0.330, 0.950), // best OPS, weak OBP
		statPlayer(2, 0.260, 0.390, 0.800), // best OBP among rest
		statPlayer(3, 0.240, 0.300, 0.700),
	}

	order := Generate(players)
	require.NotEmpty(t, order)
	assert.Equal(t, int64(2), order[0].ID)
}

func TestGenerateLeadoffFallsBackToTopOPS(t *testing.T) {
	players := []models.Player{
		statPlayer(1, 0.280, 0.310, 0.950),
		statPlayer(2, 0.260, 0.320, 0.800),
	}

	order := Generate(players)
	require.NotEmpty(t, order)
	assert.Equal(t, int64(1), order[0].ID)
}

func TestGenerateSecondSlotRule(t *testing.T) {
	players := []models.Player{
		statPlayer(1, 0.280, 0.330, 0.950),
		statPlayer(2, 0.320, 0.380, 0.820), // contact hitter: AVG>.300, OBP>.350
		statPlayer(3, 0.240, 0.300, 0.700),
	}

	order := Generate(players)
	require.True(t, len(order) >= 2)
	assert.Equal(t, int64(2), order[1].ID)
}

func TestGenerateMayRepeatPlayers(t *testing.T) {
	// The slot rules do not exclude already-placed players: a dominant
	// hitter can take the leadoff slot and reappear in slots 3-5.
	players := []models.Player{
		statPlayer(1, 0.330, 0.420, 1.050),
		statPlayer(2, 0.250, 0.310, 0.720),
		statPlayer(3, 0.240, 0.300, 0.690),
	}

	order := Generate(players)
	counts := make(map[int64]int)
	for _, p := range order {
		counts[p.ID]++
	}
	assert.Greater(t, counts[1], 1)
}

func TestGenerateAssignsContiguousBattingOrder(t *testing.T) {
	var players []models.Player
	for i := int64(1); i <= 9; i++ {
		players = append(players, statPlayer(i, 0.250, 0.320, 0.700))
	}

	order := Generate(players)
	for i, p := range order {
		assert.Equal(t, i+1, p.BattingOrder)
	}
}

func TestGenerateMissingOPSTreatedAsZero(t *testing.T) {
	players := []models.Player{
		statPlayer(1, 0, 0, 0), // no stats
		statPlayer(2, 0.300, 0.360, 0.850),
	}

	order := Generate(players)
	require.NotEmpty(t, order)
	assert.Equal(t, int64(2), order[0].ID)
}

func TestGenerateDistinctNoDuplicates(t *testing.T) {
	var players []models.Player
	for i := int64(1); i <= 12; i++ {
		players = append(players, statPlayer(i, 0.330, 0.420, 0.700+float64(i)*0.02))
	}

	order := GenerateDistinct(players)
	require.Len(t, order, 9)
	seen := make(map[int64]bool)
	for _, p := range order {
		require.False(t, seen[p.ID], "player %d duplicated", p.ID)
		seen[p.ID] = true
	}
}

func TestGenerateDistinctKeepsSlotRules(t *testing.T) {
	players := []models.Player{
		statPlayer(1, 0.280, 0.330, 0.950),
		statPlayer(2, 0.260, 0.390, 0.800),
		statPlayer(3, 0.320, 0.380, 0.820),
		statPlayer(4, 0.240, 0.300, 0.700),
	}

	order := GenerateDistinct(players)
	require.Len(t, order, 4)
	// OPS order is 1, 3, 2, 4; player 3 is the first with OBP > .350 and no
	// other contact hitter qualifies for slot 2, so the rest fill by OPS.
	assert.Equal(t, []int64{3, 1, 2, 4}, idsOf(order))
}
