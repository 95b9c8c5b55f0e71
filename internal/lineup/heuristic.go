package lineup

import (
	"sort"

	"github.com/yourusername/lineup-lab/internal/models"
)

// Thresholds for the heuristic slot rules.
const (
	leadoffOBPThreshold = 0.35
	contactAVGThreshold = 0.30
)

// Generate produces a ranked batting order from player statistics. It is a
// pure function used as the fallback ranking when no generation service is
// available:
//
//  1. players are stable-sorted descending by OPS (missing OPS sorts as 0)
//  2. slot 1 is the first player with OBP > .350, else the top OPS entry
//  3. slot 2 is the first player with AVG > .300 and OBP > .350, else the
//     second OPS entry
//  4. slots 3-5 are the top three OPS entries
//  5. the rest of the OPS-sorted list fills the remaining slots
//  6. the order is truncated to 9 entries
//
// Slots 1-2 are not excluded from the later rules, so the returned order may
// contain the same player more than once. Callers that need a submittable
// lineup use GenerateDistinct.
func Generate(players []models.Player) []models.Player {
	if len(players) == 0 {
		return []models.Player{}
	}

	sorted := sortByOPS(players)

	var order []models.Player

	if leadoff, ok := firstMatch(sorted, func(p models.Player) bool {
		return p.OBP > leadoffOBPThreshold
	}); ok {
		order = append(order, leadoff)
	} else {
		order = append(order, sorted[0])
	}

	if second, ok := firstMatch(sorted, func(p models.Player) bool {
		return p.AVG > contactAVGThreshold && p.OBP > leadoffOBPThreshold
	}); ok {
		order = append(order, second)
	} else if len(sorted) > 1 {
		order = append(order, sorted[1])
	}

	for i := 0; i < 3 && i < len(sorted); i++ {
		order = append(order, sorted[i])
	}
	if len(sorted) > 3 {
		order = append(order, sorted[3:]...)
	}

	return renumbered(truncate(order, models.RequiredLineupSize))
}

// GenerateDistinct applies the same slot rules but skips players already
// placed, then fills the remaining slots from the OPS-sorted list, so every
// player appears at most once.
func GenerateDistinct(players []models.Player) []models.Player {
	if len(players) == 0 {
		return []models.Player{}
	}

	sorted := sortByOPS(players)
	used := make(map[int64]bool, len(sorted))

	var order []models.Player
	place := func(p models.Player) {
		order = append(order, p)
		used[p.ID] = true
	}

	if leadoff, ok := firstMatch(sorted, func(p models.Player) bool {
		return p.OBP > leadoffOBPThreshold
	}); ok {
		place(leadoff)
	} else {
		place(sorted[0])
	}

	if second, ok := firstMatch(sorted, func(p models.Player) bool {
		return !used[p.ID] && p.AVG > contactAVGThreshold && p.OBP > leadoffOBPThreshold
	}); ok {
		place(second)
	}

	for _, p := range sorted {
		if len(order) >= models.RequiredLineupSize {
			break
		}
		if !used[p.ID] {
			place(p)
		}
	}

	return renumbered(truncate(order, models.RequiredLineupSize))
}

func sortByOPS(players []models.Player) []models.Player {
	sorted := make([]models.Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OPS > sorted[j].OPS
	})
	return sorted
}

func firstMatch(players []models.Player, pred func(models.Player) bool) (models.Player, bool) {
	for _, p := range players {
		if pred(p) {
			return p, true
		}
	}
	return models.Player{}, false
}

func truncate(players []models.Player, n int) []models.Player {
	if len(players) > n {
		return players[:n]
	}
	return players
}

func renumbered(players []models.Player) []models.Player {
	for i := range players {
		players[i].BattingOrder = i + 1
	}
	return players
}
