package simulation

import (
	"sort"
	"strconv"

	"github.com/yourusername/lineup-lab/internal/models"
)

// Compare merges a user lineup's simulation result with its baseline into a
// ComparisonResult. The winner is decided on average score alone; median and
// standard deviation are reported verbatim from the oracle, never recomputed
// here. The tie branch uses exact float equality.
func Compare(user, baseline models.SimulationResult) models.ComparisonResult {
	difference := user.AvgScore - baseline.AvgScore

	winner := models.WinnerTie
	switch {
	case difference > 0:
		winner = models.WinnerUser
	case difference < 0:
		winner = models.WinnerBaseline
	}

	return models.ComparisonResult{
		UserLineup:     user,
		BaselineLineup: baseline,
		Winner:         winner,
		Difference:     difference,
		Histogram:      MergeHistograms(user.ScoreDistribution, baseline.ScoreDistribution),
	}
}

// MergeHistograms unions the score keys of both distributions, defaulting
// missing counts to 0, and returns rows sorted ascending by numeric score.
// Keys that do not parse as non-negative integers are dropped.
func MergeHistograms(user, baseline map[string]int) []models.HistogramRow {
	scores := make(map[int]bool, len(user)+len(baseline))
	for key := range user {
		if score, ok := parseScore(key); ok {
			scores[score] = true
		}
	}
	for key := range baseline {
		if score, ok := parseScore(key); ok {
			scores[score] = true
		}
	}

	rows := make([]models.HistogramRow, 0, len(scores))
	for score := range scores {
		key := strconv.Itoa(score)
		rows = append(rows, models.HistogramRow{
			Score:    score,
			User:     user[key],
			Baseline: baseline[key],
		})
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Score < rows[j].Score })
	return rows
}

func parseScore(key string) (int, bool) {
	score, err := strconv.Atoi(key)
	if err != nil || score < 0 {
		return 0, false
	}
	return score, true
}
