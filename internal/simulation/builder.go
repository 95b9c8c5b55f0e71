// Package simulation builds simulation batches and aggregates oracle results.
package simulation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/lineup-lab/internal/models"
)

// Game count bounds enforced on every batch submission.
const (
	DefaultGameCount = 20000
	MinGameCount     = 100
	MaxGameCount     = 100000
)

// Builder turns saved lineups into a simulation batch, optionally appending
// one deduplicated wOBA baseline config per unique player set.
type Builder struct {
	requiredSize int
	minGames     int
	maxGames     int
	logger       *logrus.Logger
}

// NewBuilder creates a builder with the standard 9-player rule and game
// count bounds.
func NewBuilder(logger *logrus.Logger) *Builder {
	return &Builder{
		requiredSize: models.RequiredLineupSize,
		minGames:     MinGameCount,
		maxGames:     MaxGameCount,
		logger:       logger,
	}
}

// ValidateLineup checks that a lineup resolves to exactly the required
// number of distinct player ids.
func (b *Builder) ValidateLineup(l *models.SavedLineup) error {
	if len(l.Players) != b.requiredSize {
		return fmt.Errorf("%w: %q has %d players", models.ErrInvalidLineupSize, l.Name, len(l.Players))
	}
	seen := make(map[int64]bool, len(l.Players))
	for _, e := range l.Players {
		if seen[e.PlayerID] {
			return fmt.Errorf("%w: %q repeats player %d", models.ErrInvalidLineupSize, l.Name, e.PlayerID)
		}
		seen[e.PlayerID] = true
	}
	return nil
}

// ValidateGameCount checks the requested game count against the bounds.
func (b *Builder) ValidateGameCount(numGames int) error {
	if numGames < b.minGames || numGames > b.maxGames {
		return fmt.Errorf("%w: %d not in [%d, %d]", models.ErrInvalidGameCount, numGames, b.minGames, b.maxGames)
	}
	return nil
}

// BuildBatch produces one non-baseline config per valid lineup, ordered by
// ascending batting order. Invalid lineups are rejected individually and
// skipped. When includeBaseline is set, one baseline config is appended per
// unique player-id set, keyed by the canonical sorted id key and computed
// over a snapshot of the user configs so baselines never spawn baselines.
// An empty resulting batch is an error.
func (b *Builder) BuildBatch(lineups []*models.SavedLineup, includeBaseline bool) ([]models.SimulationConfig, error) {
	var configs []models.SimulationConfig

	for _, l := range lineups {
		if err := b.ValidateLineup(l); err != nil {
			b.logger.WithFields(logrus.Fields{
				"lineup_id": l.ID,
				"name":      l.Name,
			}).WithError(err).Warn("Skipping lineup not eligible for simulation")
			continue
		}

		configs = append(configs, models.SimulationConfig{
			ID:        l.ID.String(),
			Name:      l.Name,
			PlayerIDs: l.OrderedPlayerIDs(),
		})
	}

	if includeBaseline {
		// Snapshot before appending so baselines of baselines are never generated.
		snapshot := len(configs)
		seen := make(map[string]bool, snapshot)

		for i := 0; i < snapshot; i++ {
			key := CanonicalKey(configs[i].PlayerIDs)
			if seen[key] {
				continue
			}
			seen[key] = true

			ids := make([]int64, len(configs[i].PlayerIDs))
			copy(ids, configs[i].PlayerIDs)

			// The baseline reuses the same ids; the oracle applies its own
			// wOBA ordering.
			configs = append(configs, models.SimulationConfig{
				ID:         "baseline-" + configs[i].ID,
				Name:       fmt.Sprintf("wOBA Baseline (%s)", configs[i].Name),
				PlayerIDs:  ids,
				IsBaseline: true,
			})
		}
	}

	if len(configs) == 0 {
		return nil, models.ErrNoValidLineups
	}

	return configs, nil
}

// CanonicalKey renders a player-id set as its ascending comma-joined form,
// independent of batting order.
func CanonicalKey(playerIDs []int64) string {
	sorted := make([]int64, len(playerIDs))
	copy(sorted, playerIDs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
