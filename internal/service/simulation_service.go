package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/lineup-lab/internal/logger"
	"github.com/yourusername/lineup-lab/internal/metrics"
	"github.com/yourusername/lineup-lab/internal/models"
	"github.com/yourusername/lineup-lab/internal/oracle"
	"github.com/yourusername/lineup-lab/internal/simulation"
)

// RunOutcome is the full product of one simulation run: every oracle result
// plus one comparison per user lineup that has a baseline counterpart.
type RunOutcome struct {
	Results     []models.SimulationResult
	Comparisons []models.ComparisonResult
	NumGames    int
	Duration    time.Duration
}

// SimulationService submits lineup batches to the oracle and aggregates the
// results. At most one batch is in flight at a time; a second submission
// while one is running fails fast with ErrSimulationInFlight.
type SimulationService struct {
	builder *simulation.Builder
	runner  oracle.BatchRunner
	logger  *logrus.Logger
	audit   *logger.AuditLogger

	mu          sync.Mutex
	simulating  bool
	lastOutcome *RunOutcome
}

// NewSimulationService creates a simulation service over the given oracle
// runner.
func NewSimulationService(runner oracle.BatchRunner, log *logrus.Logger, audit *logger.AuditLogger) *SimulationService {
	return &SimulationService{
		builder: simulation.NewBuilder(log),
		runner:  runner,
		logger:  log,
		audit:   audit,
	}
}

// IsRunning reports whether a batch is currently in flight.
func (s *SimulationService) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.simulating
}

// LastOutcome returns the most recent successful run, or nil. A failed run
// never replaces it.
func (s *SimulationService) LastOutcome() *RunOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastOutcome
}

// ClearResults drops the retained outcome, e.g. after a lineup it references
// is deleted.
func (s *SimulationService) ClearResults() {
	s.mu.Lock()
	s.lastOutcome = nil
	s.mu.Unlock()
}

// Run validates, builds and submits one simulation batch. A numGames of 0
// uses the default game count. When includeBaseline is set, each user lineup
// is compared against its wOBA baseline in the returned outcome.
func (s *SimulationService) Run(ctx context.Context, lineups []*models.SavedLineup, numGames int, includeBaseline bool) (*RunOutcome, error) {
	if numGames == 0 {
		numGames = simulation.DefaultGameCount
	}
	if err := s.builder.ValidateGameCount(numGames); err != nil {
		return nil, err
	}

	if err := s.acquire(); err != nil {
		return nil, err
	}
	defer s.release()

	configs, err := s.builder.BuildBatch(lineups, includeBaseline)
	if err != nil {
		return nil, err
	}

	userCount, baselineCount := splitCounts(configs)
	s.logger.WithFields(logrus.Fields{
		"lineups":   userCount,
		"baselines": baselineCount,
		"num_games": numGames,
	}).Info("Submitting simulation batch")

	start := time.Now()
	results, err := s.runner.RunBatch(ctx, configs, numGames)
	if err != nil {
		metrics.SimulationErrorsTotal.Inc()
		s.audit.LogSimulationFailure(len(configs), err.Error())
		return nil, fmt.Errorf("simulation batch failed: %w", err)
	}
	duration := time.Since(start)

	metrics.SimulationsTotal.Inc()
	metrics.GamesSimulatedTotal.Add(float64(numGames * len(configs)))
	s.audit.LogSimulationRun(userCount, baselineCount, numGames, duration)

	outcome := &RunOutcome{
		Results:  results,
		NumGames: numGames,
		Duration: duration,
	}
	if includeBaseline {
		outcome.Comparisons = pairComparisons(configs, results)
	}

	s.mu.Lock()
	s.lastOutcome = outcome
	s.mu.Unlock()
	return outcome, nil
}

func (s *SimulationService) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.simulating {
		return models.ErrSimulationInFlight
	}
	s.simulating = true
	return nil
}

func (s *SimulationService) release() {
	s.mu.Lock()
	s.simulating = false
	s.mu.Unlock()
}

func splitCounts(configs []models.SimulationConfig) (users, baselines int) {
	for _, c := range configs {
		if c.IsBaseline {
			baselines++
		} else {
			users++
		}
	}
	return users, baselines
}

// pairComparisons matches each user config's result with its baseline result.
// Baselines are deduplicated per player set, so a user config whose direct
// "baseline-<id>" counterpart was skipped falls back to the baseline sharing
// its canonical player-id key.
func pairComparisons(configs []models.SimulationConfig, results []models.SimulationResult) []models.ComparisonResult {
	byID := make(map[string]models.SimulationResult, len(results))
	for _, r := range results {
		byID[r.ConfigID] = r
	}

	baselineByKey := make(map[string]models.SimulationResult)
	for _, c := range configs {
		if !c.IsBaseline {
			continue
		}
		if r, ok := byID[c.ID]; ok {
			baselineByKey[simulation.CanonicalKey(c.PlayerIDs)] = r
		}
	}

	var comparisons []models.ComparisonResult
	for _, c := range configs {
		if c.IsBaseline {
			continue
		}
		user, ok := byID[c.ID]
		if !ok {
			continue
		}

		baseline, ok := byID["baseline-"+c.ID]
		if !ok {
			baseline, ok = baselineByKey[simulation.CanonicalKey(c.PlayerIDs)]
		}
		if !ok {
			continue
		}
		comparisons = append(comparisons, simulation.Compare(user, baseline))
	}
	return comparisons
}
