// Package service orchestrates lineup sessions, simulations and roster
// synchronization over the boundary clients.
package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/lineup-lab/internal/metrics"
	"github.com/yourusername/lineup-lab/internal/models"
	"github.com/yourusername/lineup-lab/internal/repository"
)

// RosterFetcher fetches a team roster from the roster source.
type RosterFetcher interface {
	FetchRoster(ctx context.Context, teamID string) ([]models.Player, error)
}

// RosterSyncService refreshes roster snapshots into the player repository.
type RosterSyncService struct {
	fetcher RosterFetcher
	repo    repository.PlayerRepository
	logger  *logrus.Logger
}

// NewRosterSyncService creates a roster sync service.
func NewRosterSyncService(fetcher RosterFetcher, repo repository.PlayerRepository, logger *logrus.Logger) *RosterSyncService {
	return &RosterSyncService{
		fetcher: fetcher,
		repo:    repo,
		logger:  logger,
	}
}

// SyncTeam fetches the current roster for a team and replaces its snapshot.
func (s *RosterSyncService) SyncTeam(ctx context.Context, teamID string) error {
	players, err := s.fetcher.FetchRoster(ctx, teamID)
	if err != nil {
		metrics.RosterSyncsTotal.WithLabelValues(teamID, "fetch_error").Inc()
		return fmt.Errorf("failed to fetch roster for %s: %w", teamID, err)
	}

	if len(players) == 0 {
		metrics.RosterSyncsTotal.WithLabelValues(teamID, "empty").Inc()
		s.logger.WithField("team_id", teamID).Warn("Roster source returned no players, keeping previous snapshot")
		return nil
	}

	if err := s.repo.UpsertPlayers(ctx, teamID, players); err != nil {
		metrics.RosterSyncsTotal.WithLabelValues(teamID, "store_error").Inc()
		return fmt.Errorf("failed to store roster for %s: %w", teamID, err)
	}

	metrics.RosterSyncsTotal.WithLabelValues(teamID, "success").Inc()
	metrics.RosterPlayersSynced.WithLabelValues(teamID).Set(float64(len(players)))
	return nil
}
