// Package repository provides Postgres-backed stores for lineups and roster
// snapshots.
package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/yourusername/lineup-lab/internal/models"
)

// LineupRepository is the lineup store surface: persists named lineups and
// deletes them by id. It accepts any non-empty player list; simulation
// eligibility is checked separately by the request builder.
type LineupRepository interface {
	Save(ctx context.Context, lineup *models.SavedLineup) error
	List(ctx context.Context) ([]*models.SavedLineup, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.SavedLineup, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PlayerRepository stores roster snapshots per team.
type PlayerRepository interface {
	UpsertPlayers(ctx context.Context, teamID string, players []models.Player) error
	GetByTeam(ctx context.Context, teamID string) ([]models.Player, error)
}
