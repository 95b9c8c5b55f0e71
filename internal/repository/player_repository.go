package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/lineup-lab/internal/database"
	"github.com/yourusername/lineup-lab/internal/models"
)

// PostgresPlayerRepository implements PlayerRepository for PostgreSQL
type PostgresPlayerRepository struct {
	db *database.DB
}

// NewPostgresPlayerRepository creates a new player repository
func NewPostgresPlayerRepository(db *database.DB) PlayerRepository {
	return &PostgresPlayerRepository{db: db}
}

// UpsertPlayers replaces the roster snapshot for a team.
func (r *PostgresPlayerRepository) UpsertPlayers(ctx context.Context, teamID string, players []models.Player) error {
	tx, err := r.db.GetPool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range players {
		_, err := tx.Exec(ctx, `
			INSERT INTO players (id, name, team, position, avg, obp, ops)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				team = EXCLUDED.team,
				position = EXCLUDED.position,
				avg = EXCLUDED.avg,
				obp = EXCLUDED.obp,
				ops = EXCLUDED.ops
		`, p.ID, p.Name, teamID, p.Position, p.AVG, p.OBP, p.OPS)
		if err != nil {
			return fmt.Errorf("failed to upsert player %d: %w", p.ID, err)
		}
	}

	return tx.Commit(ctx)
}

// GetByTeam retrieves the roster snapshot for a team.
func (r *PostgresPlayerRepository) GetByTeam(ctx context.Context, teamID string) ([]models.Player, error) {
	rows, err := r.db.GetPool().Query(ctx, `
		SELECT id, name, team, position, avg, obp, ops
		FROM players
		WHERE team = $1
		ORDER BY ops DESC
	`, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster for team %s: %w", teamID, err)
	}
	defer rows.Close()

	var players []models.Player
	for rows.Next() {
		var p models.Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Team, &p.Position, &p.AVG, &p.OBP, &p.OPS); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}

	return players, rows.Err()
}
