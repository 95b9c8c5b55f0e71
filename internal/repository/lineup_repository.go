package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/lineup-lab/internal/database"
	"github.com/yourusername/lineup-lab/internal/models"
)

const errScanLineup = "failed to scan lineup: %w"

// PostgresLineupRepository implements LineupRepository for PostgreSQL
type PostgresLineupRepository struct {
	db *database.DB
}

// NewPostgresLineupRepository creates a new lineup repository
func NewPostgresLineupRepository(db *database.DB) LineupRepository {
	return &PostgresLineupRepository{db: db}
}

// Save inserts a lineup and its player entries in one transaction.
func (r *PostgresLineupRepository) Save(ctx context.Context, lineup *models.SavedLineup) error {
	if lineup.Name == "" {
		return models.ErrLineupNameRequired
	}
	if lineup.ID == uuid.Nil {
		lineup.ID = uuid.New()
	}
	if lineup.CreatedAt.IsZero() {
		lineup.CreatedAt = time.Now().UTC()
	}

	tx, err := r.db.GetPool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO lineups (id, name, team_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, lineup.ID, lineup.Name, lineup.TeamID, lineup.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create lineup: %w", err)
	}

	for _, entry := range lineup.Players {
		_, err = tx.Exec(ctx, `
			INSERT INTO lineup_players (lineup_id, player_id, batting_order)
			VALUES ($1, $2, $3)
		`, lineup.ID, entry.PlayerID, entry.BattingOrder)
		if err != nil {
			return fmt.Errorf("failed to create lineup entry: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// List retrieves all saved lineups with their entries, newest first.
func (r *PostgresLineupRepository) List(ctx context.Context) ([]*models.SavedLineup, error) {
	query := `
		SELECT id, name, team_id, created_at
		FROM lineups
		ORDER BY created_at DESC
	`

	rows, err := r.db.GetPool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query lineups: %w", err)
	}
	defer rows.Close()

	var lineups []*models.SavedLineup
	for rows.Next() {
		lineup := &models.SavedLineup{}
		if err := rows.Scan(&lineup.ID, &lineup.Name, &lineup.TeamID, &lineup.CreatedAt); err != nil {
			return nil, fmt.Errorf(errScanLineup, err)
		}
		lineups = append(lineups, lineup)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, lineup := range lineups {
		if err := r.loadEntries(ctx, lineup); err != nil {
			return nil, err
		}
	}

	return lineups, nil
}

// GetByID retrieves a lineup by ID
func (r *PostgresLineupRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SavedLineup, error) {
	query := `
		SELECT id, name, team_id, created_at
		FROM lineups WHERE id = $1
	`

	lineup := &models.SavedLineup{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&lineup.ID, &lineup.Name, &lineup.TeamID, &lineup.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lineup: %w", err)
	}

	if err := r.loadEntries(ctx, lineup); err != nil {
		return nil, err
	}

	return lineup, nil
}

// Delete removes a lineup and cascades its player entries.
func (r *PostgresLineupRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.GetPool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM lineup_players WHERE lineup_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete lineup entries: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM lineups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lineup: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *PostgresLineupRepository) loadEntries(ctx context.Context, lineup *models.SavedLineup) error {
	rows, err := r.db.GetPool().Query(ctx, `
		SELECT player_id, batting_order
		FROM lineup_players
		WHERE lineup_id = $1
		ORDER BY batting_order ASC
	`, lineup.ID)
	if err != nil {
		return fmt.Errorf("failed to query lineup entries: %w", err)
	}
	defer rows.Close()

	lineup.Players = nil
	for rows.Next() {
		var entry models.LineupEntry
		if err := rows.Scan(&entry.PlayerID, &entry.BattingOrder); err != nil {
			return fmt.Errorf(errScanLineup, err)
		}
		lineup.Players = append(lineup.Players, entry)
	}
	return rows.Err()
}
