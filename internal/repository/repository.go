package repository

import (
	"fmt"

	"github.com/yourusername/lineup-lab/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Lineup LineupRepository
	Player PlayerRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Lineup: NewPostgresLineupRepository(db),
		Player: NewPostgresPlayerRepository(db),
	}, nil
}
