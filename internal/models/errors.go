package models

import "errors"

// Custom errors
var (
	ErrLineupNameRequired = errors.New("lineup name is required")
	ErrInvalidLineupSize  = errors.New("lineup must contain exactly 9 distinct players")
	ErrNoValidLineups     = errors.New("no valid lineups selected")
	ErrInvalidGameCount   = errors.New("game count out of range")
	ErrSimulationInFlight = errors.New("a simulation is already running")
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateKey       = errors.New("duplicate key violation")
	ErrPlayerNotInRoster  = errors.New("player not found in roster")
)
