package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// RequiredLineupSize is the number of players a lineup must have before it
// is eligible for simulation.
const RequiredLineupSize = 9

// LineupEntry ties a player to a batting slot inside a saved lineup.
type LineupEntry struct {
	PlayerID     int64 `db:"player_id" json:"player_id" validate:"required,gt=0"`
	BattingOrder int   `db:"batting_order" json:"batting_order" validate:"required,min=1"`
}

// SavedLineup represents a named lineup persisted in the lineup store.
type SavedLineup struct {
	ID        uuid.UUID     `db:"id" json:"id"`
	Name      string        `db:"name" json:"name" validate:"required,min=1,max=255"`
	TeamID    string        `db:"team_id" json:"team_id"`
	CreatedAt time.Time     `db:"created_at" json:"created_at"`
	Players   []LineupEntry `db:"-" json:"players"`
}

// OrderedPlayerIDs returns the lineup's player ids sorted by ascending
// batting order. The receiver is not mutated.
func (l *SavedLineup) OrderedPlayerIDs() []int64 {
	entries := make([]LineupEntry, len(l.Players))
	copy(entries, l.Players)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].BattingOrder < entries[j].BattingOrder
	})

	ids := make([]int64, len(entries))
	for i, e := range entries {
		ids[i] = e.PlayerID
	}
	return ids
}

// IsSimulatable reports whether the lineup resolves to exactly
// RequiredLineupSize distinct player ids.
func (l *SavedLineup) IsSimulatable() bool {
	if len(l.Players) != RequiredLineupSize {
		return false
	}
	seen := make(map[int64]bool, len(l.Players))
	for _, e := range l.Players {
		if seen[e.PlayerID] {
			return false
		}
		seen[e.PlayerID] = true
	}
	return true
}
