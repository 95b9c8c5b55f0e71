package lineup

import (
	"strings"

	"github.com/yourusername/lineup-lab/internal/models"
)

// Sequencer holds the ordered batting list for manual arrangement. Batting
// order values are always 1-based, contiguous and consistent with list
// position; they are reassigned after every move.
type Sequencer struct {
	players []models.Player
}

// NewSequencer creates a sequencer over the given players, numbering them
// 1..N in the order supplied.
func NewSequencer(players []models.Player) *Sequencer {
	s := &Sequencer{players: make([]models.Player, len(players))}
	copy(s.players, players)
	s.renumber()
	return s
}

// Move relocates the player activeID to the position currently held by
// overID using list-move semantics (remove then reinsert, not swap). It is a
// no-op when the ids are equal or either id is not present.
func (s *Sequencer) Move(activeID, overID int64) bool {
	if activeID == overID {
		return false
	}

	from := s.indexOf(activeID)
	to := s.indexOf(overID)
	if from < 0 || to < 0 {
		return false
	}

	moved := s.players[from]
	s.players = append(s.players[:from], s.players[from+1:]...)

	rest := append([]models.Player{}, s.players[to:]...)
	s.players = append(s.players[:to], moved)
	s.players = append(s.players, rest...)

	s.renumber()
	return true
}

// Players returns a copy of the current order.
func (s *Sequencer) Players() []models.Player {
	out := make([]models.Player, len(s.players))
	copy(out, s.players)
	return out
}

// Len returns the number of sequenced players.
func (s *Sequencer) Len() int {
	return len(s.players)
}

// ValidForSimulation reports whether the sequence holds exactly the required
// number of distinct players. Saving does not require this; simulation does.
func (s *Sequencer) ValidForSimulation() bool {
	if len(s.players) != models.RequiredLineupSize {
		return false
	}
	seen := make(map[int64]bool, len(s.players))
	for _, p := range s.players {
		if seen[p.ID] {
			return false
		}
		seen[p.ID] = true
	}
	return true
}

// Entries renders the sequence as lineup store entries.
func (s *Sequencer) Entries() []models.LineupEntry {
	entries := make([]models.LineupEntry, len(s.players))
	for i, p := range s.players {
		entries[i] = models.LineupEntry{PlayerID: p.ID, BattingOrder: p.BattingOrder}
	}
	return entries
}

// ValidateSaveName checks the trimmed lineup name required before a save.
func ValidateSaveName(name string) error {
	if strings.TrimSpace(name) == "" {
		return models.ErrLineupNameRequired
	}
	return nil
}

func (s *Sequencer) indexOf(id int64) int {
	for i, p := range s.players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Sequencer) renumber() {
	for i := range s.players {
		s.players[i].BattingOrder = i + 1
	}
}
