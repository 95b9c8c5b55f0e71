// Package lineup implements lineup construction: player selection, batting
// order sequencing and heuristic order generation.
package lineup

import (
	"fmt"
	"time"

	"github.com/yourusername/lineup-lab/internal/models"
)

// DefaultSelectionLimit is the roster cap for a lineup in progress.
const DefaultSelectionLimit = models.RequiredLineupSize

// DefaultWarningTTL is how long a rejected-add warning stays visible.
const DefaultWarningTTL = 4 * time.Second

// ChangeHook is invoked after every successful add or remove. It is never
// invoked for a rejected add.
type ChangeHook func(player models.Player, selected bool)

// Selection tracks which roster players are chosen for a lineup in progress
// and enforces the player cap. All methods are single-goroutine by contract.
type Selection struct {
	limit      int
	warningTTL time.Duration
	players    map[int64]models.Player
	order      []int64
	warning    string
	warnUntil  time.Time
	onChange   ChangeHook
	now        func() time.Time
}

// SelectionOption customizes a Selection.
type SelectionOption func(*Selection)

// WithChangeHook registers a hook fired on every successful toggle.
func WithChangeHook(hook ChangeHook) SelectionOption {
	return func(s *Selection) { s.onChange = hook }
}

// WithWarningTTL overrides the warning auto-clear delay.
func WithWarningTTL(ttl time.Duration) SelectionOption {
	return func(s *Selection) { s.warningTTL = ttl }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) SelectionOption {
	return func(s *Selection) { s.now = now }
}

// NewSelection creates an empty selection with the given cap. A limit of 0
// falls back to DefaultSelectionLimit.
func NewSelection(limit int, opts ...SelectionOption) *Selection {
	if limit <= 0 {
		limit = DefaultSelectionLimit
	}
	s := &Selection{
		limit:      limit,
		warningTTL: DefaultWarningTTL,
		players:    make(map[int64]models.Player),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Toggle adds the player if absent and the cap allows it, removes it if
// present. Returns true if the player is selected after the call. A rejected
// add mutates nothing and sets a transient warning.
func (s *Selection) Toggle(player models.Player) bool {
	if _, ok := s.players[player.ID]; ok {
		delete(s.players, player.ID)
		for i, id := range s.order {
			if id == player.ID {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		s.notify(player, false)
		return false
	}

	if len(s.players) >= s.limit {
		s.warning = fmt.Sprintf("Lineup is limited to %d players", s.limit)
		s.warnUntil = s.now().Add(s.warningTTL)
		return false
	}

	s.players[player.ID] = player
	s.order = append(s.order, player.ID)
	s.notify(player, true)
	return true
}

// Contains reports whether the player id is currently selected.
func (s *Selection) Contains(id int64) bool {
	_, ok := s.players[id]
	return ok
}

// Count returns the number of selected players.
func (s *Selection) Count() int {
	return len(s.players)
}

// Players returns the selected players in the order they were added.
func (s *Selection) Players() []models.Player {
	out := make([]models.Player, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.players[id])
	}
	return out
}

// Warning returns the active cap warning, or "" once it has expired.
func (s *Selection) Warning() string {
	if s.warning == "" || s.now().After(s.warnUntil) {
		return ""
	}
	return s.warning
}

// Remove drops the player id if selected. Used when a saved lineup referenced
// by the selection is deleted.
func (s *Selection) Remove(id int64) bool {
	p, ok := s.players[id]
	if !ok {
		return false
	}
	return !s.Toggle(p)
}

// Clear empties the selection and any pending warning.
func (s *Selection) Clear() {
	s.players = make(map[int64]models.Player)
	s.order = nil
	s.warning = ""
	s.warnUntil = time.Time{}
}

func (s *Selection) notify(player models.Player, selected bool) {
	if s.onChange != nil {
		s.onChange(player, selected)
	}
}
