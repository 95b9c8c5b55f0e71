package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/lineup-lab/internal/lineup"
	"github.com/yourusername/lineup-lab/internal/logger"
	"github.com/yourusername/lineup-lab/internal/metrics"
	"github.com/yourusername/lineup-lab/internal/models"
	"github.com/yourusername/lineup-lab/internal/repository"
)

// LineupSession owns one lineup construction workflow: a roster snapshot, the
// current player selection and the batting order being arranged. It is bound
// to a single team and a single caller; it is not safe for concurrent use.
type LineupSession struct {
	teamID    string
	roster    map[int64]models.Player
	selection *lineup.Selection
	sequencer *lineup.Sequencer
	chosen    []uuid.UUID
	repo      repository.LineupRepository
	logger    *logrus.Logger
	audit     *logger.AuditLogger
	onDelete  func(lineupID uuid.UUID)
	onDirty   func()
}

// SessionOption customizes a LineupSession.
type SessionOption func(*LineupSession)

// WithDeleteHook registers a hook fired after a saved lineup is deleted, so
// callers can drop results or UI state tied to it.
func WithDeleteHook(hook func(lineupID uuid.UUID)) SessionOption {
	return func(s *LineupSession) { s.onDelete = hook }
}

// WithDirtyHook registers a hook fired after every session mutation.
func WithDirtyHook(hook func()) SessionOption {
	return func(s *LineupSession) { s.onDirty = hook }
}

// NewLineupSession creates a session for the given team over an empty
// selection and sequence.
func NewLineupSession(teamID string, repo repository.LineupRepository, log *logrus.Logger, audit *logger.AuditLogger, opts ...SessionOption) *LineupSession {
	s := &LineupSession{
		teamID:    teamID,
		roster:    make(map[int64]models.Player),
		sequencer: lineup.NewSequencer(nil),
		repo:      repo,
		logger:    log,
		audit:     audit,
	}
	s.selection = lineup.NewSelection(models.RequiredLineupSize,
		lineup.WithChangeHook(s.syncSequence))
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadRoster replaces the session's roster snapshot. Selected players that no
// longer appear in the roster are dropped from the selection.
func (s *LineupSession) LoadRoster(players []models.Player) {
	s.roster = make(map[int64]models.Player, len(players))
	for _, p := range players {
		s.roster[p.ID] = p
	}
	for _, p := range s.selection.Players() {
		if _, ok := s.roster[p.ID]; !ok {
			s.selection.Remove(p.ID)
		}
	}
}

// Roster returns the current roster snapshot.
func (s *LineupSession) Roster() []models.Player {
	out := make([]models.Player, 0, len(s.roster))
	for _, p := range s.roster {
		out = append(out, p)
	}
	return out
}

// TogglePlayer flips the selection state of a roster player. Returns whether
// the player is selected after the call. Adding beyond the cap is rejected
// and counted; the transient warning is readable via Warning.
func (s *LineupSession) TogglePlayer(playerID int64) (bool, error) {
	p, ok := s.roster[playerID]
	if !ok {
		return false, fmt.Errorf("%w: %d", models.ErrPlayerNotInRoster, playerID)
	}

	wasSelected := s.selection.Contains(playerID)
	selected := s.selection.Toggle(p)
	if !wasSelected && !selected {
		metrics.SelectionLimitRejectionsTotal.Inc()
		return false, nil
	}
	s.markDirty()
	return selected, nil
}

// Warning returns the active selection cap warning, or "" once expired.
func (s *LineupSession) Warning() string {
	return s.selection.Warning()
}

// SelectedCount returns the number of selected players.
func (s *LineupSession) SelectedCount() int {
	return s.selection.Count()
}

// BattingOrder returns the current sequence with 1-based order values.
func (s *LineupSession) BattingOrder() []models.Player {
	return s.sequencer.Players()
}

// MoveBatter relocates one player to another's position using list-move
// semantics. Unknown or equal ids are a no-op.
func (s *LineupSession) MoveBatter(activeID, overID int64) bool {
	moved := s.sequencer.Move(activeID, overID)
	if moved {
		s.markDirty()
	}
	return moved
}

// ResetOrder discards any manual arrangement and re-sequences the selected
// players in the order they were picked.
func (s *LineupSession) ResetOrder() []models.Player {
	s.sequencer = lineup.NewSequencer(s.selection.Players())
	s.markDirty()
	return s.sequencer.Players()
}

// GenerateOrder replaces the sequence with the statistical heuristic order
// over the selected players. The raw heuristic may repeat a player; the
// sequence then stays ineligible for simulation until corrected.
func (s *LineupSession) GenerateOrder() []models.Player {
	generated := lineup.Generate(s.selection.Players())
	s.sequencer = lineup.NewSequencer(generated)
	s.markDirty()
	return s.sequencer.Players()
}

// GenerateDistinctOrder replaces the sequence with the duplicate-free variant
// of the heuristic order.
func (s *LineupSession) GenerateDistinctOrder() []models.Player {
	generated := lineup.GenerateDistinct(s.selection.Players())
	s.sequencer = lineup.NewSequencer(generated)
	s.markDirty()
	return s.sequencer.Players()
}

// Save persists the current sequence under the given name. The name must be
// non-empty after trimming and the sequence must hold at least one player;
// the 9-player rule is enforced at simulation time, not here.
func (s *LineupSession) Save(ctx context.Context, name string) (*models.SavedLineup, error) {
	if err := lineup.ValidateSaveName(name); err != nil {
		return nil, err
	}
	if s.sequencer.Len() == 0 {
		return nil, fmt.Errorf("%w: nothing to save", models.ErrNoValidLineups)
	}

	saved := &models.SavedLineup{
		Name:    name,
		TeamID:  s.teamID,
		Players: s.sequencer.Entries(),
	}
	if err := s.repo.Save(ctx, saved); err != nil {
		return nil, fmt.Errorf("failed to save lineup %q: %w", name, err)
	}

	metrics.LineupsSavedTotal.Inc()
	s.audit.LogLineupSaved(saved.ID.String(), saved.Name, saved.TeamID, len(saved.Players), time.Now().UTC())
	return saved, nil
}

// SavedLineups lists all persisted lineups, newest first.
func (s *LineupSession) SavedLineups(ctx context.Context) ([]*models.SavedLineup, error) {
	return s.repo.List(ctx)
}

// ChooseForSimulation flips whether a saved lineup is part of the next
// simulation batch. Returns whether it is chosen after the call.
func (s *LineupSession) ChooseForSimulation(id uuid.UUID) bool {
	for i, chosen := range s.chosen {
		if chosen == id {
			s.chosen = append(s.chosen[:i], s.chosen[i+1:]...)
			s.markDirty()
			return false
		}
	}
	s.chosen = append(s.chosen, id)
	s.markDirty()
	return true
}

// ChosenLineups resolves the lineups chosen for simulation, in the order they
// were picked. Lineups deleted since being chosen are silently skipped.
func (s *LineupSession) ChosenLineups(ctx context.Context) ([]*models.SavedLineup, error) {
	lineups := make([]*models.SavedLineup, 0, len(s.chosen))
	for _, id := range s.chosen {
		l, err := s.repo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, models.ErrNotFound) {
				continue
			}
			return nil, err
		}
		lineups = append(lineups, l)
	}
	return lineups, nil
}

// Delete removes a saved lineup, drops it from the simulation choices and
// fires the delete hook so dependent state (retained comparisons, UI rows)
// can be cleared.
func (s *LineupSession) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete lineup %s: %w", id, err)
	}

	for i, chosen := range s.chosen {
		if chosen == id {
			s.chosen = append(s.chosen[:i], s.chosen[i+1:]...)
			break
		}
	}

	metrics.LineupsDeletedTotal.Inc()
	s.audit.LogLineupDeleted(id.String())
	if s.onDelete != nil {
		s.onDelete(id)
	}
	s.markDirty()
	return nil
}

// Clear resets the selection, sequence and simulation choices without
// touching saved lineups.
func (s *LineupSession) Clear() {
	s.selection.Clear()
	s.sequencer = lineup.NewSequencer(nil)
	s.chosen = nil
	s.markDirty()
}

func (s *LineupSession) markDirty() {
	if s.onDirty != nil {
		s.onDirty()
	}
}

// syncSequence keeps the sequencer membership consistent with the selection,
// preserving any manual arrangement of the players that remain.
func (s *LineupSession) syncSequence(player models.Player, selected bool) {
	current := s.sequencer.Players()
	if selected {
		s.sequencer = lineup.NewSequencer(append(current, player))
		return
	}

	kept := current[:0]
	for _, p := range current {
		if p.ID != player.ID {
			kept = append(kept, p)
		}
	}
	s.sequencer = lineup.NewSequencer(kept)
}
