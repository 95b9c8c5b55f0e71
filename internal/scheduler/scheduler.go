// Package scheduler manages periodic roster synchronization.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// RosterSyncer refreshes one team's roster snapshot.
type RosterSyncer interface {
	SyncTeam(ctx context.Context, teamID string) error
}

// Scheduler manages scheduled roster sync jobs
type Scheduler struct {
	cron            *cron.Cron
	syncer          RosterSyncer
	logger          *logrus.Logger
	mu              sync.RWMutex
	isRunning       bool
	jobIDs          []cron.EntryID
	gracefulTimeout time.Duration
	syncTimeout     time.Duration
}

// NewScheduler creates a new scheduler
func NewScheduler(syncer RosterSyncer, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:            cron.New(cron.WithLocation(time.UTC)),
		syncer:          syncer,
		logger:          logger,
		jobIDs:          make([]cron.EntryID, 0),
		gracefulTimeout: 30 * time.Second,
		syncTimeout:     10 * time.Minute,
	}
}

// ScheduleRosterSync schedules a periodic roster refresh for the given teams.
func (s *Scheduler) ScheduleRosterSync(cronExpression string, teamIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	jobFunc := func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.syncTimeout)
		defer cancel()

		for _, teamID := range teamIDs {
			if err := s.syncer.SyncTeam(ctx, teamID); err != nil {
				s.logger.WithField("team_id", teamID).WithError(err).Error("Roster sync failed")
				continue
			}
			s.logger.WithField("team_id", teamID).Info("Roster sync completed")
		}
	}

	id, err := s.cron.AddFunc(cronExpression, jobFunc)
	if err != nil {
		return fmt.Errorf("failed to schedule roster sync: %w", err)
	}

	s.jobIDs = append(s.jobIDs, id)
	s.logger.WithFields(logrus.Fields{
		"schedule": cronExpression,
		"teams":    len(teamIDs),
	}).Info("Roster sync scheduled")
	return nil
}

// Start begins executing scheduled jobs.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return
	}
	s.cron.Start()
	s.isRunning = true
}

// Stop halts the scheduler, waiting for running jobs up to the graceful
// timeout.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(s.gracefulTimeout):
		s.logger.Warn("Scheduler stop timed out with jobs still running")
	}
	s.isRunning = false
}
