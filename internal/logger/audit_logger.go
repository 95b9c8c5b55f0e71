// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides a dedicated audit trail for lineup and simulation
// events.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogLineupSaved logs a lineup save event.
func (al *AuditLogger) LogLineupSaved(lineupID, name, teamID string, playerCount int, timestamp time.Time) {
	al.WithFields(logrus.Fields{
		"lineup_id":    lineupID,
		"name":         name,
		"team_id":      teamID,
		"player_count": playerCount,
		"timestamp":    timestamp.Unix(),
	}).Info("Lineup saved")
}

// LogLineupDeleted logs a lineup delete event.
func (al *AuditLogger) LogLineupDeleted(lineupID string) {
	al.WithField("lineup_id", lineupID).Info("Lineup deleted")
}

// LogSimulationRun logs a completed simulation batch.
func (al *AuditLogger) LogSimulationRun(configCount, baselineCount, numGames int, duration time.Duration) {
	al.WithFields(logrus.Fields{
		"config_count":   configCount,
		"baseline_count": baselineCount,
		"num_games":      numGames,
		"duration_ms":    duration.Milliseconds(),
	}).Info("Simulation batch completed")
}

// LogSimulationFailure logs a failed simulation batch.
func (al *AuditLogger) LogSimulationFailure(configCount int, reason string) {
	al.WithFields(logrus.Fields{
		"config_count": configCount,
		"reason":       reason,
	}).Warn("Simulation batch failed")
}
