// Package main provides the entry point for the roster sync daemon.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/lineup-lab/internal/config"
	"github.com/yourusername/lineup-lab/internal/database"
	"github.com/yourusername/lineup-lab/internal/health"
	"github.com/yourusername/lineup-lab/internal/logger"
	"github.com/yourusername/lineup-lab/internal/metrics"
	"github.com/yourusername/lineup-lab/internal/oracle"
	"github.com/yourusername/lineup-lab/internal/repository"
	"github.com/yourusername/lineup-lab/internal/roster"
	"github.com/yourusername/lineup-lab/internal/scheduler"
	"github.com/yourusername/lineup-lab/internal/service"
)

// Version is set via ldflags.
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.LoadWithDefaults("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Load AWS secrets if enabled
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			log.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			log.Fatalf("Failed to load secrets: %v", err)
		}
	}

	// Validate configuration
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Set up logging
	appLog := logger.NewLogger(cfg.App.LogLevel)
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"log_level":   cfg.App.LogLevel,
		"teams":       len(cfg.Roster.Teams),
	}).Info("Roster sync daemon starting")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection
	db, err := database.NewDB(ctx, cfg)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	appLog.Info("Database connection established")

	repos, err := repository.NewRepositories(db)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to initialize repositories")
	}

	// Initialize roster client and sync service
	rosterClient := roster.NewClient(&cfg.Roster, appLog)
	syncService := service.NewRosterSyncService(rosterClient, repos.Player, appLog)

	// Schedule periodic syncs
	sched := scheduler.NewScheduler(syncService, appLog)
	if err := sched.ScheduleRosterSync(cfg.Roster.SyncSchedule, cfg.Roster.Teams); err != nil {
		appLog.WithError(err).Fatal("Failed to schedule roster sync")
	}

	// Health check server, with oracle readiness when configured
	var oraclePinger health.OraclePinger
	if cfg.Oracle.HTTPAddress != "" {
		oraclePinger = oracle.NewClient(&cfg.Oracle, appLog)
	}
	healthServer := health.NewServer(health.Config{
		ServiceName: "roster-sync",
		Version:     Version,
		Logger:      appLog,
		DB:          db,
		Oracle:      oraclePinger,
	})
	if err := healthServer.Start(ctx); err != nil {
		appLog.WithError(err).Fatal("Failed to start health server")
	}

	// Metrics server
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		metricsServer = startMetricsServer(cfg, appLog)
	}

	// Run one sync immediately so a fresh deployment has rosters before the
	// first scheduled tick.
	for _, teamID := range cfg.Roster.Teams {
		if err := syncService.SyncTeam(ctx, teamID); err != nil {
			appLog.WithField("team_id", teamID).WithError(err).Error("Initial roster sync failed")
		}
	}

	sched.Start()
	healthServer.SetReady(true)
	appLog.WithField("schedule", cfg.Roster.SyncSchedule).Info("Roster sync daemon running")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan
	appLog.WithField("signal", sig).Info("Shutdown signal received")

	// Graceful shutdown
	healthServer.SetReady(false)
	cancel()
	sched.Stop()

	if metricsServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			appLog.WithError(err).Error("Metrics server shutdown failed")
		}
	}

	appLog.Info("Roster sync daemon shut down successfully")
}

func startMetricsServer(cfg *config.Config, appLog *logrus.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Metrics.Path, metrics.Handler())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		appLog.WithFields(logrus.Fields{
			"port": cfg.Metrics.Port,
			"path": cfg.Metrics.Path,
		}).Info("Metrics server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.WithError(err).Error("Metrics server error")
		}
	}()

	return server
}
