// Package main provides the entry point for the simulation CLI tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/lineup-lab/internal/config"
	"github.com/yourusername/lineup-lab/internal/database"
	applogger "github.com/yourusername/lineup-lab/internal/logger"
	"github.com/yourusername/lineup-lab/internal/models"
	"github.com/yourusername/lineup-lab/internal/oracle"
	"github.com/yourusername/lineup-lab/internal/repository"
	"github.com/yourusername/lineup-lab/internal/service"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		lineups    = flag.String("lineups", "", "Comma-separated lineup names to simulate (default: all saved)")
		numGames   = flag.Int("games", 0, "Games per simulation (0 uses the configured default)")
		baseline   = flag.Bool("baseline", true, "Compare each lineup against its wOBA baseline")
	)
	flag.Parse()

	logger := newLogger()
	ctx := context.Background()

	cfg := loadConfigWithSecrets(*configPath, logger)
	if *numGames == 0 {
		*numGames = cfg.Lineup.DefaultGameCount
	}

	db, err := database.NewDB(ctx, cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		logger.Fatalf("Failed to initialize repositories: %v", err)
	}

	runner := buildRunner(cfg, logger)
	svc := service.NewSimulationService(runner, logger, applogger.NewAuditLogger(logger))

	if cfg.Oracle.ProgressStreamEnabled {
		stopStream := startProgressStream(ctx, cfg, logger)
		defer stopStream()
	}

	selected, err := selectLineups(ctx, repos.Lineup, *lineups)
	if err != nil {
		logger.Fatalf("Failed to load lineups: %v", err)
	}

	logger.WithFields(logrus.Fields{
		"lineups":   len(selected),
		"num_games": *numGames,
		"baseline":  *baseline,
	}).Info("Starting simulation run")

	outcome, err := svc.Run(ctx, selected, *numGames, *baseline)
	if err != nil {
		logger.Fatalf("Simulation failed: %v", err)
	}

	printOutcome(outcome)
}

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	return logger
}

func loadConfigWithSecrets(path string, logger *logrus.Logger) *config.Config {
	cfg, err := config.LoadWithDefaults(path)
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			logger.Fatalf("AWS_REGION and AWS_SECRET_NAME environment variables must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			logger.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func buildRunner(cfg *config.Config, logger *logrus.Logger) oracle.BatchRunner {
	client := oracle.NewClient(&cfg.Oracle, logger)
	cache := oracle.NewResultCache(
		time.Duration(cfg.Oracle.CacheTTLSeconds)*time.Second,
		cfg.Oracle.CacheMaxSize,
	)
	return oracle.NewCachedClient(client, cache, logger)
}

func startProgressStream(ctx context.Context, cfg *config.Config, logger *logrus.Logger) func() {
	stream := oracle.NewProgressStream(cfg.Oracle.StreamAddress, logger)
	stream.OnProgress(func(msg oracle.ProgressMessage) {
		logger.WithFields(logrus.Fields{
			"config_id":   msg.ConfigID,
			"games_done":  msg.GamesDone,
			"total_games": msg.TotalGames,
		}).Debug("Simulation progress")
	})

	streamCtx, cancel := context.WithCancel(ctx)
	go func() {
		if err := stream.Connect(streamCtx); err != nil {
			logger.WithError(err).Warn("Progress stream unavailable, continuing without it")
			return
		}
		if err := stream.Listen(streamCtx); err != nil && streamCtx.Err() == nil {
			logger.WithError(err).Warn("Progress stream closed")
		}
	}()

	return func() {
		cancel()
		stream.Close()
	}
}

func selectLineups(ctx context.Context, repo repository.LineupRepository, filter string) ([]*models.SavedLineup, error) {
	all, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if filter == "" {
		return all, nil
	}

	wanted := make(map[string]bool)
	for _, name := range strings.Split(filter, ",") {
		wanted[strings.TrimSpace(name)] = true
	}

	var selected []*models.SavedLineup
	for _, l := range all {
		if wanted[l.Name] {
			selected = append(selected, l)
		}
	}
	return selected, nil
}

func printOutcome(outcome *service.RunOutcome) {
	fmt.Printf("Simulated %d configs x %d games in %s\n\n",
		len(outcome.Results), outcome.NumGames, outcome.Duration.Round(time.Millisecond))

	for _, c := range outcome.Comparisons {
		fmt.Printf("%s vs baseline\n", c.UserLineup.ConfigID)
		fmt.Printf("  user avg:     %.3f (median %.1f)\n", c.UserLineup.AvgScore, c.UserLineup.MedianScore)
		fmt.Printf("  baseline avg: %.3f (median %.1f)\n", c.BaselineLineup.AvgScore, c.BaselineLineup.MedianScore)
		fmt.Printf("  difference:   %+.3f  winner: %s\n\n", c.Difference, c.Winner)
	}

	if len(outcome.Comparisons) == 0 {
		for _, r := range outcome.Results {
			fmt.Printf("%s: avg %.3f, median %.1f, stddev %.3f\n",
				r.ConfigID, r.AvgScore, r.MedianScore, r.StdDev)
		}
	}
}
