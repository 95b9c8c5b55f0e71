package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/lineup-lab/internal/config"
	"github.com/yourusername/lineup-lab/internal/database"
	"github.com/yourusername/lineup-lab/internal/lineup"
	applogger "github.com/yourusername/lineup-lab/internal/logger"
	"github.com/yourusername/lineup-lab/internal/oracle"
	"github.com/yourusername/lineup-lab/internal/repository"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	teamID     string
	logger     *logrus.Logger
	audit      *applogger.AuditLogger
	cfg        *config.Config
	db         *database.DB
	repos      *repository.Repositories
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	generateCmd.Flags().StringVarP(&teamID, "team", "t", "", "Team whose roster to generate from")
	generateCmd.MarkFlagRequired("team")
}

var rootCmd = &cobra.Command{
	Use:   "lineupctl",
	Short: "Manage saved lineups",
	Long:  `Inspect, generate and delete saved batting lineups.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved lineups",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listLineups(context.Background())
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <lineup-id>",
	Short: "Delete a saved lineup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return deleteLineup(context.Background(), args[0])
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print a heuristic batting order for a team's roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		return generateOrder(context.Background())
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check simulation oracle health",
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkOracleHealth(context.Background())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lineupctl %s (%s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	rootCmd.AddCommand(listCmd, deleteCmd, generateCmd, statusCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	var err error
	cfg, err = config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}

	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			return fmt.Errorf("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(cfg, region, secretName); err != nil {
			return fmt.Errorf("failed to load secrets: %w", err)
		}
	}

	return config.Validate(cfg)
}

func setupDependencies() error {
	logger = applogger.NewLogger(cfg.App.LogLevel)
	audit = applogger.NewAuditLogger(logger)

	var err error
	db, err = database.NewDB(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	repos, err = repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}

	return nil
}

func listLineups(ctx context.Context) error {
	lineups, err := repos.Lineup.List(ctx)
	if err != nil {
		return err
	}

	if len(lineups) == 0 {
		fmt.Println("No saved lineups")
		return nil
	}

	for _, l := range lineups {
		fmt.Printf("%s  %-30s  %d players  saved %s\n",
			l.ID, l.Name, len(l.Players), l.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func deleteLineup(ctx context.Context, rawID string) error {
	id, err := uuid.Parse(rawID)
	if err != nil {
		return fmt.Errorf("invalid lineup id %q: %w", rawID, err)
	}

	if err := repos.Lineup.Delete(ctx, id); err != nil {
		return err
	}

	audit.LogLineupDeleted(id.String())
	fmt.Printf("Deleted lineup %s\n", id)
	return nil
}

func generateOrder(ctx context.Context) error {
	players, err := repos.Player.GetByTeam(ctx, teamID)
	if err != nil {
		return err
	}
	if len(players) == 0 {
		return fmt.Errorf("no roster snapshot for team %s", teamID)
	}

	order := lineup.GenerateDistinct(players)
	fmt.Printf("Suggested order for %s:\n", teamID)
	for _, p := range order {
		fmt.Printf("  %d. %-25s OPS %.3f  OBP %.3f  AVG %.3f\n",
			p.BattingOrder, p.Name, p.OPS, p.OBP, p.AVG)
	}
	return nil
}

func checkOracleHealth(ctx context.Context) error {
	client := oracle.NewClient(&cfg.Oracle, logger)

	if err := client.HealthCheck(ctx); err != nil {
		fmt.Printf("Simulation oracle is unavailable: %v\n", err)
		return err
	}

	fmt.Println("Simulation oracle is healthy")
	return nil
}
