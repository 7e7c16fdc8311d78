package cmd

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ndewijer/Portfolio-Tracker/cmd/tracker/internal/output"
	"github.com/ndewijer/Portfolio-Tracker/internal/config"
	"github.com/ndewijer/Portfolio-Tracker/internal/database"
	"github.com/ndewijer/Portfolio-Tracker/internal/holdings"
	"github.com/ndewijer/Portfolio-Tracker/internal/logging"
	"github.com/ndewijer/Portfolio-Tracker/internal/repository"
	"github.com/ndewijer/Portfolio-Tracker/internal/service"
	"github.com/ndewijer/Portfolio-Tracker/internal/version"
	"github.com/ndewijer/Portfolio-Tracker/internal/yahoo"
)

var (
	format       string
	holdingsPath string
	dbPath       string
	logLevel     string

	cfg     *config.Config
	db      *sql.DB
	tracker *service.TrackerService
)

var rootCmd = &cobra.Command{
	Use:   "tracker",
	Short: "Portfolio tracker - daily snapshots of a stock portfolio",
	Long: output.HeaderStyle.Render("Portfolio Tracker") + `

Computes per-holding performance from Yahoo Finance prices, stores a daily
snapshot and reports what changed since the previous one.

Get started:
  tracker run                Run once and print the dashboard
  tracker trend --days 30    Show portfolio value over the last 30 days
  tracker changes            List stored day-over-day changes`,
	Version:            version.Version,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		output.Error(err.Error())
	}
	return err
}

func init() {
	rootCmd.SilenceErrors = true

	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "table", "output format: table, json")
	rootCmd.PersistentFlags().StringVar(&holdingsPath, "holdings", "", "holdings CSV (overrides HOLDINGS_PATH)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "snapshot database (overrides DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level written to stderr")
}

// setup loads configuration and wires the tracker for every subcommand.
func setup(cmd *cobra.Command, args []string) error {
	if format != "table" && format != "json" {
		return fmt.Errorf("unknown format %q", format)
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}
	if holdingsPath != "" {
		cfg.Tracker.HoldingsPath = holdingsPath
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}

	logging.InitTo(os.Stderr, "tracker-cli", logLevel, true)

	db, err = database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	tracker = service.NewTrackerService(
		holdings.NewCSVSource(cfg.Tracker.HoldingsPath),
		yahoo.NewMarketData(yahoo.NewFinanceClient()),
		repository.NewTableRepository(db),
		cfg.Analytics,
	)
	return nil
}

func teardown(cmd *cobra.Command, args []string) error {
	if db != nil {
		return db.Close()
	}
	return nil
}

func jsonOutput() bool {
	return format == "json"
}
