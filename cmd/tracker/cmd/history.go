package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ndewijer/Portfolio-Tracker/cmd/tracker/internal/output"
	"github.com/ndewijer/Portfolio-Tracker/internal/validation"
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show portfolio value over time",
	Long:  "Print total value and cost of stored snapshots within the lookback window.",
	Args:  cobra.NoArgs,
	RunE:  runTrend,
}

var changesCmd = &cobra.Command{
	Use:   "changes",
	Short: "List stored daily changes",
	Long:  "Print every stored day-over-day change, oldest first.",
	Args:  cobra.NoArgs,
	RunE:  runChanges,
}

var daysFlag int

func init() {
	rootCmd.AddCommand(trendCmd)
	rootCmd.AddCommand(changesCmd)

	trendCmd.Flags().IntVarP(&daysFlag, "days", "d", 0, "lookback window in days (defaults to LOOKBACK_WINDOW_DAYS)")
}

func runTrend(cmd *cobra.Command, args []string) error {
	days := daysFlag
	if days == 0 {
		days = tracker.Config().LookbackWindowDays
	}
	if err := validation.ValidateTrendDays(days); err != nil {
		return err
	}

	points, err := tracker.History().Trend(cmd.Context(), days)
	if err != nil {
		return err
	}

	if jsonOutput() {
		return output.JSON(points)
	}

	output.Header(fmt.Sprintf("Trend over the last %d days", days))
	output.Table(os.Stdout, output.TrendHeaders, output.TrendRows(points))
	return nil
}

func runChanges(cmd *cobra.Command, args []string) error {
	changes, err := tracker.History().Changes(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOutput() {
		return output.JSON(changes)
	}

	if len(changes) == 0 {
		output.Info("No daily changes stored yet. Run the tracker on two different days first.")
		return nil
	}

	output.Header("Daily changes")
	output.Table(os.Stdout, output.ChangeHeaders, output.ChangeRows(changes))
	return nil
}
