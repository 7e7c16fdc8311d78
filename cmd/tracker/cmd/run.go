package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ndewijer/Portfolio-Tracker/cmd/tracker/internal/output"
	"github.com/ndewijer/Portfolio-Tracker/internal/model"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the tracker once",
	Long:  "Fetch prices, compute holding metrics, store a snapshot and print the dashboard.",
	Args:  cobra.NoArgs,
	RunE:  runTracker,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runTracker(cmd *cobra.Command, args []string) error {
	summary, err := tracker.Run(cmd.Context())
	if err != nil {
		return err
	}

	if jsonOutput() {
		return output.JSON(summary)
	}

	printDashboard(summary)
	return nil
}

func printDashboard(summary model.RunSummary) {
	output.Header(fmt.Sprintf("Portfolio on %s", summary.Snapshot.Date))
	output.KeyValue(output.SummaryPairs(summary.Snapshot.Summary))

	output.Header("Holdings")
	output.Table(os.Stdout, output.HoldingHeaders, output.HoldingRows(summary.Holdings))

	for _, d := range summary.DegradedHoldings {
		output.Warning(fmt.Sprintf("%s: %s", d.Symbol, d.Reason))
	}

	if summary.Change == nil {
		if !tracker.Config().UseHistoricalTracking {
			output.Info("Historical tracking is disabled; no snapshot stored.")
		}
		return
	}

	output.Header("Since last snapshot")
	output.KeyValue(output.ChangePairs(*summary.Change))

	if len(summary.Change.TopGainers) > 0 {
		output.Header("Top gainers")
		output.Table(os.Stdout, output.MoverHeaders, output.MoverRows(summary.Change.TopGainers))
	}
	if len(summary.Change.TopLosers) > 0 {
		output.Header("Top losers")
		output.Table(os.Stdout, output.MoverHeaders, output.MoverRows(summary.Change.TopLosers))
	}

	if !summary.SnapshotSaved {
		output.Warning("Snapshot was not saved; see log for details.")
	}
}
