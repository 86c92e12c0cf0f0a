package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/reclaim/internal/core/domain"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history [event-id]",
	Short: "Show past deletion events",
	Long: `Without arguments, lists the most recent deletion events.
With an event ID, prints the full report of that event.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "number of events to list")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	if eventHistory == nil {
		return errHistoryMissing
	}
	ctx := context.Background()

	if len(args) == 1 {
		report, err := eventHistory.Event(ctx, args[0])
		if err != nil {
			return fmt.Errorf("event %s: %w", args[0], err)
		}
		cmd.Printf("Event %s: record %d at %s\n", report.EventID, report.RecordID, formatTime(report.StartedAt))
		printReport(cmd, report)
		return nil
	}

	reports, err := eventHistory.Recent(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("listing events: %w", err)
	}
	if len(reports) == 0 {
		cmd.Println("No deletion events recorded.")
		return nil
	}
	for i := range reports {
		r := &reports[i]
		cmd.Printf("%s  %s  record %-6d  %d deleted, %d reparented, %d skipped\n",
			r.EventID, formatTime(r.StartedAt), r.RecordID,
			r.Count(domain.ActionDelete), r.Count(domain.ActionReparent), r.Count(domain.ActionSkip))
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
