package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var usageExcluding int64

var usageCmd = &cobra.Command{
	Use:   "usage <media-id>",
	Short: "List the records that reference a medium",
	Long: `Lists every record whose body, thumbnail or builder payload references the
medium, grouped by reference kind. Use --excluding to leave one record out,
as a deletion would.`,
	Args: cobra.ExactArgs(1),
	RunE: runUsage,
}

func init() {
	usageCmd.Flags().Int64Var(&usageExcluding, "excluding", 0, "record id to leave out")
	rootCmd.AddCommand(usageCmd)
}

func runUsage(cmd *cobra.Command, args []string) error {
	if reclaimer == nil {
		return errReclaimerMissing
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	usage, err := reclaimer.Usage(context.Background(), id, usageExcluding)
	if err != nil {
		return fmt.Errorf("usage of media %d: %w", id, err)
	}
	if usage.IsEmpty() {
		cmd.Printf("Media %d is not used by any other record.\n", id)
		return nil
	}

	cmd.Printf("Media %d is used by:\n", id)
	for _, ref := range usage.References(id) {
		cmd.Printf("  record %d (%s)\n", ref.RecordID, ref.Kind)
	}
	return nil
}
