package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/reclaim/internal/core/domain"
)

var (
	deleteYes  bool
	deleteRate float64
)

var deleteCmd = &cobra.Command{
	Use:   "delete <record-id>...",
	Short: "Delete content records and reclaim their media",
	Long: `Deletes each record through the content store. Before a record is removed,
every medium it references is deleted, re-homed to another record that still
uses it, or kept when it belongs to someone else.

Without --yes the command asks for confirmation, and refuses to run when
standard input is not a terminal.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDelete,
}

var planCmd = &cobra.Command{
	Use:   "plan <record-id>",
	Short: "Show what deleting a record would do to its media",
	Long:  `Computes the per-medium decisions for a record without changing anything.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runPlan,
}

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "do not ask for confirmation")
	deleteCmd.Flags().Float64Var(&deleteRate, "rate", 0, "maximum deletions per second (0 for no limit)")
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(planCmd)
}

// isInteractive reports whether confirmation prompts can be shown.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func runDelete(cmd *cobra.Command, args []string) error {
	if reclaimer == nil {
		return errReclaimerMissing
	}
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	if !deleteYes {
		if !isInteractive() {
			return errors.New("refusing to delete without --yes when not running interactively")
		}
		cmd.Printf("Delete %d record(s) %s and reclaim their media? [y/N]: ", len(ids), strings.Join(args, ", "))
		answer := readLine(bufio.NewReader(cmd.InOrStdin()))
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			cmd.Println("Aborted.")
			return nil
		}
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if deleteRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(deleteRate), 1)
	}

	ctx := context.Background()
	var failed int
	for _, id := range ids {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
		report, err := reclaimer.Delete(ctx, id)
		if err != nil {
			cmd.PrintErrf("Record %d: %v\n", id, err)
			failed++
			continue
		}
		cmd.Printf("Record %d deleted.\n", id)
		printReport(cmd, report)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d deletions failed", failed, len(ids))
	}
	return nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	if reclaimer == nil {
		return errReclaimerMissing
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	report, err := reclaimer.Plan(context.Background(), id)
	if err != nil {
		return fmt.Errorf("planning record %d: %w", id, err)
	}
	cmd.Printf("Plan for record %d (nothing changed):\n", id)
	printReport(cmd, report)
	return nil
}

// printReport writes one line per outcome followed by totals.
func printReport(cmd *cobra.Command, report *domain.Report) {
	if report == nil {
		cmd.Println("  No reclaim report.")
		return
	}
	if len(report.Outcomes) == 0 {
		cmd.Println("  No media referenced.")
	}
	for _, o := range report.Outcomes {
		cmd.Printf("  media %d [%s]: %s\n", o.MediaID, joinEncodings(o.Encodings), describeOutcome(o))
	}
	for _, f := range report.Failures {
		cmd.Printf("  encoding %s failed: %v\n", f.Encoding, f.Err)
	}
	cmd.Printf("  %d deleted, %d reparented, %d skipped\n",
		report.Count(domain.ActionDelete),
		report.Count(domain.ActionReparent),
		report.Count(domain.ActionSkip))
}

func describeOutcome(o domain.Outcome) string {
	switch o.Action {
	case domain.ActionDelete:
		return "delete"
	case domain.ActionReparent:
		return fmt.Sprintf("reparent to %d", o.NewParentID)
	case domain.ActionSkip:
		s := "skip (" + string(o.Reason) + ")"
		if len(o.Blockers) > 0 {
			s += " used by " + joinIDs(o.Blockers)
		}
		return s
	default:
		return string(o.Action)
	}
}

func joinEncodings(encodings []domain.Encoding) string {
	parts := make([]string, len(encodings))
	for i, e := range encodings {
		parts[i] = string(e)
	}
	return strings.Join(parts, ",")
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not a valid id", domain.ErrInvalidInput, arg)
	}
	return id, nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
