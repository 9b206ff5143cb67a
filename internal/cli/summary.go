package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sorakaya/balloonlog/internal/client"
	"github.com/sorakaya/balloonlog/internal/domain"
)

// ─── summary ────────────────────────────────────────────────────────────────

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().BoolP("all", "a", false, "Show every recorded day, newest first")
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the activity breakdown for the current day",
	Long:  `Show how many half-hour slots went to each activity today, and the net altitude change.`,
	RunE:  runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	backend := client.New(cfg.Client.BaseURL, clientTimeout())
	ctx := cmd.Context()

	all, _ := cmd.Flags().GetBool("all")
	if all {
		summaries, err := backend.SummaryAll(ctx)
		if err != nil {
			return err
		}
		if len(summaries) == 0 {
			fmt.Fprintln(os.Stdout, "No records yet.")
			return nil
		}
		for i, s := range summaries {
			if i > 0 {
				fmt.Fprintln(os.Stdout)
			}
			printSummary(s)
		}
		return nil
	}

	s, ok, err := backend.Summary(ctx)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(os.Stdout, "No records for today yet.")
		return nil
	}
	printSummary(s)
	return nil
}

func printSummary(s domain.DailySummary) {
	fmt.Fprintf(os.Stdout, "%s\n", s.Date)
	for _, a := range domain.Activities() {
		if n := s.CountFor(a); n > 0 {
			fmt.Fprintf(os.Stdout, "  %-22s %d\n", a.Label(), n)
		}
	}
	fmt.Fprintf(os.Stdout, "  %-22s %+d m\n", "altitude change", s.HeightChange)
}
