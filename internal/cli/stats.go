package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sorakaya/balloonlog/internal/client"
	"github.com/sorakaya/balloonlog/internal/domain"
)

// ─── stats ──────────────────────────────────────────────────────────────────

func init() {
	rootCmd.AddCommand(statsCmd)
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show bonus question statistics",
	Long:  `Show how often each morning bonus question was answered yes across all recorded days.`,
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	backend := client.New(cfg.Client.BaseURL, clientTimeout())

	stats, err := backend.BonusStats(cmd.Context())
	if err != nil {
		return err
	}

	for _, q := range domain.BonusQuestions() {
		st := stats[q.Key]
		if st.Total == 0 {
			fmt.Fprintf(os.Stdout, "%-16s no data\n", q.Key)
			continue
		}
		pct := 100 * float64(st.Yes) / float64(st.Total)
		fmt.Fprintf(os.Stdout, "%-16s %d/%d yes (%.0f%%)\n", q.Key, st.Yes, st.Total, pct)
	}
	return nil
}
