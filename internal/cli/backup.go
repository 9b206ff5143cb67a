package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/sorakaya/balloonlog/internal/client"
)

// ─── backup ─────────────────────────────────────────────────────────────────

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.Flags().StringP("out", "o", "", "Destination file (default a timestamped file in the current directory)")
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Download a database snapshot from the backend",
	Long:  `Ask the backend for a consistent snapshot of its database and save it locally.`,
	RunE:  runBackup,
}

func runBackup(cmd *cobra.Command, args []string) error {
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		out = fmt.Sprintf("balloonlog-%s.db", time.Now().Format("20060102-150405"))
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("create backup directory: %w", err)
		}
	}

	backend := client.New(cfg.Client.BaseURL, clientTimeout())
	if err := backend.Download(cmd.Context(), out); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Snapshot saved to %s\n", out)
	return nil
}
