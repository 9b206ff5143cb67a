// Package cli wires the balloonlog commands: the REST backend, the
// interactive questioning client, and the reporting helpers.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sorakaya/balloonlog/internal/config"
)

// ─── Root command ───────────────────────────────────────────────────────────

var (
	cfgPath string
	cfg     config.Config
	logger  zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "balloonlog",
	Short: "Gamified daily activity logger",
	Long: `balloonlog tracks what you did in each half-hour of the day and turns
it into the altitude of a hot-air balloon. Productive activities lift the
balloon; games pull it down. The serve command runs the REST backend;
ask walks you through the unanswered slots of the current logical day.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		logger, err = newLogger(cfg.Log)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file (default ~/.balloonlog/config.toml)")
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// ─── Logging ────────────────────────────────────────────────────────────────

// newLogger builds the zerolog logger from config. Console output goes
// to stderr; when a log file is configured it is rotated with lumberjack
// and written alongside the console.
func newLogger(lc config.LogConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(lc.Level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("parse log level %q: %w", lc.Level, err)
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}

	var sink io.Writer = console
	if lc.File != "" {
		sink = zerolog.MultiLevelWriter(console, &lumberjack.Logger{
			Filename:   lc.File,
			MaxSize:    lc.MaxSizeMB,
			MaxBackups: lc.MaxBackups,
			MaxAge:     lc.MaxAgeDays,
		})
	}

	return zerolog.New(sink).Level(level).With().Timestamp().Logger(), nil
}

// clientTimeout parses the configured client timeout, falling back to a
// sane default on a bad duration string.
func clientTimeout() time.Duration {
	d, err := time.ParseDuration(cfg.Client.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}
