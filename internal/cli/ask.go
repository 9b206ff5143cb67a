package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sorakaya/balloonlog/internal/client"
	"github.com/sorakaya/balloonlog/internal/domain"
	"github.com/sorakaya/balloonlog/internal/engine"
	"github.com/sorakaya/balloonlog/internal/tui"
)

// ─── ask ────────────────────────────────────────────────────────────────────

func init() {
	rootCmd.AddCommand(askCmd)
}

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Answer the unanswered slots of the current day",
	Long: `Reconcile against the backend and walk through every half-hour slot of
the current logical day that has not been answered yet, one question at a
time. On a fresh day the two morning bonus questions come first.`,
	RunE: runAsk,
}

func runAsk(cmd *cobra.Command, args []string) error {
	windowEnd, err := domain.ParseWindowEnd(cfg.Day.WindowEnd)
	if err != nil {
		return fmt.Errorf("bad [day] window_end: %w", err)
	}

	backend := client.New(cfg.Client.BaseURL, clientTimeout())
	sess := engine.NewSession(backend, engine.Config{
		Location:  time.Local,
		WindowEnd: windowEnd,
		Floor:     cfg.Altitude.Floor,
		Clock:     time.Now,
	}, logger)

	ctx := cmd.Context()
	if err := sess.Start(ctx); err != nil {
		return fmt.Errorf("cannot reach the backend, try again later: %w", err)
	}

	render := tui.NewRenderer(os.Stdout, time.Duration(cfg.Altitude.StepDelay)*time.Millisecond)
	render.Banner(sess.Day(), sess.Altitude(), sess.Remaining())

	for {
		switch sess.State() {
		case engine.StateAwaitingBonus:
			q, _ := sess.CurrentBonusQuestion()
			yes, err := tui.ConfirmBonus(q)
			if err != nil {
				return err
			}
			tr, err := sess.AnswerBonus(ctx, yes)
			if err != nil {
				return err
			}
			render.Animate(tr)

		case engine.StateAwaitingSlot:
			slot, _ := sess.CurrentSlot()
			activity, err := tui.SelectActivity(slot)
			if err != nil {
				return err
			}
			tr, err := sess.AnswerSlot(ctx, activity)
			if err != nil {
				return err
			}
			render.Animate(tr)

		case engine.StateComplete:
			fmt.Fprintf(os.Stdout, "All caught up for %s. %s\n", sess.Day(), tui.Altitude(sess.Altitude()))
			return nil

		default:
			return sess.Err()
		}
	}
}
