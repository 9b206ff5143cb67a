package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/sorakaya/balloonlog/internal/engine"
)

// Renderer animates altitude transitions on a terminal. Steps are drawn
// in place with a carriage return, one unit per tick.
type Renderer struct {
	out   io.Writer
	delay time.Duration
}

// NewRenderer creates a renderer writing to out with the given delay
// between animation steps.
func NewRenderer(out io.Writer, delay time.Duration) *Renderer {
	return &Renderer{out: out, delay: delay}
}

// Altitude returns the styled single-line altitude display.
func Altitude(value int) string {
	return fmt.Sprintf("🎈 %s", altitudeStyle.Render(fmt.Sprintf("%d m", value)))
}

// Animate draws a transition step by step and leaves the final value on
// its own line. A zero-delta transition draws nothing.
func (r *Renderer) Animate(tr engine.Transition) {
	if len(tr.Steps) == 0 {
		return
	}

	arrow := ascentStyle.Render("▲")
	if tr.Delta < 0 {
		arrow = descentStyle.Render("▼")
	}

	for _, v := range tr.Steps {
		fmt.Fprintf(r.out, "\r%s %s  ", Altitude(v), arrow)
		time.Sleep(r.delay)
	}
	fmt.Fprintf(r.out, "\r%s     \n", Altitude(tr.Steps[len(tr.Steps)-1]))

	if tr.Floored {
		fmt.Fprintln(r.out, floorStyle.Render("⚠ ground floor reached — the balloon descends no further"))
	}
}

// Banner prints the session header for a logical day.
func (r *Renderer) Banner(day string, altitude, remaining int) {
	fmt.Fprintln(r.out, headerStyle.Render("balloonlog · "+day))
	fmt.Fprintln(r.out, Altitude(altitude))
	if remaining > 0 {
		fmt.Fprintln(r.out, dimStyle.Render(fmt.Sprintf("%d slot(s) to catch up on", remaining)))
	}
	fmt.Fprintln(r.out)
}
