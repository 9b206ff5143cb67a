package domain

import (
	"fmt"
	"time"
)

// ─── Logical Day ────────────────────────────────────────────────────────────
// A logical day runs from 06:00 wall-clock to the window end early the next
// calendar morning. Anything before 06:00 still belongs to the previous day.

const (
	// DayStartHour is the wall-clock hour at which a logical day begins.
	DayStartHour = 6

	// SlotMinutes is the length of one questioning slot.
	SlotMinutes = 30

	// DateFormat is the logical-day identifier format.
	DateFormat = "2006-01-02"

	// SlotLabelFormat is the wire format for slot start labels.
	SlotLabelFormat = "15:04"
)

// DefaultWindowEnd is the default slot-window end bound: 03:00 on the
// calendar day after the logical day's date (a 21-hour window, 42 slots).
var DefaultWindowEnd = WindowEnd{Hour: 3, Minute: 0}

// WindowEnd is the wall-clock bound, past midnight, at which a logical
// day stops producing slots.
type WindowEnd struct {
	Hour   int
	Minute int
}

// ParseWindowEnd parses an "HH:MM" window end bound. Hours 0-5 land on the
// day after the logical date; 6-23 on the logical date itself.
func ParseWindowEnd(s string) (WindowEnd, error) {
	t, err := time.Parse(SlotLabelFormat, s)
	if err != nil {
		return WindowEnd{}, fmt.Errorf("%w: %q", ErrInvalidSlot, s)
	}
	return WindowEnd{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// DayFor returns the logical day identifier in effect at t.
// For wall-clock hours before 06:00 the logical day is the previous
// calendar date. Callers must pass a fresh clock reading: the boundary
// can roll while a session is open.
func DayFor(t time.Time) string {
	if t.Hour() < DayStartHour {
		t = t.AddDate(0, 0, -1)
	}
	return t.Format(DateFormat)
}

// DayStart returns the instant a logical day's slot window opens
// (06:00 local time on the day's calendar date).
func DayStart(day string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateFormat, day, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, day)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), DayStartHour, 0, 0, 0, loc), nil
}

// ─── Slots ──────────────────────────────────────────────────────────────────

// Slot is one half-hour interval within a logical day. Start and End sit on
// the real timeline: a slot past midnight carries the NEXT calendar date, so
// comparisons against "now" need no special casing.
type Slot struct {
	Start time.Time
	End   time.Time
}

// Label returns the slot's wire identifier (its start, "HH:MM").
func (s Slot) Label() string { return s.Start.Format(SlotLabelFormat) }

// Range returns the human-readable interval, e.g. "06:00–06:30".
func (s Slot) Range() string {
	return s.Start.Format(SlotLabelFormat) + "–" + s.End.Format(SlotLabelFormat)
}

// SlotsFor generates the ordered slots of a logical day that have already
// begun by now. The window opens at 06:00 of the day's calendar date and
// closes at the end bound on the following morning; slots whose start is
// after now are never offered. Slot starts past midnight are anchored on the
// next calendar date before the comparison, so post-midnight truncation is
// exact rather than an hour-only guess.
func SlotsFor(day string, now time.Time, loc *time.Location, end WindowEnd) ([]Slot, error) {
	start, err := DayStart(day, loc)
	if err != nil {
		return nil, err
	}

	endDay := start.AddDate(0, 0, 1)
	if end.Hour >= DayStartHour {
		endDay = start
	}
	windowEnd := time.Date(endDay.Year(), endDay.Month(), endDay.Day(), end.Hour, end.Minute, 0, 0, loc)

	var slots []Slot
	for cur := start; !cur.After(now); cur = cur.Add(SlotMinutes * time.Minute) {
		slotEnd := cur.Add(SlotMinutes * time.Minute)
		if slotEnd.After(windowEnd) {
			// Final partial slot is excluded.
			break
		}
		slots = append(slots, Slot{Start: cur, End: slotEnd})
	}
	return slots, nil
}
