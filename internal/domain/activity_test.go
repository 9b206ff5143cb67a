package domain

import (
	"errors"
	"testing"
)

func TestActivityTable(t *testing.T) {
	tests := []struct {
		activity Activity
		label    string
		delta    int
	}{
		{ActivitySleepMeal, "sleep/meal", 0},
		{ActivityWork, "work", 1},
		{ActivityIntellectual, "intellectual activity", 5},
		{ActivityStudy, "study", 10},
		{ActivityExercise, "exercise", 10},
		{ActivityGame, "game", -5},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := tt.activity.Label(); got != tt.label {
				t.Errorf("Label() = %q, want %q", got, tt.label)
			}
			if got := tt.activity.Delta(); got != tt.delta {
				t.Errorf("Delta() = %d, want %d", got, tt.delta)
			}
		})
	}

	if len(tests) != len(Activities()) {
		t.Errorf("Activities() has %d entries, want %d", len(Activities()), len(tests))
	}
}

func TestParseActivity(t *testing.T) {
	for _, a := range Activities() {
		got, err := ParseActivity(a.Label())
		if err != nil {
			t.Fatalf("ParseActivity(%q): %v", a.Label(), err)
		}
		if got != a {
			t.Errorf("ParseActivity(%q) = %v, want %v", a.Label(), got, a)
		}
	}

	_, err := ParseActivity("napping")
	if !errors.Is(err, ErrUnknownActivity) {
		t.Errorf("expected ErrUnknownActivity, got %v", err)
	}
}

func TestDailySummaryCountFor(t *testing.T) {
	d := DailySummary{
		SleepMeal: 1, Work: 2, Intellectual: 3,
		Study: 4, Exercise: 5, Game: 6,
	}
	want := map[Activity]int{
		ActivitySleepMeal:    1,
		ActivityWork:         2,
		ActivityIntellectual: 3,
		ActivityStudy:        4,
		ActivityExercise:     5,
		ActivityGame:         6,
	}
	for a, n := range want {
		if got := d.CountFor(a); got != n {
			t.Errorf("CountFor(%v) = %d, want %d", a, got, n)
		}
	}
}

func TestBonusQuestions(t *testing.T) {
	qs := BonusQuestions()
	if len(qs) != 2 {
		t.Fatalf("got %d bonus questions, want 2", len(qs))
	}
	if qs[0].Key != "screen_time" || qs[1].Key != "sleep_schedule" {
		t.Errorf("unexpected question order: %q, %q", qs[0].Key, qs[1].Key)
	}
}
