// Package domain contains pure business types with ZERO infrastructure imports.
// This is the innermost ring of the application — it depends on nothing.
package domain

import "fmt"

// ─── Activity Types ─────────────────────────────────────────────────────────

// Activity is one of the closed set of things a half-hour slot can be
// spent on. The set is fixed; the wire labels must match the backend
// vocabulary exactly.
type Activity int

const (
	ActivitySleepMeal Activity = iota
	ActivityWork
	ActivityIntellectual
	ActivityStudy
	ActivityExercise
	ActivityGame
)

// activityInfo pairs the wire label with the altitude delta awarded
// when a slot is answered with that activity.
type activityInfo struct {
	label string
	delta int
}

var activityTable = map[Activity]activityInfo{
	ActivitySleepMeal:    {"sleep/meal", 0},
	ActivityWork:         {"work", 1},
	ActivityIntellectual: {"intellectual activity", 5},
	ActivityStudy:        {"study", 10},
	ActivityExercise:     {"exercise", 10},
	ActivityGame:         {"game", -5},
}

// Label returns the wire label for the activity.
func (a Activity) Label() string {
	if info, ok := activityTable[a]; ok {
		return info.label
	}
	return fmt.Sprintf("activity(%d)", int(a))
}

// Delta returns the altitude point delta awarded for the activity.
func (a Activity) Delta() int {
	return activityTable[a].delta
}

// String implements fmt.Stringer.
func (a Activity) String() string { return a.Label() }

// Activities returns all activities in presentation order.
func Activities() []Activity {
	return []Activity{
		ActivitySleepMeal,
		ActivityWork,
		ActivityIntellectual,
		ActivityStudy,
		ActivityExercise,
		ActivityGame,
	}
}

// ParseActivity maps a wire label back to its Activity.
func ParseActivity(label string) (Activity, error) {
	for _, a := range Activities() {
		if a.Label() == label {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownActivity, label)
}
