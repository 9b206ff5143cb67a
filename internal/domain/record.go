package domain

import "time"

// ─── Wire & Storage Records ─────────────────────────────────────────────────

// BonusSlotMarker is the sentinel slot label used when recording bonus
// answers. It is not a real time slot and never appears in answered-slot
// reconciliation.
const BonusSlotMarker = "bonus"

// Answer records that one slot of one logical day was assigned an activity.
// Immutable once recorded; there is no edit or delete operation.
type Answer struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Slot      string    `json:"slot"`
	Action    string    `json:"action"`
	Delta     int       `json:"delta"`
	CreatedAt time.Time `json:"created_at"`
}

// DailySummary is one aggregated row per logical day: how many slots went
// to each activity plus the net altitude change.
type DailySummary struct {
	Date         string `json:"date"`
	SleepMeal    int    `json:"sleep_meal"`
	Work         int    `json:"work"`
	Intellectual int    `json:"intellectual"`
	Study        int    `json:"study"`
	Exercise     int    `json:"exercise"`
	Game         int    `json:"game"`
	HeightChange int    `json:"height_change"`
}

// CountFor returns the summary's counter for the given activity.
func (d DailySummary) CountFor(a Activity) int {
	switch a {
	case ActivitySleepMeal:
		return d.SleepMeal
	case ActivityWork:
		return d.Work
	case ActivityIntellectual:
		return d.Intellectual
	case ActivityStudy:
		return d.Study
	case ActivityExercise:
		return d.Exercise
	case ActivityGame:
		return d.Game
	}
	return 0
}

// ─── Bonus Questions ────────────────────────────────────────────────────────

// BonusPointsPerYes is the altitude delta awarded for each bonus prompt
// answered yes.
const BonusPointsPerYes = 10

// BonusQuestion is one of the two fixed once-per-day prompts.
type BonusQuestion struct {
	Key    string
	Prompt string
}

// BonusQuestions returns the fixed bonus prompts in asking order.
func BonusQuestions() []BonusQuestion {
	return []BonusQuestion{
		{Key: "screen_time", Prompt: "Did you keep yesterday's screen time under the limit?"},
		{Key: "sleep_schedule", Prompt: "Did you keep your sleep/wake schedule?"},
	}
}

// BonusRecord is the persisted once-per-day bonus outcome.
type BonusRecord struct {
	Date  string `json:"date"`
	Q1    bool   `json:"q1"`
	Q2    bool   `json:"q2"`
	Bonus int    `json:"bonus"`
}

// BonusStat aggregates one prompt's yes rate over all recorded days.
type BonusStat struct {
	Yes   int `json:"yes"`
	Total int `json:"total"`
}
