package sqlite

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sorakaya/balloonlog/internal/domain"
)

// ─── Answer Operations ──────────────────────────────────────────────────────

// InsertAnswer records one answer and folds it into the day's summary row.
// A real slot already answered for the same day is a no-op: lost
// acknowledgments make the client re-ask, and re-recording must not
// double-count. Bonus-sentinel rows are kept as an audit trail only; their
// delta reaches the summary through ApplyBonus.
func (db *DB) InsertAnswer(a domain.Answer) error {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if a.Slot != domain.BonusSlotMarker {
		var exists int
		err := tx.QueryRow(`
			SELECT COUNT(*) FROM logs WHERE date = ? AND slot = ?
		`, a.Date, a.Slot).Scan(&exists)
		if err != nil {
			return err
		}
		if exists > 0 {
			return nil
		}
	}

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	_, err = tx.Exec(`
		INSERT INTO logs (id, date, slot, action, delta)
		VALUES (?, ?, ?, ?, ?)
	`, a.ID, a.Date, a.Slot, a.Action, a.Delta)
	if err != nil {
		return err
	}

	if a.Slot != domain.BonusSlotMarker {
		activity, err := domain.ParseActivity(a.Action)
		if err != nil {
			return err
		}
		col := activityColumn(activity)
		_, err = tx.Exec(fmt.Sprintf(`
			INSERT INTO daily_summary (date, %[1]s, height_change)
			VALUES (?, 1, ?)
			ON CONFLICT(date) DO UPDATE SET
				%[1]s         = %[1]s + 1,
				height_change = height_change + excluded.height_change
		`, col), a.Date, a.Delta)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// AnsweredSlots returns the slot-start labels already answered for a
// logical day, in the order they were answered. The bonus sentinel is
// never included.
func (db *DB) AnsweredSlots(date string) ([]string, error) {
	rows, err := db.db.Query(`
		SELECT slot FROM logs
		WHERE date = ? AND slot <> ?
		ORDER BY created_at, slot
	`, date, domain.BonusSlotMarker)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, rows.Err()
}

// AnswersFor returns the full answer rows for a logical day, oldest first.
func (db *DB) AnswersFor(date string) ([]domain.Answer, error) {
	rows, err := db.db.Query(`
		SELECT id, date, slot, action, delta, created_at
		FROM logs WHERE date = ? ORDER BY created_at, slot
	`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Answer
	for rows.Next() {
		var a domain.Answer
		var created string
		if err := rows.Scan(&a.ID, &a.Date, &a.Slot, &a.Action, &a.Delta, &created); err != nil {
			return nil, err
		}
		a.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", created)
		out = append(out, a)
	}
	return out, rows.Err()
}

// activityColumn maps an activity onto its daily_summary counter column.
func activityColumn(a domain.Activity) string {
	switch a {
	case domain.ActivitySleepMeal:
		return "sleep_eat_count"
	case domain.ActivityWork:
		return "work_count"
	case domain.ActivityIntellectual:
		return "thinking_count"
	case domain.ActivityStudy:
		return "study_count"
	case domain.ActivityExercise:
		return "exercise_count"
	case domain.ActivityGame:
		return "game_count"
	}
	return ""
}
