package sqlite

import (
	"database/sql"

	"github.com/sorakaya/balloonlog/internal/domain"
)

// ─── Summary & Aggregation Operations ───────────────────────────────────────

// Summary returns the aggregated row for one logical day.
// The second return is false when the day has no records yet.
func (db *DB) Summary(date string) (domain.DailySummary, bool, error) {
	var s domain.DailySummary
	err := db.db.QueryRow(`
		SELECT date, sleep_eat_count, work_count, thinking_count,
		       study_count, exercise_count, game_count, height_change
		FROM daily_summary WHERE date = ?
	`, date).Scan(&s.Date, &s.SleepMeal, &s.Work, &s.Intellectual,
		&s.Study, &s.Exercise, &s.Game, &s.HeightChange)
	if err == sql.ErrNoRows {
		return domain.DailySummary{}, false, nil
	}
	if err != nil {
		return domain.DailySummary{}, false, err
	}
	return s, true, nil
}

// SummaryAll returns every day's row, newest first.
func (db *DB) SummaryAll() ([]domain.DailySummary, error) {
	rows, err := db.db.Query(`
		SELECT date, sleep_eat_count, work_count, thinking_count,
		       study_count, exercise_count, game_count, height_change
		FROM daily_summary ORDER BY date DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DailySummary
	for rows.Next() {
		var s domain.DailySummary
		if err := rows.Scan(&s.Date, &s.SleepMeal, &s.Work, &s.Intellectual,
			&s.Study, &s.Exercise, &s.Game, &s.HeightChange); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// TotalAltitude returns the sum of height changes over all recorded days.
// The display floor is policy, not storage: callers clamp.
func (db *DB) TotalAltitude() (int, error) {
	var total int
	err := db.db.QueryRow(`
		SELECT COALESCE(SUM(height_change), 0) FROM daily_summary
	`).Scan(&total)
	return total, err
}
