package sqlite

import (
	"database/sql"

	"github.com/sorakaya/balloonlog/internal/domain"
)

// ─── Bonus Operations ───────────────────────────────────────────────────────

// BonusGiven reports whether the bonus flow already ran for a logical day.
func (db *DB) BonusGiven(date string) (bool, error) {
	var count int
	err := db.db.QueryRow(`
		SELECT COUNT(*) FROM bonus_days WHERE date = ?
	`, date).Scan(&count)
	return count > 0, err
}

// ApplyBonus records the day's bonus outcome and adds its delta to the
// summary. At most one record per day: a repeat returns
// domain.ErrBonusAlreadyGiven without touching the summary.
func (db *DB) ApplyBonus(rec domain.BonusRecord) error {
	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT OR IGNORE INTO bonus_days (date, q1, q2, bonus)
		VALUES (?, ?, ?, ?)
	`, rec.Date, boolInt(rec.Q1), boolInt(rec.Q2), rec.Bonus)
	if err != nil {
		return err
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if inserted == 0 {
		return domain.ErrBonusAlreadyGiven
	}

	_, err = tx.Exec(`
		INSERT INTO daily_summary (date, height_change)
		VALUES (?, ?)
		ON CONFLICT(date) DO UPDATE SET
			height_change = height_change + excluded.height_change
	`, rec.Date, rec.Bonus)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// BonusRecordFor returns the day's bonus record, if recorded.
func (db *DB) BonusRecordFor(date string) (domain.BonusRecord, bool, error) {
	var rec domain.BonusRecord
	var q1, q2 int
	err := db.db.QueryRow(`
		SELECT date, q1, q2, bonus FROM bonus_days WHERE date = ?
	`, date).Scan(&rec.Date, &q1, &q2, &rec.Bonus)
	if err == sql.ErrNoRows {
		return domain.BonusRecord{}, false, nil
	}
	if err != nil {
		return domain.BonusRecord{}, false, err
	}
	rec.Q1, rec.Q2 = q1 == 1, q2 == 1
	return rec, true, nil
}

// BonusStats aggregates each prompt's yes/total counts over all days.
func (db *DB) BonusStats() (map[string]domain.BonusStat, error) {
	var q1Yes, q2Yes, total int
	err := db.db.QueryRow(`
		SELECT COALESCE(SUM(q1), 0), COALESCE(SUM(q2), 0), COUNT(*)
		FROM bonus_days
	`).Scan(&q1Yes, &q2Yes, &total)
	if err != nil {
		return nil, err
	}

	qs := domain.BonusQuestions()
	return map[string]domain.BonusStat{
		qs[0].Key: {Yes: q1Yes, Total: total},
		qs[1].Key: {Yes: q2Yes, Total: total},
	}, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
