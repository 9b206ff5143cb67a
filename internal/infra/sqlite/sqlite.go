// Package sqlite persists answers, daily summaries, and bonus records.
// One database file per installation; schema applied at open.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// FileName is the database file created under the data directory.
const FileName = "balloonlog.db"

// DB wraps the sqlite handle with balloonlog's operations.
type DB struct {
	db   *sql.DB
	path string
}

// Open creates (if needed) and opens the database under dir, applying
// all pending schema statements.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	path := filepath.Join(dir, FileName)
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db := &DB{db: sqlDB, path: path}
	for _, pragma := range []string{
		`PRAGMA journal_mode = WAL`,
		`PRAGMA busy_timeout = 5000`,
		`PRAGMA foreign_keys = ON`,
	} {
		if _, err := sqlDB.Exec(pragma); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}

	for _, stmt := range Migrations() {
		if _, err := sqlDB.Exec(stmt); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return db, nil
}

// Close closes the underlying handle.
func (db *DB) Close() error { return db.db.Close() }

// Path returns the database file path.
func (db *DB) Path() string { return db.path }

// ─── Schema ─────────────────────────────────────────────────────────────────

// Migrations returns the schema statements. Each string is a single SQL
// statement (SQLite executes one at a time).
func Migrations() []string {
	return []string{
		// One row per recorded answer. Bonus answers use the sentinel
		// slot marker and never participate in slot reconciliation.
		`CREATE TABLE IF NOT EXISTS logs (
			id         TEXT PRIMARY KEY,
			date       TEXT NOT NULL,
			slot       TEXT NOT NULL,
			action     TEXT NOT NULL,
			delta      INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
		`CREATE INDEX IF NOT EXISTS idx_logs_date ON logs(date)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_logs_date_slot
			ON logs(date, slot) WHERE slot <> 'bonus'`,

		// Per-day aggregation: one counter column per activity plus the
		// net altitude change.
		`CREATE TABLE IF NOT EXISTS daily_summary (
			date            TEXT PRIMARY KEY,
			sleep_eat_count INTEGER NOT NULL DEFAULT 0,
			work_count      INTEGER NOT NULL DEFAULT 0,
			thinking_count  INTEGER NOT NULL DEFAULT 0,
			study_count     INTEGER NOT NULL DEFAULT 0,
			exercise_count  INTEGER NOT NULL DEFAULT 0,
			game_count      INTEGER NOT NULL DEFAULT 0,
			height_change   INTEGER NOT NULL DEFAULT 0
		)`,

		// Once-per-day bonus outcome. The row's existence is the
		// "bonus given" flag.
		`CREATE TABLE IF NOT EXISTS bonus_days (
			date       TEXT PRIMARY KEY,
			q1         INTEGER NOT NULL DEFAULT 0,
			q2         INTEGER NOT NULL DEFAULT 0,
			bonus      INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL DEFAULT (datetime('now'))
		)`,
	}
}
