package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ─── Backup Operations ──────────────────────────────────────────────────────

const (
	// MaxBackups is how many rotated backups to keep.
	MaxBackups = 14

	backupPrefix = "balloonlog-"
	backupSuffix = ".db"
)

// BackupTo writes a consistent snapshot of the database into dir using
// VACUUM INTO and returns the snapshot path. Older snapshots beyond
// MaxBackups are rotated out; a rotation failure is reported but does not
// fail the backup itself.
func (db *DB) BackupTo(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}

	name := backupPrefix + time.Now().Format("20060102-150405") + backupSuffix
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil {
		// Same-second collision: suffix with nanoseconds.
		name = backupPrefix + time.Now().Format("20060102-150405.000000000") + backupSuffix
		path = filepath.Join(dir, name)
	}

	// VACUUM INTO takes a string literal, not a bind parameter, in some
	// sqlite builds; escape embedded quotes.
	escaped := strings.ReplaceAll(path, "'", "''")
	if _, err := db.db.Exec(fmt.Sprintf(`VACUUM INTO '%s'`, escaped)); err != nil {
		return "", fmt.Errorf("vacuum into backup: %w", err)
	}

	if err := rotateBackups(dir); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to rotate old backups: %v\n", err)
	}
	return path, nil
}

// rotateBackups removes the oldest snapshots beyond MaxBackups.
func rotateBackups(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	var names []string
	for _, e := range entries {
		n := e.Name()
		if strings.HasPrefix(n, backupPrefix) && strings.HasSuffix(n, backupSuffix) {
			names = append(names, n)
		}
	}
	if len(names) <= MaxBackups {
		return nil
	}

	// Timestamped names sort chronologically.
	sort.Strings(names)
	for _, n := range names[:len(names)-MaxBackups] {
		if err := os.Remove(filepath.Join(dir, n)); err != nil {
			return err
		}
	}
	return nil
}
