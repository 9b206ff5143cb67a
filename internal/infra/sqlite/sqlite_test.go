package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sorakaya/balloonlog/internal/domain"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func answer(date, slot string, a domain.Activity) domain.Answer {
	return domain.Answer{
		Date:   date,
		Slot:   slot,
		Action: a.Label(),
		Delta:  a.Delta(),
	}
}

func TestInsertAnswer_AndAnsweredSlots(t *testing.T) {
	db := openTestDB(t)

	for _, slot := range []string{"06:00", "06:30", "07:00"} {
		if err := db.InsertAnswer(answer("2024-05-01", slot, domain.ActivityStudy)); err != nil {
			t.Fatalf("insert %s: %v", slot, err)
		}
	}

	slots, err := db.AnsweredSlots("2024-05-01")
	if err != nil {
		t.Fatalf("answered slots: %v", err)
	}
	want := []string{"06:00", "06:30", "07:00"}
	if len(slots) != len(want) {
		t.Fatalf("got %d slots, want %d", len(slots), len(want))
	}
	for i, w := range want {
		if slots[i] != w {
			t.Errorf("slots[%d] = %q, want %q", i, slots[i], w)
		}
	}

	// Other days are unaffected.
	other, err := db.AnsweredSlots("2024-05-02")
	if err != nil {
		t.Fatalf("answered slots: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("got %d slots for an empty day, want 0", len(other))
	}
}

func TestInsertAnswer_DuplicateSlotIsNoop(t *testing.T) {
	db := openTestDB(t)

	if err := db.InsertAnswer(answer("2024-05-01", "06:00", domain.ActivityStudy)); err != nil {
		t.Fatalf("insert: %v", err)
	}
	// Re-submission after a lost acknowledgment: must not double-count.
	if err := db.InsertAnswer(answer("2024-05-01", "06:00", domain.ActivityWork)); err != nil {
		t.Fatalf("re-insert: %v", err)
	}

	s, ok, err := db.Summary("2024-05-01")
	if err != nil || !ok {
		t.Fatalf("summary: ok=%v err=%v", ok, err)
	}
	if s.Study != 1 || s.Work != 0 {
		t.Errorf("counts study=%d work=%d, want 1, 0", s.Study, s.Work)
	}
	if s.HeightChange != 10 {
		t.Errorf("height change = %d, want 10", s.HeightChange)
	}
}

func TestInsertAnswer_UpdatesSummaryCounters(t *testing.T) {
	db := openTestDB(t)

	inserts := []struct {
		slot     string
		activity domain.Activity
	}{
		{"06:00", domain.ActivitySleepMeal},
		{"06:30", domain.ActivityWork},
		{"07:00", domain.ActivityIntellectual},
		{"07:30", domain.ActivityStudy},
		{"08:00", domain.ActivityExercise},
		{"08:30", domain.ActivityGame},
	}
	for _, in := range inserts {
		if err := db.InsertAnswer(answer("2024-05-01", in.slot, in.activity)); err != nil {
			t.Fatalf("insert %s: %v", in.slot, err)
		}
	}

	s, ok, err := db.Summary("2024-05-01")
	if err != nil || !ok {
		t.Fatalf("summary: ok=%v err=%v", ok, err)
	}
	for _, a := range domain.Activities() {
		if got := s.CountFor(a); got != 1 {
			t.Errorf("count for %v = %d, want 1", a, got)
		}
	}
	// 0 + 1 + 5 + 10 + 10 - 5
	if s.HeightChange != 21 {
		t.Errorf("height change = %d, want 21", s.HeightChange)
	}
}

func TestInsertAnswer_BonusSentinelSkipsSummary(t *testing.T) {
	db := openTestDB(t)

	a := domain.Answer{
		Date:   "2024-05-01",
		Slot:   domain.BonusSlotMarker,
		Action: "screen_time",
		Delta:  10,
	}
	if err := db.InsertAnswer(a); err != nil {
		t.Fatalf("insert bonus row: %v", err)
	}

	// Sentinel rows are an audit trail: no summary row, no answered slot.
	if _, ok, _ := db.Summary("2024-05-01"); ok {
		t.Error("bonus sentinel must not create a summary row")
	}
	slots, _ := db.AnsweredSlots("2024-05-01")
	if len(slots) != 0 {
		t.Errorf("bonus sentinel leaked into answered slots: %v", slots)
	}

	// Both sentinel rows for a day are kept.
	a.Action = "sleep_schedule"
	if err := db.InsertAnswer(a); err != nil {
		t.Fatalf("insert second bonus row: %v", err)
	}
	all, err := db.AnswersFor("2024-05-01")
	if err != nil {
		t.Fatalf("answers for: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("got %d audit rows, want 2", len(all))
	}
}

func TestApplyBonus_OncePerDay(t *testing.T) {
	db := openTestDB(t)

	rec := domain.BonusRecord{Date: "2024-05-01", Q1: true, Q2: true, Bonus: 20}
	if err := db.ApplyBonus(rec); err != nil {
		t.Fatalf("apply bonus: %v", err)
	}

	given, err := db.BonusGiven("2024-05-01")
	if err != nil || !given {
		t.Fatalf("bonus given: %v %v", given, err)
	}

	err = db.ApplyBonus(rec)
	if !errors.Is(err, domain.ErrBonusAlreadyGiven) {
		t.Fatalf("second apply err = %v, want ErrBonusAlreadyGiven", err)
	}

	s, ok, err := db.Summary("2024-05-01")
	if err != nil || !ok {
		t.Fatalf("summary: ok=%v err=%v", ok, err)
	}
	if s.HeightChange != 20 {
		t.Errorf("height change = %d, want 20 (applied once)", s.HeightChange)
	}

	stored, ok, err := db.BonusRecordFor("2024-05-01")
	if err != nil || !ok {
		t.Fatalf("bonus record: ok=%v err=%v", ok, err)
	}
	if !stored.Q1 || !stored.Q2 || stored.Bonus != 20 {
		t.Errorf("stored record = %+v", stored)
	}
}

func TestBonusStats(t *testing.T) {
	db := openTestDB(t)

	records := []domain.BonusRecord{
		{Date: "2024-05-01", Q1: true, Q2: true, Bonus: 20},
		{Date: "2024-05-02", Q1: true, Q2: false, Bonus: 10},
		{Date: "2024-05-03", Q1: false, Q2: false, Bonus: 0},
	}
	for _, r := range records {
		if err := db.ApplyBonus(r); err != nil {
			t.Fatalf("apply bonus %s: %v", r.Date, err)
		}
	}

	stats, err := db.BonusStats()
	if err != nil {
		t.Fatalf("bonus stats: %v", err)
	}
	if s := stats["screen_time"]; s.Yes != 2 || s.Total != 3 {
		t.Errorf("screen_time = %+v, want 2/3", s)
	}
	if s := stats["sleep_schedule"]; s.Yes != 1 || s.Total != 3 {
		t.Errorf("sleep_schedule = %+v, want 1/3", s)
	}
}

func TestTotalAltitude(t *testing.T) {
	db := openTestDB(t)

	if total, err := db.TotalAltitude(); err != nil || total != 0 {
		t.Fatalf("empty db altitude = %d, %v; want 0", total, err)
	}

	db.InsertAnswer(answer("2024-05-01", "06:00", domain.ActivityStudy))
	db.InsertAnswer(answer("2024-05-02", "06:00", domain.ActivityGame))
	db.ApplyBonus(domain.BonusRecord{Date: "2024-05-02", Q1: true, Bonus: 10})

	total, err := db.TotalAltitude()
	if err != nil {
		t.Fatalf("total altitude: %v", err)
	}
	if total != 15 {
		t.Errorf("total = %d, want 15 (10 - 5 + 10)", total)
	}
}

func TestSummaryAll_NewestFirst(t *testing.T) {
	db := openTestDB(t)

	db.InsertAnswer(answer("2024-05-01", "06:00", domain.ActivityWork))
	db.InsertAnswer(answer("2024-05-03", "06:00", domain.ActivityWork))
	db.InsertAnswer(answer("2024-05-02", "06:00", domain.ActivityWork))

	all, err := db.SummaryAll()
	if err != nil {
		t.Fatalf("summary all: %v", err)
	}
	want := []string{"2024-05-03", "2024-05-02", "2024-05-01"}
	if len(all) != len(want) {
		t.Fatalf("got %d rows, want %d", len(all), len(want))
	}
	for i, w := range want {
		if all[i].Date != w {
			t.Errorf("row[%d].Date = %q, want %q", i, all[i].Date, w)
		}
	}
}

func TestBackupTo(t *testing.T) {
	db := openTestDB(t)
	db.InsertAnswer(answer("2024-05-01", "06:00", domain.ActivityStudy))

	dir := t.TempDir()
	path, err := db.BackupTo(dir)
	if err != nil {
		t.Fatalf("backup: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("backup landed in %q, want %q", filepath.Dir(path), dir)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat backup: %v", err)
	}
	if info.Size() == 0 {
		t.Error("backup file is empty")
	}
}
