package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/sorakaya/balloonlog/internal/domain"
	"github.com/sorakaya/balloonlog/internal/infra/sqlite"
)

// setupServer pins the clock to 2024-05-01 08:15 UTC.
func setupServer(t *testing.T) (*Server, *sqlite.DB) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	s := NewServer(db, zerolog.Nop())
	s.SetBackupDir(t.TempDir())
	s.SetClock(func() time.Time {
		return time.Date(2024, 5, 1, 8, 15, 0, 0, time.UTC)
	})
	return s, db
}

func postJSON(t *testing.T, h http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func getJSON(t *testing.T, h http.Handler, path string, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if out != nil && w.Code == http.StatusOK {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return w
}

func TestHealth(t *testing.T) {
	s, _ := setupServer(t)
	w := getJSON(t, s.Handler(), "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestLog_ThenAnsweredSlots(t *testing.T) {
	s, _ := setupServer(t)
	h := s.Handler()

	for _, slot := range []string{"06:00", "06:30"} {
		w := postJSON(t, h, "/log", map[string]interface{}{
			"action": "study",
			"delta":  10,
			"slot":   slot,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("POST /log %s: %d %s", slot, w.Code, w.Body.String())
		}
	}

	var slots []string
	w := getJSON(t, h, "/answered_slots?date=2024-05-01", &slots)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /answered_slots: %d", w.Code)
	}
	if len(slots) != 2 || slots[0] != "06:00" || slots[1] != "06:30" {
		t.Errorf("slots = %v", slots)
	}
}

func TestLog_DefaultsDateToLogicalDay(t *testing.T) {
	s, db := setupServer(t)
	// 01:30 on May 2 still belongs to logical day May 1.
	s.SetClock(func() time.Time {
		return time.Date(2024, 5, 2, 1, 30, 0, 0, time.UTC)
	})

	w := postJSON(t, s.Handler(), "/log", map[string]interface{}{
		"action": "work",
		"slot":   "01:00",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("POST /log: %d %s", w.Code, w.Body.String())
	}

	slots, err := db.AnsweredSlots("2024-05-01")
	if err != nil {
		t.Fatalf("answered slots: %v", err)
	}
	if len(slots) != 1 || slots[0] != "01:00" {
		t.Errorf("slots for 2024-05-01 = %v", slots)
	}
}

func TestLog_UnknownActionRejected(t *testing.T) {
	s, _ := setupServer(t)

	w := postJSON(t, s.Handler(), "/log", map[string]interface{}{
		"action": "napping",
		"slot":   "06:00",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown action, got %d", w.Code)
	}
}

func TestLog_DeltaDefaultsToActivityDelta(t *testing.T) {
	s, db := setupServer(t)

	w := postJSON(t, s.Handler(), "/log", map[string]interface{}{
		"action": "exercise",
		"slot":   "07:00",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("POST /log: %d", w.Code)
	}

	summary, ok, err := db.Summary("2024-05-01")
	if err != nil || !ok {
		t.Fatalf("summary: ok=%v err=%v", ok, err)
	}
	if summary.HeightChange != 10 {
		t.Errorf("height change = %d, want the exercise delta 10", summary.HeightChange)
	}
}

func TestAnsweredSlots_RequiresValidDate(t *testing.T) {
	s, _ := setupServer(t)
	h := s.Handler()

	if w := getJSON(t, h, "/answered_slots", nil); w.Code != http.StatusBadRequest {
		t.Errorf("missing date: expected 400, got %d", w.Code)
	}
	if w := getJSON(t, h, "/answered_slots?date=05-01-2024", nil); w.Code != http.StatusBadRequest {
		t.Errorf("malformed date: expected 400, got %d", w.Code)
	}
}

func TestAnsweredSlots_EmptyDayIsEmptyArray(t *testing.T) {
	s, _ := setupServer(t)

	w := getJSON(t, s.Handler(), "/answered_slots?date=2024-05-01", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Body.String(); got != "[]\n" {
		t.Errorf("body = %q, want an empty JSON array", got)
	}
}

func TestBonusFlow(t *testing.T) {
	s, _ := setupServer(t)
	h := s.Handler()

	var status map[string]bool
	getJSON(t, h, "/bonus_status", &status)
	if status["bonusGiven"] {
		t.Fatal("fresh day reports bonusGiven")
	}

	w := postJSON(t, h, "/apply_bonus", map[string]interface{}{
		"bonus": 20, "q1": true, "q2": true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("POST /apply_bonus: %d %s", w.Code, w.Body.String())
	}

	getJSON(t, h, "/bonus_status", &status)
	if !status["bonusGiven"] {
		t.Error("bonusGiven still false after apply")
	}

	// Re-applying the same day conflicts.
	w = postJSON(t, h, "/apply_bonus", map[string]interface{}{
		"bonus": 20, "q1": true, "q2": true,
	})
	if w.Code != http.StatusConflict {
		t.Errorf("second apply: expected 409, got %d", w.Code)
	}

	var stats map[string]domain.BonusStat
	getJSON(t, h, "/bonus_stats", &stats)
	if s := stats["screen_time"]; s.Yes != 1 || s.Total != 1 {
		t.Errorf("screen_time stats = %+v", s)
	}
}

func TestApplyBonus_OutOfRange(t *testing.T) {
	s, _ := setupServer(t)

	w := postJSON(t, s.Handler(), "/apply_bonus", map[string]interface{}{
		"bonus": 50, "q1": true, "q2": true,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for out-of-range bonus, got %d", w.Code)
	}
}

func TestCurrentAltitude_Floor(t *testing.T) {
	s, _ := setupServer(t)
	s.SetFloor(100)
	h := s.Handler()

	// One game answer drags the raw total to -5; the response clamps.
	postJSON(t, h, "/log", map[string]interface{}{
		"action": "game", "slot": "06:00",
	})

	var resp map[string]int
	getJSON(t, h, "/current_altitude", &resp)
	if resp["altitude"] != 100 {
		t.Errorf("altitude = %d, want clamp at 100", resp["altitude"])
	}
}

func TestSummary_NoRecords(t *testing.T) {
	s, _ := setupServer(t)

	var resp map[string]string
	getJSON(t, s.Handler(), "/summary", &resp)
	if resp["summary"] != "no records" {
		t.Errorf("resp = %v, want the no-records shape", resp)
	}
}

func TestSummary_WithRecords(t *testing.T) {
	s, _ := setupServer(t)
	h := s.Handler()

	postJSON(t, h, "/log", map[string]interface{}{"action": "study", "slot": "06:00"})
	postJSON(t, h, "/log", map[string]interface{}{"action": "game", "slot": "06:30"})

	var resp domain.DailySummary
	getJSON(t, h, "/summary", &resp)
	if resp.Date != "2024-05-01" || resp.Study != 1 || resp.Game != 1 {
		t.Errorf("summary = %+v", resp)
	}
	if resp.HeightChange != 5 {
		t.Errorf("height change = %d, want 5", resp.HeightChange)
	}
}

func TestSummaryAll(t *testing.T) {
	s, db := setupServer(t)

	db.InsertAnswer(domain.Answer{Date: "2024-04-30", Slot: "06:00", Action: "work", Delta: 1})
	db.InsertAnswer(domain.Answer{Date: "2024-05-01", Slot: "06:00", Action: "work", Delta: 1})

	var rows []domain.DailySummary
	getJSON(t, s.Handler(), "/summary_all", &rows)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Date != "2024-05-01" {
		t.Errorf("rows not newest first: %v", rows[0].Date)
	}
}

func TestBackupNow(t *testing.T) {
	s, _ := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, "/backup_now", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("missing Content-Disposition header")
	}
	if w.Body.Len() == 0 {
		t.Error("empty backup body")
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := setupServer(t)
	s.EnableMetrics()

	w := getJSON(t, s.Handler(), "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
