package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"time"

	"github.com/sorakaya/balloonlog/internal/domain"
)

// ─── Answer Recording ───────────────────────────────────────────────────────

type logRequest struct {
	Action string `json:"action"`
	Delta  *int   `json:"delta"`
	Slot   string `json:"slot"`
	Date   string `json:"date"`
}

// handleLog records one answer.
// POST /log — {action, delta?, slot, date?}
func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	var req logRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Action == "" || req.Slot == "" {
		writeError(w, http.StatusBadRequest, "action and slot are required")
		return
	}

	delta := 0
	if req.Slot == domain.BonusSlotMarker {
		// Bonus answers are tagged with the sentinel marker and a prompt
		// key instead of an activity label.
		if !isBonusKey(req.Action) {
			writeError(w, http.StatusBadRequest, "unknown bonus question")
			return
		}
		if req.Delta != nil {
			delta = *req.Delta
		}
	} else {
		if _, err := time.Parse(domain.SlotLabelFormat, req.Slot); err != nil {
			writeError(w, http.StatusBadRequest, domain.ErrInvalidSlot.Error())
			return
		}
		activity, err := domain.ParseActivity(req.Action)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		delta = activity.Delta()
		if req.Delta != nil {
			delta = *req.Delta
		}
	}

	date := req.Date
	if date == "" {
		date = domain.DayFor(s.clock())
	} else if _, err := time.Parse(domain.DateFormat, date); err != nil {
		writeError(w, http.StatusBadRequest, domain.ErrInvalidDate.Error())
		return
	}

	err := s.db.InsertAnswer(domain.Answer{
		Date:   date,
		Slot:   req.Slot,
		Action: req.Action,
		Delta:  delta,
	})
	if err != nil {
		s.log.Error().Err(err).Str("slot", req.Slot).Msg("record answer")
		writeError(w, http.StatusInternalServerError, "failed to record answer")
		return
	}

	answersRecorded.WithLabelValues(req.Action).Inc()
	s.refreshAltitudeGauge()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnsweredSlots returns the slots already answered for a day.
// GET /answered_slots?date=YYYY-MM-DD
func (s *Server) handleAnsweredSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "date query parameter is required")
		return
	}
	if _, err := time.Parse(domain.DateFormat, date); err != nil {
		writeError(w, http.StatusBadRequest, domain.ErrInvalidDate.Error())
		return
	}

	slots, err := s.db.AnsweredSlots(date)
	if err != nil {
		s.log.Error().Err(err).Str("date", date).Msg("fetch answered slots")
		writeError(w, http.StatusInternalServerError, "failed to fetch answered slots")
		return
	}
	if slots == nil {
		slots = []string{}
	}
	writeJSON(w, http.StatusOK, slots)
}

// ─── Bonus Flow ─────────────────────────────────────────────────────────────

// handleBonusStatus reports whether today's bonus flow already ran.
// GET /bonus_status
func (s *Server) handleBonusStatus(w http.ResponseWriter, r *http.Request) {
	day := domain.DayFor(s.clock())
	given, err := s.db.BonusGiven(day)
	if err != nil {
		s.log.Error().Err(err).Str("date", day).Msg("fetch bonus status")
		writeError(w, http.StatusInternalServerError, "failed to fetch bonus status")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"bonusGiven": given})
}

type applyBonusRequest struct {
	Bonus int  `json:"bonus"`
	Q1    bool `json:"q1"`
	Q2    bool `json:"q2"`
}

// handleApplyBonus records the day's bonus outcome, at most once.
// POST /apply_bonus — {bonus, q1, q2}
func (s *Server) handleApplyBonus(w http.ResponseWriter, r *http.Request) {
	var req applyBonusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Bonus < 0 || req.Bonus > 2*domain.BonusPointsPerYes {
		writeError(w, http.StatusBadRequest, "bonus out of range")
		return
	}

	day := domain.DayFor(s.clock())
	err := s.db.ApplyBonus(domain.BonusRecord{
		Date:  day,
		Q1:    req.Q1,
		Q2:    req.Q2,
		Bonus: req.Bonus,
	})
	if errors.Is(err, domain.ErrBonusAlreadyGiven) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		s.log.Error().Err(err).Str("date", day).Msg("apply bonus")
		writeError(w, http.StatusInternalServerError, "failed to apply bonus")
		return
	}

	bonusApplied.Inc()
	s.refreshAltitudeGauge()
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleBonusStats returns per-prompt yes/total counts over all days.
// GET /bonus_stats
func (s *Server) handleBonusStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.BonusStats()
	if err != nil {
		s.log.Error().Err(err).Msg("fetch bonus stats")
		writeError(w, http.StatusInternalServerError, "failed to fetch bonus stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ─── Aggregation ────────────────────────────────────────────────────────────

// handleCurrentAltitude returns the authoritative altitude total, clamped
// at the configured floor.
// GET /current_altitude
func (s *Server) handleCurrentAltitude(w http.ResponseWriter, r *http.Request) {
	total, err := s.db.TotalAltitude()
	if err != nil {
		s.log.Error().Err(err).Msg("fetch altitude")
		writeError(w, http.StatusInternalServerError, "failed to fetch altitude")
		return
	}
	if total < s.floor {
		total = s.floor
	}
	writeJSON(w, http.StatusOK, map[string]int{"altitude": total})
}

// handleSummary returns the current logical day's aggregated row.
// GET /summary
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	day := domain.DayFor(s.clock())
	summary, ok, err := s.db.Summary(day)
	if err != nil {
		s.log.Error().Err(err).Str("date", day).Msg("fetch summary")
		writeError(w, http.StatusInternalServerError, "failed to fetch summary")
		return
	}
	if !ok {
		writeJSON(w, http.StatusOK, map[string]string{"summary": "no records"})
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// handleSummaryAll returns every day's row, newest first.
// GET /summary_all
func (s *Server) handleSummaryAll(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.SummaryAll()
	if err != nil {
		s.log.Error().Err(err).Msg("fetch summary all")
		writeError(w, http.StatusInternalServerError, "failed to fetch summaries")
		return
	}
	if rows == nil {
		rows = []domain.DailySummary{}
	}
	writeJSON(w, http.StatusOK, rows)
}

// handleBackupNow snapshots the database and serves it as a download.
// GET /backup_now
func (s *Server) handleBackupNow(w http.ResponseWriter, r *http.Request) {
	path, err := s.db.BackupTo(s.backupDir)
	if err != nil {
		s.log.Error().Err(err).Msg("create backup")
		writeError(w, http.StatusInternalServerError, "failed to create backup")
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+filepath.Base(path)+`"`)
	w.Header().Set("Content-Type", "application/octet-stream")
	http.ServeFile(w, r, path)
}

// refreshAltitudeGauge pushes the current clamped total into the gauge.
func (s *Server) refreshAltitudeGauge() {
	total, err := s.db.TotalAltitude()
	if err != nil {
		return
	}
	if total < s.floor {
		total = s.floor
	}
	altitudeGauge.Set(float64(total))
}

// isBonusKey reports whether action names one of the fixed bonus prompts.
func isBonusKey(action string) bool {
	for _, q := range domain.BonusQuestions() {
		if q.Key == action {
			return true
		}
	}
	return false
}
