// Package api provides the balloonlog HTTP server.
// It exposes the REST contract the questioning client consumes: answer
// recording, answered-slot reconciliation, the bonus flow, altitude
// aggregation, summaries, and backup download.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/sorakaya/balloonlog/internal/infra/sqlite"
)

// Server is the balloonlog HTTP API server.
type Server struct {
	db             *sqlite.DB
	log            zerolog.Logger
	floor          int
	backupDir      string
	metricsEnabled bool
	clock          func() time.Time
}

// NewServer creates a new API server over the given store.
func NewServer(db *sqlite.DB, log zerolog.Logger) *Server {
	return &Server{
		db:    db,
		log:   log,
		clock: time.Now,
	}
}

// SetFloor sets the altitude display floor reported by /current_altitude.
func (s *Server) SetFloor(floor int) { s.floor = floor }

// SetBackupDir sets where /backup_now writes snapshots.
func (s *Server) SetBackupDir(dir string) { s.backupDir = dir }

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetClock overrides the wall clock (tests).
func (s *Server) SetClock(clock func() time.Time) { s.clock = clock }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)
	r.Use(requestLogger(s.log))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
		})
	})

	// Core contract
	r.Post("/log", s.handleLog)
	r.Get("/answered_slots", s.handleAnsweredSlots)
	r.Get("/bonus_status", s.handleBonusStatus)
	r.Post("/apply_bonus", s.handleApplyBonus)
	r.Get("/bonus_stats", s.handleBonusStats)
	r.Get("/current_altitude", s.handleCurrentAltitude)
	r.Get("/summary", s.handleSummary)
	r.Get("/summary_all", s.handleSummaryAll)
	r.Get("/backup_now", s.handleBackupNow)

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{
		"status":  "error",
		"message": msg,
	})
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs one line per request.
func requestLogger(log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("elapsed", time.Since(start)).
				Msg("request")
		})
	}
}
