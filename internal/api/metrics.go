package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Prometheus Metrics ─────────────────────────────────────────────────────

var (
	answersRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "balloonlog_answers_recorded_total",
		Help: "Answers recorded, by action label.",
	}, []string{"action"})

	bonusApplied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "balloonlog_bonus_applied_total",
		Help: "Bonus records applied.",
	})

	altitudeGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "balloonlog_altitude",
		Help: "Current floor-clamped altitude total.",
	})
)
