package generator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TracerName names the tracer Generate spans are started on.
const TracerName = "github.com/njchilds90/trickone/generator"

var (
	// generateTotal counts Generate calls by level and outcome
	generateTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trickone_generate_total",
		Help: "Total generate calls by level and result",
	}, []string{"level", "result"})

	// attemptsTotal counts candidate attempts by level
	attemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trickone_generate_attempts_total",
		Help: "Total candidate attempts by level",
	}, []string{"level"})

	rejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trickone_generate_rejections_total",
		Help: "Total rejected candidates by level and reason",
	}, []string{"level", "reason"})

	generateDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trickone_generate_duration_seconds",
		Help:    "Generate duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~800ms
	}, []string{"level"})

	attemptsPerCall = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "trickone_generate_attempts",
		Help:    "Attempts needed per successful generate call",
		Buckets: []float64{1, 2, 3, 5, 10, 20, 50},
	})
)
