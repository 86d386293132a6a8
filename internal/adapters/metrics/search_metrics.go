package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/geode-planner/internal/domain/production"
)

// SearchMetricsCollector handles production search and evaluation metrics
type SearchMetricsCollector struct {
	solveDuration  *prometheus.HistogramVec
	solvesTotal    *prometheus.CounterVec
	statesExpanded *prometheus.CounterVec
	memoHits       *prometheus.CounterVec
	lastMemoSize   *prometheus.GaugeVec

	evaluationsTotal   *prometheus.CounterVec
	evaluationDuration *prometheus.HistogramVec
	lastScore          *prometheus.GaugeVec
}

// NewSearchMetricsCollector creates a new search metrics collector
func NewSearchMetricsCollector() *SearchMetricsCollector {
	return &SearchMetricsCollector{
		solveDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: searchSubsystem,
				Name:      "solve_duration_seconds",
				Help:      "Time spent searching one blueprint",
				Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"mode", "status"},
		),
		solvesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: searchSubsystem,
				Name:      "solves_total",
				Help:      "Blueprint searches by scoring mode and status",
			},
			[]string{"mode", "status"},
		),
		statesExpanded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: searchSubsystem,
				Name:      "states_expanded_total",
				Help:      "Production states expanded by the search",
			},
			[]string{"mode"},
		),
		memoHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: searchSubsystem,
				Name:      "memo_hits_total",
				Help:      "Searches answered from the memo",
			},
			[]string{"mode"},
		),
		lastMemoSize: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: searchSubsystem,
				Name:      "last_memo_entries",
				Help:      "Memo size of the most recent search",
			},
			[]string{"mode"},
		),
		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: searchSubsystem,
				Name:      "evaluations_total",
				Help:      "Catalog evaluations by scoring mode",
			},
			[]string{"mode"},
		),
		evaluationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: searchSubsystem,
				Name:      "evaluation_duration_seconds",
				Help:      "Wall time of a whole catalog evaluation",
				Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 10, 30, 60, 120},
			},
			[]string{"mode"},
		),
		lastScore: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: searchSubsystem,
				Name:      "last_score",
				Help:      "Aggregate score of the most recent evaluation",
			},
			[]string{"mode"},
		),
	}
}

// Register registers all search metrics with the Prometheus registry
func (c *SearchMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.solveDuration,
		c.solvesTotal,
		c.statesExpanded,
		c.memoHits,
		c.lastMemoSize,
		c.evaluationsTotal,
		c.evaluationDuration,
		c.lastScore,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordSolve records the statistics of one blueprint search
func (c *SearchMetricsCollector) RecordSolve(mode string, stats production.SearchStats, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	c.solveDuration.WithLabelValues(mode, status).Observe(stats.Elapsed.Seconds())
	c.solvesTotal.WithLabelValues(mode, status).Inc()
	c.statesExpanded.WithLabelValues(mode).Add(float64(stats.Expanded))
	c.memoHits.WithLabelValues(mode).Add(float64(stats.MemoHits))
	c.lastMemoSize.WithLabelValues(mode).Set(float64(stats.MemoSize))
}

// RecordEvaluation records the outcome of one catalog evaluation
func (c *SearchMetricsCollector) RecordEvaluation(mode string, blueprints int, score int64, duration time.Duration) {
	c.evaluationsTotal.WithLabelValues(mode).Inc()
	c.evaluationDuration.WithLabelValues(mode).Observe(duration.Seconds())
	c.lastScore.WithLabelValues(mode).Set(float64(score))
}
