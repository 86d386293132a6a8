package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/geode-planner/internal/domain/production"
)

const (
	// Namespace for all metrics
	namespace = "geode_planner"
	// Subsystem for production search metrics
	searchSubsystem = "search"
	// Subsystem for mediator request metrics
	appSubsystem = "app"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalSearchCollector is set by SetGlobalSearchCollector when metrics are enabled
	globalSearchCollector SearchMetricsRecorder
)

// SearchMetricsRecorder is what application code records search outcomes through
type SearchMetricsRecorder interface {
	RecordSolve(mode string, stats production.SearchStats, err error)
	RecordEvaluation(mode string, blueprints int, score int64, duration time.Duration)
}

// InitRegistry initializes the Prometheus registry.
// Call once at startup if metrics are enabled.
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry, nil if not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// Reset drops the registry and the global collector
func Reset() {
	Registry = nil
	globalSearchCollector = nil
}

// SetGlobalSearchCollector sets the global search metrics collector
func SetGlobalSearchCollector(collector SearchMetricsRecorder) {
	globalSearchCollector = collector
}

// RecordSolve records one blueprint search globally
func RecordSolve(mode string, stats production.SearchStats, err error) {
	if globalSearchCollector != nil {
		globalSearchCollector.RecordSolve(mode, stats, err)
	}
}

// RecordEvaluation records one catalog evaluation globally
func RecordEvaluation(mode string, blueprints int, score int64, duration time.Duration) {
	if globalSearchCollector != nil {
		globalSearchCollector.RecordEvaluation(mode, blueprints, score, duration)
	}
}

// WriteTextfile writes the registry in text exposition format for the node
// exporter's textfile collector
func WriteTextfile(path string) error {
	if Registry == nil {
		return fmt.Errorf("metrics registry is not initialized")
	}
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
