// Package metrics provides the Prometheus collector for batch runs.
//
// For one-shot runs the collector only feeds the end-of-run summary; in
// watch and schedule mode the /metrics endpoint exposes counters across
// runs so scrape-based monitoring sees compliance drift over time.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"infoprom/poaudit/pkg/config"
)

// Collector records batch-run metrics into a Prometheus registry.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	casesEvaluated *prometheus.CounterVec
	violations     *prometheus.CounterVec
	filesProcessed *prometheus.CounterVec
	runDuration    prometheus.Histogram
}

// NewCollector creates a collector registered against the given registry,
// or a fresh registry when nil.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	namespace := cfg.Namespace
	if namespace == "" {
		namespace = "poaudit"
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
		casesEvaluated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: cfg.Subsystem,
			Name:      "cases_evaluated_total",
			Help:      "Evaluated cases by procurement category and compliance result.",
		}, []string{"category", "result"}),
		violations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: cfg.Subsystem,
			Name:      "violations_total",
			Help:      "Rule violations by procurement category and reason.",
		}, []string{"category", "reason"}),
		filesProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: cfg.Subsystem,
			Name:      "files_processed_total",
			Help:      "Processed input files by outcome.",
		}, []string{"status"}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: cfg.Subsystem,
			Name:      "run_duration_seconds",
			Help:      "Duration of complete batch runs.",
			Buckets:   []float64{1, 5, 15, 60, 300, 900, 3600},
		}),
	}

	registry.MustRegister(c.casesEvaluated, c.violations, c.filesProcessed, c.runDuration)
	return c
}

// RecordCase records one evaluated case and its violations.
func (c *Collector) RecordCase(category string, compliant bool, violations []string) {
	if !c.config.Enabled {
		return
	}
	result := "compliant"
	if !compliant {
		result = "non_compliant"
	}
	c.casesEvaluated.WithLabelValues(category, result).Inc()
	for _, reason := range violations {
		c.violations.WithLabelValues(category, reason).Inc()
	}
}

// RecordFile records one processed input file ("ok", "skipped", "failed").
func (c *Collector) RecordFile(status string) {
	if !c.config.Enabled {
		return
	}
	c.filesProcessed.WithLabelValues(status).Inc()
}

// ObserveRunDuration records the duration of one batch run.
func (c *Collector) ObserveRunDuration(d time.Duration) {
	if !c.config.Enabled {
		return
	}
	c.runDuration.Observe(d.Seconds())
}

// Registry returns the collector's registry for handler wiring.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
