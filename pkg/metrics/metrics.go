// Package metrics exposes Prometheus instrumentation for the report pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Pipeline provides observability for batch report runs.
type Pipeline struct {
	// BatchRuns counts batch executions by result ("completed" or "failed").
	BatchRuns *prometheus.CounterVec
	// Recipients counts per-recipient iterations by outcome ("delivered" or
	// "skipped").
	Recipients *prometheus.CounterVec
	// StageDuration observes per-stage latency ("render", "encrypt",
	// "deliver").
	StageDuration *prometheus.HistogramVec
}

// NewPipeline creates a Pipeline metrics instance registered on the default
// registerer.
func NewPipeline() *Pipeline {
	return &Pipeline{
		BatchRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "reporter_batch_runs_total",
			Help: "Total batch report runs by result",
		}, []string{"result"}),

		Recipients: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "reporter_recipients_total",
			Help: "Total per-recipient iterations by outcome",
		}, []string{"outcome"}),

		StageDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reporter_stage_duration_seconds",
			Help:    "Duration of pipeline stages per recipient",
			Buckets: DefaultBuckets,
		}, []string{"stage"}),
	}
}

// ObserveStage records the duration of one pipeline stage.
func (p *Pipeline) ObserveStage(stage string, d time.Duration) {
	if p != nil {
		p.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
	}
}

// IncrementRecipient records a per-recipient iteration outcome.
func (p *Pipeline) IncrementRecipient(outcome string) {
	if p != nil {
		p.Recipients.WithLabelValues(outcome).Inc()
	}
}

// IncrementBatch records a batch run result.
func (p *Pipeline) IncrementBatch(result string) {
	if p != nil {
		p.BatchRuns.WithLabelValues(result).Inc()
	}
}
