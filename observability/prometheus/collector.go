// Package prometheus exports linkeval run metrics to Prometheus.
package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/linkeval"
)

const namespace = "linkeval"

var _ linkeval.MetricsCollector = (*Collector)(nil)

// Collector implements linkeval.MetricsCollector.
type Collector struct {
	opLatency *prometheus.HistogramVec
	edges     *prometheus.CounterVec
	rows      *prometheus.CounterVec
	runs      *prometheus.CounterVec
}

// NewCollector creates the metrics and registers them with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewCollector(reg prometheus.Registerer) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &Collector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Duration of pipeline stages.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "target", "status"}),
		edges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "embedded_edges_total",
			Help:      "Edges turned into edge vectors, by partition.",
		}, []string{"partition"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "predicted_rows_total",
			Help:      "Examples scored by the classifier, by partition.",
		}, []string{"partition"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Completed evaluation runs.",
		}, []string{"status"}),
	}

	reg.MustRegister(c.opLatency, c.edges, c.rows, c.runs)

	return c
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// RecordEmbed implements linkeval.MetricsCollector.
func (c *Collector) RecordEmbed(partition string, edges int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("embed", partition, status(err)).Observe(d.Seconds())
	if err == nil {
		c.edges.WithLabelValues(partition).Add(float64(edges))
	}
}

// RecordFit implements linkeval.MetricsCollector.
func (c *Collector) RecordFit(classifier string, _ int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("fit", classifier, status(err)).Observe(d.Seconds())
}

// RecordPredict implements linkeval.MetricsCollector.
func (c *Collector) RecordPredict(partition string, rows int, d time.Duration, err error) {
	c.opLatency.WithLabelValues("predict", partition, status(err)).Observe(d.Seconds())
	if err == nil {
		c.rows.WithLabelValues(partition).Add(float64(rows))
	}
}

// RecordRun implements linkeval.MetricsCollector.
func (c *Collector) RecordRun(d time.Duration, err error) {
	c.opLatency.WithLabelValues("run", "", status(err)).Observe(d.Seconds())
	c.runs.WithLabelValues(status(err)).Inc()
}
