// Package report holds the result of one evaluation run and writes it as
// JSON, CSV or into a SQLite run history.
package report

import (
	"slices"
	"time"

	"github.com/hupe1980/linkeval/dataset"
	"github.com/hupe1980/linkeval/metrics"
)

// Mode names used in reports.
const (
	ModeWithValidation = "with_validation"
	ModeTestOnly       = "test_only"
)

// Partition is the metric block of one partition.
type Partition struct {
	Name      string         `json:"name"`
	Positives int            `json:"positives"`
	Negatives int            `json:"negatives"`
	Scores    metrics.Scores `json:"scores"`
}

// Report is the outcome of one run. Partitions are ordered train,
// validation, test; validation is absent in test-only runs.
type Report struct {
	RunID      string      `json:"run_id"`
	CreatedAt  time.Time   `json:"created_at"`
	Operator   string      `json:"operator"`
	Classifier string      `json:"classifier"`
	Mode       string      `json:"mode"`
	Partitions []Partition `json:"partitions"`
}

// Field is one flattened metric, keyed "partition.metric".
type Field struct {
	Key   string
	Value metrics.Value
}

// Add appends a partition block, keeping the canonical order.
func (r *Report) Add(p dataset.Partition, positives, negatives int, s metrics.Scores) {
	r.Partitions = append(r.Partitions, Partition{
		Name:      p.String(),
		Positives: positives,
		Negatives: negatives,
		Scores:    s,
	})
	sortPartitions(r.Partitions)
}

func sortPartitions(ps []Partition) {
	slices.SortStableFunc(ps, func(a, b Partition) int {
		return rank(a.Name) - rank(b.Name)
	})
}

// Partition returns the block for name.
func (r *Report) Partition(name string) (Partition, bool) {
	for _, p := range r.Partitions {
		if p.Name == name {
			return p, true
		}
	}
	return Partition{}, false
}

// Get returns one metric of one partition.
func (r *Report) Get(partition, metric string) (metrics.Value, bool) {
	p, ok := r.Partition(partition)
	if !ok {
		return metrics.Undefined, false
	}
	return p.Scores.Get(metric)
}

// Flatten lists every metric of every present partition in report order.
func (r *Report) Flatten() []Field {
	fields := make([]Field, 0, len(r.Partitions)*len(metrics.Names()))
	for _, p := range r.Partitions {
		for _, name := range metrics.Names() {
			v, _ := p.Scores.Get(name)
			fields = append(fields, Field{Key: p.Name + "." + name, Value: v})
		}
	}
	return fields
}

// Columns lists every flattened key a report can have, in order.
func Columns() []string {
	var cols []string
	for _, p := range []dataset.Partition{dataset.Train, dataset.Validation, dataset.Test} {
		for _, name := range metrics.Names() {
			cols = append(cols, p.String()+"."+name)
		}
	}
	return cols
}

func rank(name string) int {
	switch name {
	case dataset.Train.String():
		return 0
	case dataset.Validation.String():
		return 1
	case dataset.Test.String():
		return 2
	default:
		return 3
	}
}
