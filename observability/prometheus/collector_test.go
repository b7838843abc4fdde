package prometheus

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordEmbed("train", 10, time.Millisecond, nil)
	c.RecordEmbed("train", 5, time.Millisecond, nil)
	c.RecordEmbed("test", 7, time.Millisecond, errors.New("boom"))
	c.RecordFit("SVM", 15, time.Second, nil)
	c.RecordPredict("test", 4, time.Millisecond, nil)
	c.RecordRun(time.Second, nil)
	c.RecordRun(time.Second, errors.New("boom"))

	assert.Equal(t, 15.0, testutil.ToFloat64(c.edges.WithLabelValues("train")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.edges.WithLabelValues("test")))
	assert.Equal(t, 4.0, testutil.ToFloat64(c.rows.WithLabelValues("test")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runs.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.runs.WithLabelValues("error")))

	n, err := testutil.GatherAndCount(reg, "linkeval_operation_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}

func TestCollectorDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)

	assert.Panics(t, func() { NewCollector(reg) })
}
