package gate

import (
	"testing"

	"github.com/hupe1980/linkeval/dataset"
	"github.com/hupe1980/linkeval/metrics"
	"github.com/hupe1980/linkeval/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReport(t *testing.T) *report.Report {
	t.Helper()
	r := &report.Report{RunID: "r", Operator: "hadamard", Classifier: "LR", Mode: report.ModeTestOnly}

	train, err := metrics.Evaluate([]int{1, 1, 0, 0}, []int{1, 1, 0, 1}, []float64{0.9, 0.8, 0.3, 0.6})
	require.NoError(t, err)
	test, err := metrics.Evaluate([]int{1, 1}, []int{1, 0}, []float64{0.9, 0.2})
	require.NoError(t, err)

	r.Add(dataset.Train, 2, 2, train)
	r.Add(dataset.Test, 2, 0, test)
	return r
}

func TestGate_Check(t *testing.T) {
	r := testReport(t)

	tests := []struct {
		expr string
		want bool
	}{
		{"train.auroc == 1.0", true},
		{"train.accuracy >= 0.75 && train.fp == 1", true},
		{"test.sensitivity > 0.6", false},
		{"test.specificity == null", true},
		{"!has(validation.auroc) || validation.auroc > 0.9", true},
		{`classifier == "LR" && operator == "hadamard"`, true},
		{`mode == "with_validation"`, false},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			g, err := Compile(tt.expr)
			require.NoError(t, err)
			got, err := g.Check(r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompile_Errors(t *testing.T) {
	for _, expr := range []string{"train.auroc >", "unknown_var > 1", `"text"`} {
		_, err := Compile(expr)
		assert.Error(t, err, expr)
	}
	assert.Panics(t, func() { MustCompile("(") })
}

func TestCheck_UndefinedComparison(t *testing.T) {
	g := MustCompile("test.specificity > 0.5")
	_, err := g.Check(testReport(t))
	assert.Error(t, err)
}

func TestCheck_OptionalMetricGuard(t *testing.T) {
	guard := MustCompile("!has(validation.auroc) || validation.auroc == null || validation.auroc > 0.75")

	ok, err := guard.Check(testReport(t))
	require.NoError(t, err, "missing partition")
	assert.True(t, ok)

	r := testReport(t)
	single, err := metrics.Evaluate([]int{1, 1}, []int{1, 1}, []float64{0.9, 0.8})
	require.NoError(t, err)
	r.Add(dataset.Validation, 2, 0, single)

	ok, err = guard.Check(r)
	require.NoError(t, err, "undefined metric")
	assert.True(t, ok)

	_, err = MustCompile("!has(validation.auroc) || validation.auroc > 0.75").Check(r)
	assert.Error(t, err, "has() is true for an undefined metric")

	r = testReport(t)
	low, err := metrics.Evaluate([]int{1, 0}, []int{0, 1}, []float64{0.2, 0.7})
	require.NoError(t, err)
	r.Add(dataset.Validation, 1, 1, low)

	ok, err = guard.Check(r)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckAll(t *testing.T) {
	r := testReport(t)
	ok := MustCompile("train.auroc > 0.5")
	bad := MustCompile("test.f1 > 0.9")
	broken := MustCompile("validation.auroc > 0.5")

	assert.NoError(t, CheckAll(r, ok))

	err := CheckAll(r, ok, bad, broken)
	require.Error(t, err)
	var fe *FailedError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "test.f1 > 0.9", fe.Expr)
	assert.Contains(t, err.Error(), "validation.auroc")
}
