package metrics

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfusion(t *testing.T) {
	actual := []int{1, 1, 1, 0, 0, 0, 0}
	predicted := []int{1, 0, 1, 0, 1, 0, 0}

	cm, err := Confusion(actual, predicted)
	require.NoError(t, err)

	assert.Equal(t, 3, cm.TN())
	assert.Equal(t, 1, cm.FP())
	assert.Equal(t, 1, cm.FN())
	assert.Equal(t, 2, cm.TP())
	assert.Equal(t, len(actual), cm.Total())

	_, err = Confusion([]int{1}, []int{1, 0})
	assert.ErrorIs(t, err, ErrLengthMismatch)

	_, err = Confusion([]int{2}, []int{1})
	assert.ErrorIs(t, err, ErrInvalidLabel)
	_, err = Confusion([]int{0}, []int{-1})
	assert.ErrorIs(t, err, ErrInvalidLabel)
}

func TestRates(t *testing.T) {
	cm := ConfusionMatrix{{3, 1}, {1, 2}}

	assertValue(t, 5.0/7, Accuracy(cm))
	assertValue(t, 0.75, Specificity(cm))
	assertValue(t, 2.0/3, Sensitivity(cm))
	assertValue(t, 4.0/6, F1(cm))
}

func TestPerfectClassifier(t *testing.T) {
	labels := []int{1, 1, 0, 0}
	s, err := Evaluate(labels, labels, []float64{0.9, 0.8, 0.2, 0.1})
	require.NoError(t, err)

	assert.Equal(t, ConfusionMatrix{{2, 0}, {0, 2}}, s.Confusion)
	for _, name := range Names() {
		v, ok := s.Get(name)
		require.True(t, ok)
		assertValue(t, 1, v)
	}
}

func TestNoNegatives(t *testing.T) {
	labels := []int{1, 1, 1}
	s, err := Evaluate(labels, []int{1, 0, 1}, []float64{0.9, 0.4, 0.7})
	require.NoError(t, err)

	assert.False(t, s.Specificity.IsDefined())
	assert.False(t, s.ROCAUC.IsDefined())
	assert.False(t, s.AveragePrecision.IsDefined())
	assertValue(t, 2.0/3, s.Sensitivity)
	assertValue(t, 2.0/3, s.Accuracy)
	assertValue(t, 0.8, s.F1)
}

func TestUndefinedWhenEmpty(t *testing.T) {
	var cm ConfusionMatrix
	for _, v := range []Value{Accuracy(cm), Specificity(cm), Sensitivity(cm), F1(cm)} {
		assert.False(t, v.IsDefined())
	}
}

func TestROCAUC(t *testing.T) {
	labels := []int{0, 0, 1, 1}
	scores := []float64{0.1, 0.4, 0.35, 0.8}

	auc, err := ROCAUC(labels, scores)
	require.NoError(t, err)
	assertValue(t, 0.75, auc)
	assert.Equal(t, []float64{0.1, 0.4, 0.35, 0.8}, scores, "input must not be reordered")

	auc, err = ROCAUC([]int{1, 0, 1, 0}, []float64{0.5, 0.5, 0.5, 0.5})
	require.NoError(t, err)
	assertValue(t, 0.5, auc)

	auc, err = ROCAUC([]int{1, 1, 0, 0}, []float64{0.1, 0.2, 0.8, 0.9})
	require.NoError(t, err)
	assertValue(t, 0, auc)

	_, err = ROCAUC([]int{1}, nil)
	assert.ErrorIs(t, err, ErrLengthMismatch)
}

func TestAveragePrecision(t *testing.T) {
	ap, err := AveragePrecision([]int{0, 0, 1, 1}, []float64{0.1, 0.4, 0.35, 0.8})
	require.NoError(t, err)
	assertValue(t, 5.0/6, ap)

	ap, err = AveragePrecision([]int{1, 0, 1, 0}, []float64{0.5, 0.5, 0.5, 0.5})
	require.NoError(t, err)
	assertValue(t, 0.5, ap)

	ap, err = AveragePrecision([]int{0, 0}, []float64{0.3, 0.2})
	require.NoError(t, err)
	assert.Equal(t, Undefined, ap)

	_, err = AveragePrecision([]int{3, 0}, []float64{0.3, 0.2})
	assert.ErrorIs(t, err, ErrInvalidLabel)
}

func TestRanking_NaNScores(t *testing.T) {
	nan := math.NaN()
	labels := []int{1, 1, 0, 0}

	_, err := AveragePrecision(labels, []float64{nan, nan, nan, nan})
	assert.ErrorIs(t, err, ErrNaNScore)

	_, err = ROCAUC(labels, []float64{0.9, nan, 0.1, 0.2})
	assert.ErrorIs(t, err, ErrNaNScore)

	_, err = Evaluate(labels, []int{0, 0, 0, 0}, []float64{nan, nan, nan, nan})
	assert.ErrorIs(t, err, ErrNaNScore)
}

func TestValue(t *testing.T) {
	assert.Equal(t, "undefined", Undefined.String())
	assert.Equal(t, "0.25", Defined(0.25).String())
	assert.Equal(t, -1.0, Undefined.Or(-1))
	assert.True(t, Defined(0).IsDefined())

	b, err := json.Marshal(map[string]Value{"a": Defined(0.5), "b": Undefined})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":0.5,"b":null}`, string(b))

	var got map[string]Value
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, Defined(0.5), got["a"])
	assert.Equal(t, Undefined, got["b"])

	dv, err := Undefined.Value()
	require.NoError(t, err)
	assert.Nil(t, dv)
	dv, err = Defined(2).Value()
	require.NoError(t, err)
	assert.Equal(t, 2.0, dv)
}

func assertValue(t *testing.T, want float64, got Value) {
	t.Helper()
	v, ok := got.Float()
	require.True(t, ok, "expected defined value")
	assert.InDelta(t, want, v, 1e-9)
}
