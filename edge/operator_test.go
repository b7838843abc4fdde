package edge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperator(t *testing.T) {
	for _, op := range Operators() {
		got, err := ParseOperator(op.String())
		require.NoError(t, err)
		assert.Equal(t, op, got)
	}

	for _, name := range []string{"cosine", "Hadamard", "weightedl1", ""} {
		_, err := ParseOperator(name)
		var ue *UnknownOperatorError
		require.ErrorAs(t, err, &ue, name)
		assert.Equal(t, name, ue.Name)
	}
}

func TestOperator_Apply(t *testing.T) {
	a := []float64{1, 0}
	b := []float64{0, 1}

	tests := []struct {
		op   Operator
		want []float64
	}{
		{Hadamard, []float64{0, 0}},
		{Average, []float64{0.5, 0.5}},
		{WeightedL1, []float64{1, 1}},
		{WeightedL2, []float64{1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			dst := make([]float64, 2)
			tt.op.Apply(dst, a, b)
			assert.Equal(t, tt.want, dst)
		})
	}
}

func TestOperator_Symmetric(t *testing.T) {
	a := []float64{0.3, -2, 5.5, 0}
	b := []float64{-1.25, 4, 0.5, 7}

	for _, op := range Operators() {
		ab := make([]float64, len(a))
		ba := make([]float64, len(a))
		op.Apply(ab, a, b)
		op.Apply(ba, b, a)
		assert.InDeltaSlice(t, ab, ba, 1e-12, op.String())
	}
}

func TestOperator_Text(t *testing.T) {
	b, err := WeightedL2.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "weightedL2", string(b))

	var op Operator
	require.NoError(t, op.UnmarshalText([]byte("average")))
	assert.Equal(t, Average, op)

	assert.Error(t, op.UnmarshalText([]byte("cosine")))
	_, err = Operator(42).MarshalText()
	assert.Error(t, err)
	assert.Panics(t, func() { Operator(42).Apply(nil, nil, nil) })
}
