package classifier

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// blobs returns n positives around +sep and n negatives around -sep,
// positives first.
func blobs(n, d int, sep float64, seed int64) (*mat.Dense, []int) {
	rng := rand.New(rand.NewSource(seed))
	X := mat.NewDense(2*n, d, nil)
	y := make([]int, 2*n)
	for i := range 2 * n {
		center := -sep
		if i < n {
			center = sep
			y[i] = 1
		}
		for j := range d {
			X.Set(i, j, center+rng.NormFloat64())
		}
	}
	return X, y
}

func fast(o *Options) {
	o.Epochs = 100
	o.LearningRate = 0.005
	o.Trees = 25
	o.Seed = 7
}

func accuracy(pred, y []int) float64 {
	ok := 0
	for i := range y {
		if pred[i] == y[i] {
			ok++
		}
	}
	return float64(ok) / float64(len(y))
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, ok := ParseKind(k.String())
		require.True(t, ok)
		assert.Equal(t, k, got)
	}

	for _, name := range []string{"svm", "XGBoost", ""} {
		_, ok := ParseKind(name)
		assert.False(t, ok, name)
	}
	assert.Equal(t, "unknown", Kind(42).String())
	assert.Equal(t, SVM, Default)
	assert.True(t, MultiModalFFNN.IsPair())
	assert.False(t, LR.IsPair())
}

func TestNew(t *testing.T) {
	for _, k := range []Kind{LR, RF, SVM, MLP, FFNN} {
		m, err := New(k)
		require.NoError(t, err)
		assert.Equal(t, k.String(), m.Name())
	}

	_, err := New(MultiModalFFNN)
	assert.ErrorIs(t, err, ErrPairModel)

	_, err = New(Kind(42))
	var ue *UnknownClassifierError
	assert.ErrorAs(t, err, &ue)
}

func TestBuild(t *testing.T) {
	m, err := Build(MultiModalFFNN)
	require.NoError(t, err)
	_, ok := m.(PairModel)
	assert.True(t, ok)

	m, err = Build(RF)
	require.NoError(t, err)
	_, ok = m.(Model)
	assert.True(t, ok)
}

func TestModels_Separable(t *testing.T) {
	X, y := blobs(60, 4, 1.5, 1)
	Xt, yt := blobs(30, 4, 1.5, 2)

	for _, k := range []Kind{LR, RF, SVM, MLP, FFNN} {
		t.Run(k.String(), func(t *testing.T) {
			m, err := New(k, fast)
			require.NoError(t, err)
			require.NoError(t, m.Fit(X, y))

			proba, err := m.PredictProba(Xt)
			require.NoError(t, err)
			require.Len(t, proba, len(yt))
			for _, p := range proba {
				assert.GreaterOrEqual(t, p, 0.0)
				assert.LessOrEqual(t, p, 1.0)
			}

			pred, err := m.Predict(Xt)
			require.NoError(t, err)
			for i, p := range proba {
				assert.Equal(t, p > 0.5, pred[i] == 1)
			}
			assert.GreaterOrEqual(t, accuracy(pred, yt), 0.9)
		})
	}
}

func TestModel_Lifecycle(t *testing.T) {
	X, y := blobs(10, 3, 2, 3)

	for _, k := range []Kind{LR, RF, SVM, MLP, FFNN} {
		t.Run(k.String(), func(t *testing.T) {
			m, err := New(k, fast)
			require.NoError(t, err)

			_, err = m.Predict(X)
			assert.ErrorIs(t, err, ErrNotFitted)

			require.NoError(t, m.Fit(X, y))
			assert.ErrorIs(t, m.Fit(X, y), ErrAlreadyFitted)

			_, err = m.PredictProba(mat.NewDense(2, 5, nil))
			assert.ErrorIs(t, err, ErrShapeMismatch)
		})
	}
}

func TestFit_InvalidInput(t *testing.T) {
	X, y := blobs(5, 2, 1, 4)

	tests := []struct {
		name string
		X    mat.Matrix
		y    []int
		want error
	}{
		{"nil matrix", nil, nil, ErrEmptyInput},
		{"label count", X, y[:3], ErrShapeMismatch},
		{"single class", X, make([]int, 10), ErrSingleClass},
		{"non binary", X, []int{1, 0, 2, 0, 1, 0, 1, 0, 1, 0}, ErrInvalidLabel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(LR)
			require.NoError(t, err)
			assert.ErrorIs(t, m.Fit(tt.X, tt.y), tt.want)
		})
	}
}

func TestFit_NonFinite(t *testing.T) {
	X, y := blobs(10, 3, 2, 5)
	bad := mat.DenseCopyOf(X)
	bad.Set(4, 1, math.Inf(1))

	for _, k := range []Kind{LR, RF, SVM, MLP, FFNN} {
		t.Run(k.String(), func(t *testing.T) {
			m, err := New(k, fast)
			require.NoError(t, err)
			assert.ErrorIs(t, m.Fit(bad, y), ErrNonFinite)

			m, err = New(k, fast)
			require.NoError(t, err)
			require.NoError(t, m.Fit(X, y))
			_, err = m.PredictProba(bad)
			assert.ErrorIs(t, err, ErrNonFinite)
		})
	}

	t.Run("pair", func(t *testing.T) {
		src, dst, py := pairs(10, 3, 6)
		dst.Set(0, 0, math.NaN())
		assert.ErrorIs(t, NewPair(fast).FitPair(src, dst, py), ErrNonFinite)
	})
}

func TestFit_Diverged(t *testing.T) {
	unstable := func(o *Options) {
		fast(o)
		o.Epochs = 2
		o.LearningRate = math.Inf(1)
	}
	X, y := blobs(20, 3, 2, 8)

	for _, k := range []Kind{MLP, FFNN} {
		t.Run(k.String(), func(t *testing.T) {
			m, err := New(k, unstable)
			require.NoError(t, err)
			assert.ErrorIs(t, m.Fit(X, y), ErrDiverged)

			_, err = m.PredictProba(X)
			assert.ErrorIs(t, err, ErrNotFitted)
		})
	}

	t.Run("MultiModalFFNN", func(t *testing.T) {
		src, dst, py := pairs(20, 3, 9)
		assert.ErrorIs(t, NewPair(unstable).FitPair(src, dst, py), ErrDiverged)
	})
}

func TestSolution(t *testing.T) {
	result := func(x, f, g float64, status optimize.Status) *optimize.Result {
		return &optimize.Result{
			Location: optimize.Location{X: []float64{x}, F: f, Gradient: []float64{g}},
			Status:   status,
		}
	}

	x, err := solution(result(1, 2, 0, optimize.GradientThreshold), nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, x)

	x, err = solution(result(1, 2, 1e-7, optimize.Failure), optimize.ErrNoProgress)
	require.NoError(t, err, "stall next to a stationary point")
	assert.Equal(t, []float64{1}, x)

	_, err = solution(result(1, 2, 5, optimize.Failure), optimize.ErrNoProgress)
	assert.ErrorIs(t, err, ErrDiverged)

	_, err = solution(result(1, 2, 0, optimize.Failure), optimize.ErrNonDescentDirection)
	assert.ErrorIs(t, err, ErrDiverged)
	assert.ErrorIs(t, err, optimize.ErrNonDescentDirection)

	_, err = solution(result(math.NaN(), 2, 0, optimize.Success), nil)
	assert.ErrorIs(t, err, ErrDiverged)

	_, err = solution(result(0, math.Inf(1), 0, optimize.Failure), optimize.ErrNoProgress)
	assert.ErrorIs(t, err, ErrDiverged)

	cause := errors.New("boom")
	_, err = solution(nil, cause)
	assert.ErrorIs(t, err, cause)
}

func TestSVM_Calibration(t *testing.T) {
	t.Run("too few", func(t *testing.T) {
		X := mat.NewDense(3, 1, []float64{1, -1, -2})
		m, err := New(SVM)
		require.NoError(t, err)
		assert.ErrorIs(t, m.Fit(X, []int{1, 0, 0}), ErrTooFewSamples)
	})

	t.Run("two per class", func(t *testing.T) {
		X := mat.NewDense(4, 2, []float64{2, 2, 3, 1, -2, -1, -1, -3})
		y := []int{1, 1, 0, 0}
		m, err := New(SVM)
		require.NoError(t, err)
		require.NoError(t, m.Fit(X, y))

		proba, err := m.PredictProba(X)
		require.NoError(t, err)
		assert.Greater(t, proba[0], proba[2])
		assert.Greater(t, proba[1], proba[3])
	})
}

func TestStratifiedFolds(t *testing.T) {
	y := []int{1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0}
	folds := stratifiedFolds(y, 3, rand.New(rand.NewSource(1)))

	var counts [3][2]int
	for i, f := range folds {
		counts[f][y[i]]++
	}
	for f := range 3 {
		assert.GreaterOrEqual(t, counts[f][1], 1)
		assert.GreaterOrEqual(t, counts[f][0], 2)
	}
}

func TestFitPlatt(t *testing.T) {
	f := []float64{-3, -2, -1.5, -0.5, 0.5, 1, 2, 3}
	y := []int{0, 0, 0, 0, 1, 1, 1, 1}

	p, err := fitPlatt(f, y)
	require.NoError(t, err)
	assert.Less(t, p.a, 0.0)
	assert.Less(t, p.proba(-3), 0.5)
	assert.Greater(t, p.proba(3), 0.5)
}

func TestRandomForest_Deterministic(t *testing.T) {
	X, y := blobs(30, 5, 0.7, 5)

	run := func() []float64 {
		m, err := New(RF, fast, func(o *Options) { o.Workers = 3 })
		require.NoError(t, err)
		require.NoError(t, m.Fit(X, y))
		p, err := m.PredictProba(X)
		require.NoError(t, err)
		return p
	}
	assert.Equal(t, run(), run())
}

func TestHoldout(t *testing.T) {
	y := []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	train, val := holdout(y, 0.1, true, rand.New(rand.NewSource(1)))
	assert.Len(t, val, 3)
	assert.Len(t, train, len(y)-3)

	train, val = holdout([]int{1, 0}, 0.5, true, rand.New(rand.NewSource(1)))
	assert.Empty(t, val)
	assert.Len(t, train, 2)
}

// pairs builds endpoint pairs where positives join nodes of the same cluster.
func pairs(n, d int, seed int64) (*mat.Dense, *mat.Dense, []int) {
	rng := rand.New(rand.NewSource(seed))
	src := mat.NewDense(2*n, d, nil)
	dst := mat.NewDense(2*n, d, nil)
	y := make([]int, 2*n)
	for i := range 2 * n {
		a := float64(2*rng.Intn(2) - 1)
		b := -a
		if i < n {
			b = a
			y[i] = 1
		}
		for j := range d {
			src.Set(i, j, 2*a+0.5*rng.NormFloat64())
			dst.Set(i, j, 2*b+0.5*rng.NormFloat64())
		}
	}
	return src, dst, y
}

func TestMultiModal(t *testing.T) {
	src, dst, y := pairs(60, 4, 1)
	m := NewPair(fast)
	assert.Equal(t, "MultiModalFFNN", m.Name())

	_, err := m.PredictPair(src, dst)
	assert.ErrorIs(t, err, ErrNotFitted)

	require.NoError(t, m.FitPair(src, dst, y))
	assert.ErrorIs(t, m.FitPair(src, dst, y), ErrAlreadyFitted)

	ts, td, ty := pairs(30, 4, 2)
	pred, err := m.PredictPair(ts, td)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, accuracy(pred, ty), 0.85)

	_, err = m.PredictProbaPair(ts, mat.NewDense(3, 4, nil))
	assert.ErrorIs(t, err, ErrShapeMismatch)
}
