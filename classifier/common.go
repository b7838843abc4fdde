package classifier

import (
	"errors"
	"fmt"
	"math"
	"sync/atomic"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// fitState enforces the fit-once lifecycle.
type fitState struct {
	started atomic.Bool
	fitted  atomic.Bool
}

func (s *fitState) begin() error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyFitted
	}
	return nil
}

func (s *fitState) done() { s.fitted.Store(true) }

func (s *fitState) ready() error {
	if !s.fitted.Load() {
		return ErrNotFitted
	}
	return nil
}

// rowsOf returns the rows of X. Dense inputs are aliased, not copied.
func rowsOf(X mat.Matrix) [][]float64 {
	r, c := X.Dims()
	rows := make([][]float64, r)
	if rm, ok := X.(mat.RawMatrixer); ok {
		raw := rm.RawMatrix()
		for i := range rows {
			rows[i] = raw.Data[i*raw.Stride : i*raw.Stride+c]
		}
		return rows
	}
	for i := range rows {
		rows[i] = mat.Row(nil, i, X)
	}
	return rows
}

func dims(X mat.Matrix) (int, int) {
	if X == nil {
		return 0, 0
	}
	return X.Dims()
}

// checkTraining validates a training set and returns its rows and class counts.
func checkTraining(X mat.Matrix, y []int) ([][]float64, int, int, error) {
	r, c := dims(X)
	if r == 0 || c == 0 {
		return nil, 0, 0, ErrEmptyInput
	}
	if len(y) != r {
		return nil, 0, 0, fmt.Errorf("%w: %d rows, %d labels", ErrShapeMismatch, r, len(y))
	}

	npos, nneg := 0, 0
	for i, l := range y {
		switch l {
		case 0:
			nneg++
		case 1:
			npos++
		default:
			return nil, 0, 0, fmt.Errorf("%w: index %d is %d", ErrInvalidLabel, i, l)
		}
	}
	if npos == 0 || nneg == 0 {
		return nil, 0, 0, ErrSingleClass
	}
	rows := rowsOf(X)
	if err := checkFinite(rows); err != nil {
		return nil, 0, 0, err
	}
	return rows, npos, nneg, nil
}

func checkPredict(X mat.Matrix, dim int) ([][]float64, error) {
	r, c := dims(X)
	if r == 0 || c == 0 {
		return nil, ErrEmptyInput
	}
	if c != dim {
		return nil, fmt.Errorf("%w: model has %d features, input has %d", ErrShapeMismatch, dim, c)
	}
	rows := rowsOf(X)
	if err := checkFinite(rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func checkFinite(rows [][]float64) error {
	for i, row := range rows {
		if !finite(row) {
			return fmt.Errorf("%w: row %d", ErrNonFinite, i)
		}
	}
	return nil
}

func checkPair(src, dst mat.Matrix) error {
	sr, sc := dims(src)
	dr, dc := dims(dst)
	if sr == 0 || sc == 0 || dr == 0 || dc == 0 {
		return ErrEmptyInput
	}
	if sr != dr || sc != dc {
		return fmt.Errorf("%w: source %dx%d, destination %dx%d", ErrShapeMismatch, sr, sc, dr, dc)
	}
	return nil
}

func threshold(proba []float64) []int {
	labels := make([]int, len(proba))
	for i, p := range proba {
		if p > 0.5 {
			labels[i] = 1
		}
	}
	return labels
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// softplus is log(1+exp(z)) without overflow.
func softplus(z float64) float64 {
	if z > 0 {
		return z + math.Log1p(math.Exp(-z))
	}
	return math.Log1p(math.Exp(z))
}

// bceWithLogits is the binary cross-entropy of label y for logit z.
func bceWithLogits(z, y float64) float64 {
	return softplus(z) - y*z
}

// finiteLayers reports whether every weight and bias of layers is finite.
func finiteLayers(layers []*layer) bool {
	for _, l := range layers {
		if !finite(l.w) || !finite(l.b) {
			return false
		}
	}
	return true
}

// solution returns the location reached by optimize.Minimize. A line search
// that stalls next to a stationary point still yields a usable location.
func solution(res *optimize.Result, err error) ([]float64, error) {
	if res == nil {
		return nil, err
	}
	if !finite(res.X) || math.IsNaN(res.F) || math.IsInf(res.F, 0) {
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDiverged, err)
		}
		return nil, ErrDiverged
	}
	if err == nil {
		return res.X, nil
	}
	if !errors.Is(err, optimize.ErrNoProgress) && !errors.Is(err, optimize.ErrLinesearcherFailure) {
		return nil, fmt.Errorf("%w: %s: %w", ErrDiverged, res.Status, err)
	}
	if len(res.Gradient) == 0 || !finite(res.Gradient) || floats.Norm(res.Gradient, math.Inf(1)) > stallTolerance*(1+math.Abs(res.F)) {
		return nil, fmt.Errorf("%w: %w", ErrDiverged, err)
	}
	return res.X, nil
}

// stallTolerance bounds the relative gradient norm at which a stalled line
// search is accepted as converged.
const stallTolerance = 1e-3

func finite(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
