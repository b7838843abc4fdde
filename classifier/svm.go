package classifier

import (
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

type calibratedFold struct {
	svm     *linear
	sigmoid platt
}

// calibratedSVM is a linear SVM on the squared hinge loss, calibrated with
// Platt scaling over stratified folds. Each fold trains an SVM on the other
// folds and fits its sigmoid on the held-out one; probabilities are the
// mean over folds.
type calibratedSVM struct {
	opts  Options
	state fitState
	dim   int
	folds []calibratedFold
}

func newCalibratedSVM(opts Options) *calibratedSVM {
	return &calibratedSVM{opts: opts}
}

func (m *calibratedSVM) Name() string { return SVM.String() }

func (m *calibratedSVM) Fit(X mat.Matrix, y []int) error {
	if err := m.state.begin(); err != nil {
		return err
	}
	rows, npos, nneg, err := checkTraining(X, y)
	if err != nil {
		return err
	}

	k := min(m.opts.CalibrationFolds, npos, nneg)
	if k < 2 {
		return fmt.Errorf("%w: calibration needs 2 samples of each class, have %d positive and %d negative", ErrTooFewSamples, npos, nneg)
	}

	assign := stratifiedFolds(y, k, rand.New(rand.NewSource(m.opts.Seed)))
	folds := make([]calibratedFold, k)

	g := new(errgroup.Group)
	g.SetLimit(m.opts.Workers)
	for f := range k {
		g.Go(func() error {
			var trainRows, heldRows [][]float64
			var trainY, heldY []int
			for i, row := range rows {
				if assign[i] == f {
					heldRows = append(heldRows, row)
					heldY = append(heldY, y[i])
				} else {
					trainRows = append(trainRows, row)
					trainY = append(trainY, y[i])
				}
			}

			svm, err := fitLinear(trainRows, trainY, m.opts.C, m.opts.MaxIter, squaredHinge)
			if err != nil {
				return fmt.Errorf("fold %d: %w", f, err)
			}
			dec := make([]float64, len(heldRows))
			for i, row := range heldRows {
				dec[i] = svm.decision(row)
			}
			sig, err := fitPlatt(dec, heldY)
			if err != nil {
				return fmt.Errorf("fold %d calibration: %w", f, err)
			}
			folds[f] = calibratedFold{svm: svm, sigmoid: sig}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	m.dim = len(rows[0])
	m.folds = folds
	m.state.done()
	return nil
}

func (m *calibratedSVM) PredictProba(X mat.Matrix) ([]float64, error) {
	if err := m.state.ready(); err != nil {
		return nil, err
	}
	rows, err := checkPredict(X, m.dim)
	if err != nil {
		return nil, err
	}

	proba := make([]float64, len(rows))
	for i, row := range rows {
		var sum float64
		for _, f := range m.folds {
			sum += f.sigmoid.proba(f.svm.decision(row))
		}
		proba[i] = sum / float64(len(m.folds))
	}
	return proba, nil
}

func (m *calibratedSVM) Predict(X mat.Matrix) ([]int, error) {
	proba, err := m.PredictProba(X)
	if err != nil {
		return nil, err
	}
	return threshold(proba), nil
}
