package classifier

import (
	"math/rand"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// randomForest averages the leaf probabilities of bootstrapped CART trees.
type randomForest struct {
	opts  Options
	state fitState
	dim   int
	trees []*tree
}

func newRandomForest(opts Options) *randomForest {
	return &randomForest{opts: opts}
}

func (m *randomForest) Name() string { return RF.String() }

func (m *randomForest) Fit(X mat.Matrix, y []int) error {
	if err := m.state.begin(); err != nil {
		return err
	}
	rows, _, _, err := checkTraining(X, y)
	if err != nil {
		return err
	}

	trees := make([]*tree, m.opts.Trees)
	g := new(errgroup.Group)
	g.SetLimit(m.opts.Workers)
	for t := range trees {
		g.Go(func() error {
			rng := rand.New(rand.NewSource(m.opts.Seed + int64(t)*7919))
			idx := make([]int, len(rows))
			for i := range idx {
				idx[i] = rng.Intn(len(rows))
			}
			trees[t] = newTreeBuilder(rows, y, m.opts, rng).fit(idx)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	m.dim = len(rows[0])
	m.trees = trees
	m.state.done()
	return nil
}

func (m *randomForest) PredictProba(X mat.Matrix) ([]float64, error) {
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
		for _, t := range m.trees {
			sum += t.proba(row)
		}
		proba[i] = sum / float64(len(m.trees))
	}
	return proba, nil
}

func (m *randomForest) Predict(X mat.Matrix) ([]int, error) {
	proba, err := m.PredictProba(X)
	if err != nil {
		return nil, err
	}
	return threshold(proba), nil
}
