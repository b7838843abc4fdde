package classifier

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// feedForward backs MLP and FFNN: a ReLU stack followed by one logit unit
// trained with binary cross-entropy.
type feedForward struct {
	kind  Kind
	opts  Options
	state fitState
	dim   int
	body  *stack
	head  *layer
}

func newFeedForward(kind Kind, opts Options) *feedForward {
	return &feedForward{kind: kind, opts: opts}
}

func (m *feedForward) Name() string { return m.kind.String() }

func (m *feedForward) Fit(X mat.Matrix, y []int) error {
	if err := m.state.begin(); err != nil {
		return err
	}
	rows, _, _, err := checkTraining(X, y)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(m.opts.Seed))
	m.dim = len(rows[0])
	m.body = newStack(m.dim, m.opts.Hidden, m.opts.Dropout, rng)
	m.head = newLayer(m.body.outDim(m.dim), 1, rng)

	params := append(append([]*layer(nil), m.body.layers...), m.head)
	t := &trainer{
		params:    params,
		epochs:    m.opts.Epochs,
		batchSize: m.opts.BatchSize,
		patience:  m.opts.Patience,
		lr:        m.opts.LearningRate,
		rng:       rng,
		step: func(i int, training bool) float64 {
			var drop *rand.Rand
			if training {
				drop = rng
			}
			h, tr := m.body.forward(rows[i], drop)
			z := m.logit(h)
			yi := float64(y[i])
			if training {
				dh := make([]float64, m.head.in)
				m.head.backward(dh, h, []float64{sigmoid(z) - yi})
				m.body.backward(tr, dh)
			}
			return bceWithLogits(z, yi)
		},
	}

	trainIdx, valIdx := holdout(y, m.opts.ValidationFraction, m.opts.Patience > 0, rng)
	t.run(trainIdx, valIdx)
	if !finiteLayers(params) {
		return ErrDiverged
	}

	m.state.done()
	return nil
}

func (m *feedForward) logit(h []float64) float64 {
	z := make([]float64, 1)
	m.head.forward(z, h)
	return z[0]
}

func (m *feedForward) PredictProba(X mat.Matrix) ([]float64, error) {
	if err := m.state.ready(); err != nil {
		return nil, err
	}
	rows, err := checkPredict(X, m.dim)
	if err != nil {
		return nil, err
	}

	proba := make([]float64, len(rows))
	for i, row := range rows {
		h, _ := m.body.forward(row, nil)
		proba[i] = sigmoid(m.logit(h))
	}
	return proba, nil
}

func (m *feedForward) Predict(X mat.Matrix) ([]int, error) {
	proba, err := m.PredictProba(X)
	if err != nil {
		return nil, err
	}
	return threshold(proba), nil
}
