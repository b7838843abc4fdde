package classifier

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const multiModalHead = 32

// multiModal embeds source and destination vectors with separate towers and
// classifies [h_src, h_dst, h_src*h_dst] with a dense head.
type multiModal struct {
	opts  Options
	state fitState
	dim   int
	src   *stack
	dst   *stack
	head  *stack
	out   *layer
}

func newMultiModal(opts Options) *multiModal {
	return &multiModal{opts: opts}
}

func (m *multiModal) Name() string { return MultiModalFFNN.String() }

type pairTrace struct {
	hs, hd []float64
	src    *trace
	dst    *trace
	head   *trace
	joint  []float64
	hidden []float64
}

func (m *multiModal) forward(xs, xd []float64, rng *rand.Rand) (float64, *pairTrace) {
	tr := &pairTrace{}
	tr.hs, tr.src = m.src.forward(xs, rng)
	tr.hd, tr.dst = m.dst.forward(xd, rng)

	h := len(tr.hs)
	tr.joint = make([]float64, 3*h)
	copy(tr.joint, tr.hs)
	copy(tr.joint[h:], tr.hd)
	floats.MulTo(tr.joint[2*h:], tr.hs, tr.hd)

	tr.hidden, tr.head = m.head.forward(tr.joint, rng)
	z := make([]float64, 1)
	m.out.forward(z, tr.hidden)
	return z[0], tr
}

func (m *multiModal) backward(tr *pairTrace, dz float64) {
	dHidden := make([]float64, m.out.in)
	m.out.backward(dHidden, tr.hidden, []float64{dz})
	dJoint := m.head.backward(tr.head, dHidden)

	h := len(tr.hs)
	dhs := make([]float64, h)
	dhd := make([]float64, h)
	copy(dhs, dJoint[:h])
	copy(dhd, dJoint[h:2*h])
	for i := range h {
		g := dJoint[2*h+i]
		dhs[i] += g * tr.hd[i]
		dhd[i] += g * tr.hs[i]
	}

	m.src.backward(tr.src, dhs)
	m.dst.backward(tr.dst, dhd)
}

func (m *multiModal) FitPair(src, dst mat.Matrix, y []int) error {
	if err := m.state.begin(); err != nil {
		return err
	}
	if err := checkPair(src, dst); err != nil {
		return err
	}
	srcRows, _, _, err := checkTraining(src, y)
	if err != nil {
		return err
	}
	dstRows := rowsOf(dst)
	if err := checkFinite(dstRows); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(m.opts.Seed))
	m.dim = len(srcRows[0])
	m.src = newStack(m.dim, m.opts.Hidden, m.opts.Dropout, rng)
	m.dst = newStack(m.dim, m.opts.Hidden, m.opts.Dropout, rng)
	joint := 3 * m.src.outDim(m.dim)
	m.head = newStack(joint, []int{multiModalHead}, m.opts.Dropout, rng)
	m.out = newLayer(m.head.outDim(joint), 1, rng)

	var params []*layer
	params = append(params, m.src.layers...)
	params = append(params, m.dst.layers...)
	params = append(params, m.head.layers...)
	params = append(params, m.out)

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
			z, tr := m.forward(srcRows[i], dstRows[i], drop)
			yi := float64(y[i])
			if training {
				m.backward(tr, sigmoid(z)-yi)
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

func (m *multiModal) PredictProbaPair(src, dst mat.Matrix) ([]float64, error) {
	if err := m.state.ready(); err != nil {
		return nil, err
	}
	if err := checkPair(src, dst); err != nil {
		return nil, err
	}
	srcRows, err := checkPredict(src, m.dim)
	if err != nil {
		return nil, err
	}
	dstRows := rowsOf(dst)
	if err := checkFinite(dstRows); err != nil {
		return nil, err
	}

	proba := make([]float64, len(srcRows))
	for i := range srcRows {
		z, _ := m.forward(srcRows[i], dstRows[i], nil)
		proba[i] = sigmoid(z)
	}
	return proba, nil
}

func (m *multiModal) PredictPair(src, dst mat.Matrix) ([]int, error) {
	proba, err := m.PredictProbaPair(src, dst)
	if err != nil {
		return nil, err
	}
	return threshold(proba), nil
}
