package classifier

import (
	"math"
	"math/rand"
	"slices"

	"gonum.org/v1/gonum/floats"
)

// layer is a dense layer z = W x + b with Adam state. W is row-major out×in.
type layer struct {
	in, out int
	w, b    []float64
	gw, gb  []float64
	mw, vw  []float64
	mb, vb  []float64
}

func newLayer(in, out int, rng *rand.Rand) *layer {
	l := &layer{
		in: in, out: out,
		w: make([]float64, in*out), b: make([]float64, out),
		gw: make([]float64, in*out), gb: make([]float64, out),
		mw: make([]float64, in*out), vw: make([]float64, in*out),
		mb: make([]float64, out), vb: make([]float64, out),
	}
	std := math.Sqrt(2 / float64(in))
	for i := range l.w {
		l.w[i] = rng.NormFloat64() * std
	}
	return l
}

func (l *layer) forward(dst, x []float64) {
	for o := range l.out {
		dst[o] = l.b[o] + floats.Dot(l.w[o*l.in:(o+1)*l.in], x)
	}
}

// backward accumulates the parameter gradients for dz and writes the input
// gradient into dx when dx is non-nil.
func (l *layer) backward(dx, x, dz []float64) {
	if dx != nil {
		clear(dx)
	}
	for o, g := range dz {
		if g == 0 {
			continue
		}
		floats.AddScaled(l.gw[o*l.in:(o+1)*l.in], g, x)
		l.gb[o] += g
		if dx != nil {
			floats.AddScaled(dx, g, l.w[o*l.in:(o+1)*l.in])
		}
	}
}

func (l *layer) step(opt *adam, scale float64) {
	opt.update(l.w, l.gw, l.mw, l.vw, scale)
	opt.update(l.b, l.gb, l.mb, l.vb, scale)
	clear(l.gw)
	clear(l.gb)
}

type adam struct {
	lr, beta1, beta2, eps float64
	t                     int
}

func newAdam(lr float64) *adam {
	return &adam{lr: lr, beta1: 0.9, beta2: 0.999, eps: 1e-8}
}

func (a *adam) update(params, grads, m, v []float64, scale float64) {
	c1 := 1 - math.Pow(a.beta1, float64(a.t))
	c2 := 1 - math.Pow(a.beta2, float64(a.t))
	for i, g := range grads {
		g *= scale
		m[i] = a.beta1*m[i] + (1-a.beta1)*g
		v[i] = a.beta2*v[i] + (1-a.beta2)*g*g
		params[i] -= a.lr * (m[i] / c1) / (math.Sqrt(v[i]/c2) + a.eps)
	}
}

// stack is a sequence of dense ReLU layers with inverted dropout.
type stack struct {
	layers  []*layer
	dropout float64
}

func newStack(in int, sizes []int, dropout float64, rng *rand.Rand) *stack {
	s := &stack{dropout: dropout}
	for _, size := range sizes {
		s.layers = append(s.layers, newLayer(in, size, rng))
		in = size
	}
	return s
}

func (s *stack) outDim(in int) int {
	if len(s.layers) == 0 {
		return in
	}
	return s.layers[len(s.layers)-1].out
}

// trace records what backward needs from one forward pass.
type trace struct {
	in   [][]float64
	pre  [][]float64
	mask [][]float64
}

// forward runs the stack. Dropout is applied only when rng is non-nil.
func (s *stack) forward(x []float64, rng *rand.Rand) ([]float64, *trace) {
	tr := &trace{}
	cur := x
	for _, l := range s.layers {
		pre := make([]float64, l.out)
		l.forward(pre, cur)

		act := make([]float64, l.out)
		for i, v := range pre {
			if v > 0 {
				act[i] = v
			}
		}

		var mask []float64
		if rng != nil && s.dropout > 0 {
			keep := 1 - s.dropout
			mask = make([]float64, l.out)
			for i := range act {
				if rng.Float64() < keep {
					mask[i] = 1 / keep
				}
				act[i] *= mask[i]
			}
		}

		tr.in = append(tr.in, cur)
		tr.pre = append(tr.pre, pre)
		tr.mask = append(tr.mask, mask)
		cur = act
	}
	return cur, tr
}

// backward propagates dOut through the stack and returns the input gradient.
func (s *stack) backward(tr *trace, dOut []float64) []float64 {
	d := dOut
	for k := len(s.layers) - 1; k >= 0; k-- {
		l := s.layers[k]
		dz := make([]float64, l.out)
		for i := range dz {
			if tr.pre[k][i] <= 0 {
				continue
			}
			g := d[i]
			if m := tr.mask[k]; m != nil {
				g *= m[i]
			}
			dz[i] = g
		}
		dx := make([]float64, l.in)
		l.backward(dx, tr.in[k], dz)
		d = dx
	}
	return d
}

// trainer runs mini-batch Adam with optional early stopping.
type trainer struct {
	params    []*layer
	epochs    int
	batchSize int
	patience  int
	lr        float64
	rng       *rand.Rand

	// step evaluates example i and returns its loss. In training mode it
	// also accumulates gradients.
	step func(i int, training bool) float64
}

func (t *trainer) run(trainIdx, valIdx []int) {
	opt := newAdam(t.lr)
	order := slices.Clone(trainIdx)
	earlyStop := len(valIdx) > 0 && t.patience > 0

	best := math.Inf(1)
	var snapshot [][]float64
	wait := 0

	for range t.epochs {
		t.rng.Shuffle(len(order), func(a, b int) { order[a], order[b] = order[b], order[a] })
		for lo := 0; lo < len(order); lo += t.batchSize {
			hi := min(lo+t.batchSize, len(order))
			for _, i := range order[lo:hi] {
				t.step(i, true)
			}
			opt.t++
			scale := 1 / float64(hi-lo)
			for _, l := range t.params {
				l.step(opt, scale)
			}
		}

		if !earlyStop {
			continue
		}
		var loss float64
		for _, i := range valIdx {
			loss += t.step(i, false)
		}
		loss /= float64(len(valIdx))
		if loss < best-1e-6 {
			best = loss
			snapshot = t.snapshot()
			wait = 0
			continue
		}
		wait++
		if wait >= t.patience {
			break
		}
	}

	if snapshot != nil {
		t.restore(snapshot)
	}
}

func (t *trainer) snapshot() [][]float64 {
	out := make([][]float64, 0, 2*len(t.params))
	for _, l := range t.params {
		out = append(out, slices.Clone(l.w), slices.Clone(l.b))
	}
	return out
}

func (t *trainer) restore(s [][]float64) {
	for k, l := range t.params {
		copy(l.w, s[2*k])
		copy(l.b, s[2*k+1])
	}
}

// holdout splits indices into train and validation sets, taking frac of
// each class for validation while keeping at least one example of each
// class for training.
func holdout(y []int, frac float64, enabled bool, rng *rand.Rand) (train, val []int) {
	var byClass [2][]int
	for i, l := range y {
		byClass[l] = append(byClass[l], i)
	}
	for _, idx := range byClass {
		rng.Shuffle(len(idx), func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })
		n := 0
		if enabled {
			n = min(int(math.Ceil(frac*float64(len(idx)))), len(idx)-1)
		}
		val = append(val, idx[:n]...)
		train = append(train, idx[n:]...)
	}
	return train, val
}
