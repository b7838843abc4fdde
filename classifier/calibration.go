package classifier

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/optimize"
)

// platt maps a decision value f to P(y=1) = 1/(1+exp(a*f+b)).
type platt struct {
	a, b float64
}

func (p platt) proba(f float64) float64 {
	return sigmoid(-(p.a*f + p.b))
}

// fitPlatt fits the sigmoid on held-out decision values using Platt's
// smoothed targets.
func fitPlatt(f []float64, y []int) (platt, error) {
	var npos, nneg float64
	for _, l := range y {
		if l == 1 {
			npos++
		} else {
			nneg++
		}
	}
	hi := (npos + 1) / (npos + 2)
	lo := 1 / (nneg + 2)

	t := make([]float64, len(y))
	for i, l := range y {
		if l == 1 {
			t[i] = hi
		} else {
			t[i] = lo
		}
	}

	objective := func(x, grad []float64) float64 {
		var loss, ga, gb float64
		for i, fi := range f {
			z := x[0]*fi + x[1]
			loss += t[i]*softplus(z) + (1-t[i])*softplus(-z)
			dz := sigmoid(z) - (1 - t[i])
			ga += dz * fi
			gb += dz
		}
		if grad != nil {
			grad[0], grad[1] = ga, gb
		}
		return loss
	}

	p := optimize.Problem{
		Func: func(x []float64) float64 { return objective(x, nil) },
		Grad: func(grad, x []float64) { objective(x, grad) },
	}
	init := []float64{0, math.Log((nneg + 1) / (npos + 1))}

	x, err := solution(optimize.Minimize(p, init, &optimize.Settings{GradientThreshold: 1e-8, MajorIterations: 100}, &optimize.LBFGS{}))
	if err != nil {
		return platt{}, err
	}
	return platt{a: x[0], b: x[1]}, nil
}

// stratifiedFolds assigns each sample to one of k folds so that every fold
// receives a near equal share of each class.
func stratifiedFolds(y []int, k int, rng *rand.Rand) []int {
	var byClass [2][]int
	for i, l := range y {
		byClass[l] = append(byClass[l], i)
	}

	folds := make([]int, len(y))
	for _, idx := range byClass {
		rng.Shuffle(len(idx), func(a, b int) { idx[a], idx[b] = idx[b], idx[a] })
		for j, i := range idx {
			folds[i] = j % k
		}
	}
	return folds
}
