package classifier

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

// marginLoss returns the loss and its derivative in z for sign s in {-1, +1}.
type marginLoss func(s, z float64) (loss, dz float64)

func logLoss(s, z float64) (float64, float64) {
	return softplus(-s * z), -s * sigmoid(-s*z)
}

func squaredHinge(s, z float64) (float64, float64) {
	m := 1 - s*z
	if m <= 0 {
		return 0, 0
	}
	return m * m, -2 * s * m
}

// linear is a hyperplane w·x + b.
type linear struct {
	w []float64
	b float64
}

func (l *linear) decision(x []float64) float64 {
	return floats.Dot(l.w, x) + l.b
}

// fitLinear minimizes 0.5*|w|^2 + c*sum(loss) with L-BFGS. The intercept is
// not regularised.
func fitLinear(rows [][]float64, y []int, c float64, maxIter int, loss marginLoss) (*linear, error) {
	d := len(rows[0])

	objective := func(x, grad []float64) float64 {
		w, b := x[:d], x[d]
		f := 0.5 * floats.Dot(w, w)
		if grad != nil {
			copy(grad[:d], w)
			grad[d] = 0
		}
		for i, row := range rows {
			s := float64(2*y[i] - 1)
			l, dz := loss(s, floats.Dot(w, row)+b)
			f += c * l
			if grad != nil && dz != 0 {
				floats.AddScaled(grad[:d], c*dz, row)
				grad[d] += c * dz
			}
		}
		return f
	}

	p := optimize.Problem{
		Func: func(x []float64) float64 { return objective(x, nil) },
		Grad: func(grad, x []float64) { objective(x, grad) },
	}
	settings := &optimize.Settings{
		GradientThreshold: 1e-6,
		MajorIterations:   maxIter,
	}

	x, err := solution(optimize.Minimize(p, make([]float64, d+1), settings, &optimize.LBFGS{}))
	if err != nil {
		return nil, err
	}
	return &linear{w: append([]float64(nil), x[:d]...), b: x[d]}, nil
}
