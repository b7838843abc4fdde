package classifier

import (
	"gonum.org/v1/gonum/mat"
)

type logisticRegression struct {
	opts  Options
	state fitState
	model *linear
}

func newLogisticRegression(opts Options) *logisticRegression {
	return &logisticRegression{opts: opts}
}

func (m *logisticRegression) Name() string { return LR.String() }

func (m *logisticRegression) Fit(X mat.Matrix, y []int) error {
	if err := m.state.begin(); err != nil {
		return err
	}
	rows, _, _, err := checkTraining(X, y)
	if err != nil {
		return err
	}

	lin, err := fitLinear(rows, y, m.opts.C, m.opts.MaxIter, logLoss)
	if err != nil {
		return err
	}
	m.model = lin
	m.state.done()
	return nil
}

func (m *logisticRegression) PredictProba(X mat.Matrix) ([]float64, error) {
	if err := m.state.ready(); err != nil {
		return nil, err
	}
	rows, err := checkPredict(X, len(m.model.w))
	if err != nil {
		return nil, err
	}

	proba := make([]float64, len(rows))
	for i, row := range rows {
		proba[i] = sigmoid(m.model.decision(row))
	}
	return proba, nil
}

func (m *logisticRegression) Predict(X mat.Matrix) ([]int, error) {
	proba, err := m.PredictProba(X)
	if err != nil {
		return nil, err
	}
	return threshold(proba), nil
}
