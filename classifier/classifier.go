package classifier

import (
	"gonum.org/v1/gonum/mat"
)

// Model is a binary classifier over edge vectors.
type Model interface {
	// Name returns the classifier name (e.g. "SVM").
	Name() string
	// Fit trains on X with labels y in {0, 1}. It may be called once.
	Fit(X mat.Matrix, y []int) error
	// Predict returns hard labels, 1 iff the probability exceeds 0.5.
	Predict(X mat.Matrix) ([]int, error)
	// PredictProba returns the probability of the positive class per row.
	PredictProba(X mat.Matrix) ([]float64, error)
}

// PairModel is a binary classifier over (source, destination) vector pairs.
type PairModel interface {
	Name() string
	FitPair(src, dst mat.Matrix, y []int) error
	PredictPair(src, dst mat.Matrix) ([]int, error)
	PredictProbaPair(src, dst mat.Matrix) ([]float64, error)
}

// Kind identifies a backend.
type Kind int

const (
	LR Kind = iota
	RF
	SVM
	MLP
	FFNN
	MultiModalFFNN
)

// Default is the backend used when none, or an unknown one, is requested.
const Default = SVM

var kindNames = [...]string{
	LR:             "LR",
	RF:             "RF",
	SVM:            "SVM",
	MLP:            "MLP",
	FFNN:           "FFNN",
	MultiModalFFNN: "MultiModalFFNN",
}

// Kinds lists every backend.
func Kinds() []Kind {
	return []Kind{LR, RF, SVM, MLP, FFNN, MultiModalFFNN}
}

// ParseKind resolves a backend by its exact name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return 0, false
}

func (k Kind) String() string {
	if k < LR || k > MultiModalFFNN {
		return "unknown"
	}
	return kindNames[k]
}

// IsPair reports whether the backend consumes endpoint pairs.
func (k Kind) IsPair() bool { return k == MultiModalFFNN }

// New returns an unfitted single-input model.
func New(kind Kind, optFns ...func(*Options)) (Model, error) {
	opts := resolve(kind, optFns)

	switch kind {
	case LR:
		return newLogisticRegression(opts), nil
	case RF:
		return newRandomForest(opts), nil
	case SVM:
		return newCalibratedSVM(opts), nil
	case MLP, FFNN:
		return newFeedForward(kind, opts), nil
	case MultiModalFFNN:
		return nil, ErrPairModel
	default:
		return nil, &UnknownClassifierError{Name: kind.String()}
	}
}

// NewPair returns an unfitted MultiModalFFNN.
func NewPair(optFns ...func(*Options)) PairModel {
	return newMultiModal(resolve(MultiModalFFNN, optFns))
}

// Build returns a Model, or a PairModel for MultiModalFFNN.
func Build(kind Kind, optFns ...func(*Options)) (any, error) {
	if kind.IsPair() {
		return NewPair(optFns...), nil
	}
	return New(kind, optFns...)
}
