package classifier

import "runtime"

// Options tunes the backends. Zero values select the backend default;
// Dropout and Patience accept a negative value to disable the feature.
type Options struct {
	// Seed drives every random choice (bootstrap, folds, weights, batches).
	Seed int64

	// C is the inverse regularisation strength of LR and SVM. Default 1.
	C float64
	// MaxIter bounds the optimizer iterations of LR (100) and SVM (1000).
	MaxIter int

	// Trees is the forest size. Default 100.
	Trees int
	// MaxDepth limits tree depth. Default unlimited.
	MaxDepth int
	// MinSamplesLeaf is the minimum number of samples per leaf. Default 1.
	MinSamplesLeaf int
	// Workers bounds concurrent tree and fold fitting. Default GOMAXPROCS.
	Workers int

	// CalibrationFolds is the number of stratified folds for SVM
	// calibration. Default 5, reduced to the minority class size.
	CalibrationFolds int

	// Hidden are the hidden layer widths of MLP (64), FFNN (128, 64, 32)
	// and the MultiModalFFNN towers (64, 32).
	Hidden []int
	// Epochs is the number of passes over the training data.
	Epochs int
	// BatchSize is the mini-batch size. Default 32.
	BatchSize int
	// LearningRate is the Adam step size. Default 0.001.
	LearningRate float64
	// Dropout is the drop probability after each hidden layer.
	Dropout float64
	// Patience is the number of epochs without hold-out improvement before
	// training stops.
	Patience int
	// ValidationFraction is the stratified hold-out share used for early
	// stopping. Default 0.1.
	ValidationFraction float64
}

func resolve(kind Kind, optFns []func(*Options)) Options {
	o := Options{}
	for _, fn := range optFns {
		fn(&o)
	}

	if o.C <= 0 {
		o.C = 1
	}
	if o.MaxIter <= 0 {
		o.MaxIter = 100
		if kind == SVM {
			o.MaxIter = 1000
		}
	}
	if o.Trees <= 0 {
		o.Trees = 100
	}
	if o.MinSamplesLeaf <= 0 {
		o.MinSamplesLeaf = 1
	}
	if o.Workers <= 0 {
		o.Workers = runtime.GOMAXPROCS(0)
	}
	if o.CalibrationFolds <= 0 {
		o.CalibrationFolds = 5
	}
	if o.BatchSize <= 0 {
		o.BatchSize = 32
	}
	if o.LearningRate <= 0 {
		o.LearningRate = 1e-3
	}
	if o.ValidationFraction <= 0 || o.ValidationFraction >= 1 {
		o.ValidationFraction = 0.1
	}

	switch kind {
	case MLP:
		if len(o.Hidden) == 0 {
			o.Hidden = []int{64}
		}
		if o.Epochs <= 0 {
			o.Epochs = 200
		}
	case FFNN, MultiModalFFNN:
		if len(o.Hidden) == 0 {
			o.Hidden = []int{128, 64, 32}
			if kind == MultiModalFFNN {
				o.Hidden = []int{64, 32}
			}
		}
		if o.Epochs <= 0 {
			o.Epochs = 100
		}
		if o.Dropout == 0 {
			o.Dropout = 0.3
		}
		if o.Patience == 0 {
			o.Patience = 5
		}
	}
	if o.Dropout < 0 {
		o.Dropout = 0
	}
	if o.Patience < 0 {
		o.Patience = 0
	}
	return o
}
