package classifier

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned for a nil or empty feature matrix.
	ErrEmptyInput = errors.New("classifier: empty input")

	// ErrShapeMismatch is returned when labels, rows or columns disagree.
	ErrShapeMismatch = errors.New("classifier: shape mismatch")

	// ErrInvalidLabel is returned for a label other than 0 or 1.
	ErrInvalidLabel = errors.New("classifier: label must be 0 or 1")

	// ErrSingleClass is returned when the training labels hold one class only.
	ErrSingleClass = errors.New("classifier: training data must contain both classes")

	// ErrTooFewSamples is returned when a class is too small for the
	// cross-validated calibration.
	ErrTooFewSamples = errors.New("classifier: too few samples per class")

	// ErrNotFitted is returned by predictions on an unfitted model.
	ErrNotFitted = errors.New("classifier: model is not fitted")

	// ErrAlreadyFitted is returned by a second call to Fit.
	ErrAlreadyFitted = errors.New("classifier: model is already fitted")

	// ErrPairModel is returned by New for MultiModalFFNN, which only exists as
	// a PairModel.
	ErrPairModel = errors.New("classifier: MultiModalFFNN is a pair model; use NewPair")

	// ErrNonFinite is returned for a NaN or infinite feature value.
	ErrNonFinite = errors.New("classifier: non-finite feature value")

	// ErrDiverged is returned when training ends with non-finite parameters
	// or the optimizer fails away from a minimum.
	ErrDiverged = errors.New("classifier: training diverged")
)

// UnknownClassifierError reports a classifier name outside the supported set.
type UnknownClassifierError struct {
	Name string
}

func (e *UnknownClassifierError) Error() string {
	return fmt.Sprintf("classifier: unknown classifier %q (want LR, RF, SVM, MLP, FFNN or MultiModalFFNN)", e.Name)
}
