package metrics

import (
	"errors"
	"fmt"
)

var (
	// ErrLengthMismatch is returned when paired slices differ in length.
	ErrLengthMismatch = errors.New("metrics: length mismatch")

	// ErrInvalidLabel is returned for a label other than 0 or 1.
	ErrInvalidLabel = errors.New("metrics: label must be 0 or 1")

	// ErrNaNScore is returned when a ranking metric receives a NaN score.
	ErrNaNScore = errors.New("metrics: score is NaN")
)

// ConfusionMatrix counts examples by [actual][predicted] label.
type ConfusionMatrix [2][2]int

// Confusion tallies actual against predicted labels.
func Confusion(actual, predicted []int) (ConfusionMatrix, error) {
	var cm ConfusionMatrix
	if len(actual) != len(predicted) {
		return cm, fmt.Errorf("%w: %d labels, %d predictions", ErrLengthMismatch, len(actual), len(predicted))
	}
	for i, a := range actual {
		p := predicted[i]
		if a&^1 != 0 || p&^1 != 0 {
			return ConfusionMatrix{}, fmt.Errorf("%w: index %d (actual %d, predicted %d)", ErrInvalidLabel, i, a, p)
		}
		cm[a][p]++
	}
	return cm, nil
}

// TN returns true negatives.
func (cm ConfusionMatrix) TN() int { return cm[0][0] }

// FP returns false positives.
func (cm ConfusionMatrix) FP() int { return cm[0][1] }

// FN returns false negatives.
func (cm ConfusionMatrix) FN() int { return cm[1][0] }

// TP returns true positives.
func (cm ConfusionMatrix) TP() int { return cm[1][1] }

// Total returns the number of examples counted.
func (cm ConfusionMatrix) Total() int {
	return cm[0][0] + cm[0][1] + cm[1][0] + cm[1][1]
}

// Accuracy is (TP+TN)/total.
func Accuracy(cm ConfusionMatrix) Value {
	return ratio(cm.TP()+cm.TN(), cm.Total())
}

// Specificity is TN/(TN+FP).
func Specificity(cm ConfusionMatrix) Value {
	return ratio(cm.TN(), cm.TN()+cm.FP())
}

// Sensitivity is TP/(TP+FN).
func Sensitivity(cm ConfusionMatrix) Value {
	return ratio(cm.TP(), cm.TP()+cm.FN())
}

// F1 is 2TP/(2TP+FP+FN).
func F1(cm ConfusionMatrix) Value {
	return ratio(2*cm.TP(), 2*cm.TP()+cm.FP()+cm.FN())
}
