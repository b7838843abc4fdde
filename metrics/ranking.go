package metrics

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// ROCAUC returns the area under the ROC curve of scores against binary
// labels. It is Undefined unless both classes are present.
func ROCAUC(labels []int, scores []float64) (Value, error) {
	npos, nneg, err := classCounts(labels, scores)
	if err != nil {
		return Undefined, err
	}
	if npos == 0 || nneg == 0 {
		return Undefined, nil
	}

	y := make([]float64, len(scores))
	copy(y, scores)
	classes := make([]bool, len(labels))
	for i, l := range labels {
		classes[i] = l == 1
	}
	stat.SortWeightedLabeled(y, classes, nil)

	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)
	return Defined(integrate.Trapezoidal(fpr, tpr)), nil
}

// AveragePrecision returns the step-wise area under the precision-recall
// curve: the sum over distinct score thresholds, highest first, of the
// recall gained times the precision at that threshold. It is Undefined
// unless both classes are present.
func AveragePrecision(labels []int, scores []float64) (Value, error) {
	npos, nneg, err := classCounts(labels, scores)
	if err != nil {
		return Undefined, err
	}
	if npos == 0 || nneg == 0 {
		return Undefined, nil
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	var (
		ap         float64
		prevRecall float64
		tp, fp     int
	)
	for k, i := range order {
		if labels[i] == 1 {
			tp++
		} else {
			fp++
		}
		if k+1 < len(order) && scores[order[k+1]] == scores[i] {
			continue
		}
		recall := float64(tp) / float64(npos)
		precision := float64(tp) / float64(tp+fp)
		ap += (recall - prevRecall) * precision
		prevRecall = recall
	}
	return Defined(ap), nil
}

func classCounts(labels []int, scores []float64) (npos, nneg int, err error) {
	if len(labels) != len(scores) {
		return 0, 0, fmt.Errorf("%w: %d labels, %d scores", ErrLengthMismatch, len(labels), len(scores))
	}
	for i, l := range labels {
		switch l {
		case 0:
			nneg++
		case 1:
			npos++
		default:
			return 0, 0, fmt.Errorf("%w: index %d is %d", ErrInvalidLabel, i, l)
		}
		if math.IsNaN(scores[i]) {
			return 0, 0, fmt.Errorf("%w: index %d", ErrNaNScore, i)
		}
	}
	return npos, nneg, nil
}
