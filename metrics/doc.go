// Package metrics computes binary classification metrics for link
// prediction: the confusion matrix, the rates derived from it and the
// ranking metrics ROC-AUC and average precision.
//
// A metric whose denominator is zero, or a ranking metric over a single
// class, is Undefined rather than 0 or NaN:
//
//	s := metrics.Specificity(cm)
//	if v, ok := s.Float(); ok {
//	    fmt.Printf("%.3f\n", v)
//	}
package metrics
