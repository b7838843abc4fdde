// Package classifier provides the binary edge classifiers used for link
// prediction.
//
// Every backend outputs the probability that an edge exists; hard labels
// are derived as 1 when that probability exceeds 0.5. The set of backends is
// closed:
//
//	LR              L2 regularised logistic regression
//	RF              random forest of CART trees
//	SVM             linear SVM with sigmoid calibration (default)
//	MLP             one hidden layer perceptron
//	FFNN            deeper feed-forward network with dropout and early stopping
//	MultiModalFFNN  separate source and destination towers (PairModel)
//
// MultiModalFFNN consumes the two endpoint vectors instead of the combined
// edge vector and therefore implements PairModel rather than Model.
//
// A model is fit exactly once. Prediction after a successful fit is
// read-only and safe for concurrent use.
package classifier
