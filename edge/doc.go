// Package edge turns node pairs into edge feature vectors.
//
// Each edge (u, v) is looked up in an embedding.Store and combined
// elementwise by an Operator:
//
//	hadamard    a*b
//	average     (a+b)/2
//	weightedL1  |a-b|
//	weightedL2  (a-b)^2
//
// All operators are commutative, so an edge and its reverse produce the same
// vector. The endpoint vectors are kept alongside the edge vector for
// classifiers that consume both sides separately.
package edge
