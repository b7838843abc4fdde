// Package linkeval evaluates node embeddings on link prediction.
//
// Given an embedding store and positive/negative edge lists for the train,
// validation and test partitions, an Evaluator derives one edge vector per
// edge, fits one binary classifier on the train partition, predicts every
// partition and reports confusion-matrix and ranking metrics.
//
// # Quick Start
//
//	store, _ := embedding.LoadFile(ctx, "ppi.emb")
//	ev, _ := linkeval.New(store,
//	    linkeval.WithOperator("hadamard"),
//	    linkeval.WithClassifier("LR"),
//	)
//	rep, err := ev.Run(ctx, linkeval.Input{
//	    Train:      linkeval.Split{Positive: trainPos, Negative: trainNeg},
//	    Validation: linkeval.Split{Positive: validPos, Negative: validNeg},
//	    Test:       linkeval.Split{Positive: testPos, Negative: testNeg},
//	})
//
// # Edge Operators
//
// hadamard (a*b), average ((a+b)/2), weightedL1 (|a-b|) and weightedL2
// ((a-b)^2), applied elementwise to the endpoint vectors. An unknown
// operator name is rejected by New before any data is read.
//
// # Classifiers
//
// LR, RF, SVM (default), MLP, FFNN and MultiModalFFNN. An unknown classifier
// name falls back to SVM with a logged notice, unless
// WithStrictClassifier is set.
//
// # Run Modes
//
// WithValidation (default) evaluates train, validation and test.
// TestOnly skips everything about the validation partition; its block is
// absent from the report.
//
// # Errors
//
// Failures inside a run are returned as *RunError naming the stage,
// partition, operator and classifier. errors.Is and errors.As reach the
// cause (for example *edge.MissingNodeError). A failed run never returns a
// partial report.
//
// # Undefined Metrics
//
// Metrics with a zero denominator, and ranking metrics over a partition with
// a single class, are metrics.Undefined instead of 0 or NaN.
package linkeval
