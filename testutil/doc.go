// Package testutil provides testing utilities for linkeval.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random source and synthetic graphs whose node
// embeddings are clustered by community, so that intra-community links are
// easy to tell apart from inter-community non-links.
//
// # Random Vector Generation
//
//	rng := testutil.NewRNG(seed)
//	vec := make([]float64, 16)
//	rng.FillUniform(vec)      // uniform [0, 1)
//	rng.FillGaussian(vec)     // standard normal
//
// # Synthetic Graphs
//
//	g := rng.Communities(200, 16, 4, 0.3)
//	train := rng.LinkSplit(g, 100)
//	store := g.Store
package testutil
