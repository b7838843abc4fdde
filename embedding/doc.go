// Package embedding holds node embeddings: a read-only mapping from node
// identifier to a fixed-dimension float64 vector.
//
// The text format is one node per line, whitespace separated, no header:
//
//	ENSP00000371067 0.6698335 -0.83192813 -0.3676057
//	ENSP00000374213 -0.6342755 -2.0504158 -1.169239
//
// Blank lines are ignored and a repeated identifier replaces the earlier
// vector. Inputs may be gzip, zstd or lz4 compressed; the compression is
// detected from the stream on load and chosen from the file extension on
// write.
//
// A Store never changes after it is built and is safe for concurrent use.
package embedding
