// Package dataset assembles labeled feature matrices from positive and
// negative edge embeddings. Positives always come first.
package dataset

import (
	"errors"
	"fmt"

	"github.com/hupe1980/linkeval/edge"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrDimensionMismatch is returned when the positive and negative blocks
	// have different vector dimensions.
	ErrDimensionMismatch = errors.New("dataset: positive and negative dimensions differ")

	// ErrEmptyPartition is returned when a partition has no edges at all.
	ErrEmptyPartition = errors.New("dataset: partition has no edges")
)

// Partition names a split of the edge set.
type Partition int

const (
	Train Partition = iota
	Validation
	Test
)

func (p Partition) String() string {
	switch p {
	case Train:
		return "train"
	case Validation:
		return "validation"
	case Test:
		return "test"
	default:
		return fmt.Sprintf("partition(%d)", int(p))
	}
}

// Dataset is the classifier input for one partition. Row i of X, Src and
// Dst describe the same edge; Labels[i] is 1 for i < NumPositive, else 0.
type Dataset struct {
	Partition   Partition
	X           *mat.Dense
	Src         *mat.Dense
	Dst         *mat.Dense
	Labels      []int
	NumPositive int
	NumNegative int
}

// Rows returns the number of examples.
func (d *Dataset) Rows() int { return d.NumPositive + d.NumNegative }

// Dim returns the feature dimension.
func (d *Dataset) Dim() int {
	_, c := d.X.Dims()
	return c
}

// Assemble stacks positives above negatives. Either block may be empty, but
// not both.
func Assemble(p Partition, pos, neg *edge.Embeddings) (*Dataset, error) {
	np, nn := rows(pos), rows(neg)
	if np+nn == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyPartition, p)
	}

	dim := 0
	switch {
	case np > 0 && nn > 0:
		if pos.Dim != neg.Dim {
			return nil, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, pos.Dim, neg.Dim)
		}
		dim = pos.Dim
	case np > 0:
		dim = pos.Dim
	default:
		dim = neg.Dim
	}

	labels := make([]int, np+nn)
	for i := range np {
		labels[i] = 1
	}

	return &Dataset{
		Partition:   p,
		X:           stack(np, nn, dim, vectors(pos), vectors(neg)),
		Src:         stack(np, nn, dim, srcs(pos), srcs(neg)),
		Dst:         stack(np, nn, dim, dsts(pos), dsts(neg)),
		Labels:      labels,
		NumPositive: np,
		NumNegative: nn,
	}, nil
}

func stack(np, nn, dim int, top, bottom []float64) *mat.Dense {
	data := make([]float64, (np+nn)*dim)
	copy(data, top)
	copy(data[np*dim:], bottom)
	return mat.NewDense(np+nn, dim, data)
}

func rows(e *edge.Embeddings) int {
	if e == nil {
		return 0
	}
	return e.N
}

func vectors(e *edge.Embeddings) []float64 {
	if e == nil {
		return nil
	}
	return e.Vectors
}

func srcs(e *edge.Embeddings) []float64 {
	if e == nil {
		return nil
	}
	return e.Src
}

func dsts(e *edge.Embeddings) []float64 {
	if e == nil {
		return nil
	}
	return e.Dst
}
