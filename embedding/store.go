package embedding

import (
	"math"
	"slices"
	"strconv"
)

// Store maps node identifiers to vectors of a single dimension.
// Vectors are kept in one contiguous row-major block.
type Store struct {
	dim   int
	ids   []string
	index map[string]int
	data  []float64
}

// FromMap builds a store from an in-memory map. Identifiers are ordered
// lexically so the result is deterministic.
func FromMap(m map[string][]float64) (*Store, error) {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	b := newBuilder(len(ids))
	for _, id := range ids {
		if err := b.add(0, id, m[id]); err != nil {
			return nil, err
		}
	}
	return b.build()
}

// Dim returns the vector dimension.
func (s *Store) Dim() int { return s.dim }

// Len returns the number of distinct nodes.
func (s *Store) Len() int { return len(s.ids) }

// Lookup returns the vector for id. The slice aliases the store and must
// not be modified.
func (s *Store) Lookup(id string) ([]float64, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.Vector(i), true
}

// Index returns the dense row index of id.
func (s *Store) Index(id string) (int, bool) {
	i, ok := s.index[id]
	return i, ok
}

// ID returns the identifier stored at row i.
func (s *Store) ID(i int) string { return s.ids[i] }

// Vector returns row i. The slice aliases the store and must not be modified.
func (s *Store) Vector(i int) []float64 {
	off := i * s.dim
	return s.data[off : off+s.dim : off+s.dim]
}

// IDs returns the node identifiers in row order.
func (s *Store) IDs() []string {
	return slices.Clone(s.ids)
}

type builder struct {
	dim   int
	ids   []string
	index map[string]int
	data  []float64
}

func newBuilder(hint int) *builder {
	return &builder{
		dim:   -1,
		ids:   make([]string, 0, hint),
		index: make(map[string]int, hint),
	}
}

// add appends or replaces a vector. line is 0 for non-file sources.
func (b *builder) add(line int, id string, vec []float64) error {
	if len(vec) == 0 {
		return &ParseError{Line: line, Err: errMissingVector}
	}
	if b.dim < 0 {
		b.dim = len(vec)
	} else if len(vec) != b.dim {
		return &DimensionError{Line: line, ID: id, Expected: b.dim, Actual: len(vec)}
	}
	for _, v := range vec {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &ParseError{Line: line, Field: strconv.FormatFloat(v, 'g', -1, 64), Err: ErrNonFinite}
		}
	}

	if i, ok := b.index[id]; ok {
		copy(b.data[i*b.dim:(i+1)*b.dim], vec)
		return nil
	}
	b.index[id] = len(b.ids)
	b.ids = append(b.ids, id)
	b.data = append(b.data, vec...)
	return nil
}

func (b *builder) build() (*Store, error) {
	if len(b.ids) == 0 {
		return nil, ErrEmpty
	}
	return &Store{dim: b.dim, ids: b.ids, index: b.index, data: b.data}, nil
}
