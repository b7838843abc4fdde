package edge

// Edge is an ordered pair of node identifiers.
type Edge struct {
	Src string
	Dst string
}

// Embeddings holds, for N edges, three row-major N×Dim blocks: the source
// vectors, the destination vectors and the combined edge vectors. Row i of
// every block belongs to input edge i.
type Embeddings struct {
	Operator Operator
	N        int
	Dim      int
	Src      []float64
	Dst      []float64
	Vectors  []float64
}

func newEmbeddings(op Operator, n, dim int) *Embeddings {
	return &Embeddings{
		Operator: op,
		N:        n,
		Dim:      dim,
		Src:      make([]float64, n*dim),
		Dst:      make([]float64, n*dim),
		Vectors:  make([]float64, n*dim),
	}
}

// Row returns the edge vector of edge i.
func (e *Embeddings) Row(i int) []float64 {
	return e.Vectors[i*e.Dim : (i+1)*e.Dim]
}

// SrcRow returns the source vector of edge i.
func (e *Embeddings) SrcRow(i int) []float64 {
	return e.Src[i*e.Dim : (i+1)*e.Dim]
}

// DstRow returns the destination vector of edge i.
func (e *Embeddings) DstRow(i int) []float64 {
	return e.Dst[i*e.Dim : (i+1)*e.Dim]
}
