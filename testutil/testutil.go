package testutil

import (
	"math"
	"math/rand"
	"strconv"
	"sync"

	"github.com/hupe1980/linkeval/edge"
	"github.com/hupe1980/linkeval/embedding"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// FillUniform fills dst with random values in range [0, 1).
// Locks only once per call (preferred over calling Float64 in a loop).
func (r *RNG) FillUniform(dst []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float64()
	}
}

// FillGaussian fills dst with standard normal values.
func (r *RNG) FillGaussian(dst []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.NormFloat64()
	}
}

// UnitVector returns a random vector of length one.
func (r *RNG) UnitVector(dim int) []float64 {
	v := make([]float64, dim)
	r.FillGaussian(v)

	var norm float64
	for _, x := range v {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		v[0] = 1
		return v
	}
	for i := range v {
		v[i] /= norm
	}
	return v
}

// NodeID returns the identifier of node i in synthetic graphs.
func NodeID(i int) string {
	return "n" + strconv.Itoa(i)
}

// Graph is a synthetic node embedding with a community per node.
type Graph struct {
	Store     *embedding.Store
	Community []int
	// Members lists the nodes of every community.
	Members [][]int
}

// Communities generates nodes spread round-robin over communities. Every
// node vector is its community centroid (scaled to length 2) plus Gaussian
// noise with the given spread.
func (r *RNG) Communities(nodes, dim, communities int, spread float64) *Graph {
	centroids := make([][]float64, communities)
	for c := range centroids {
		centroids[c] = r.UnitVector(dim)
		for j := range centroids[c] {
			centroids[c][j] *= 2
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	g := &Graph{
		Community: make([]int, nodes),
		Members:   make([][]int, communities),
	}
	vectors := make(map[string][]float64, nodes)
	for i := range nodes {
		c := i % communities
		vec := make([]float64, dim)
		for j := range vec {
			vec[j] = centroids[c][j] + r.rand.NormFloat64()*spread
		}
		vectors[NodeID(i)] = vec
		g.Community[i] = c
		g.Members[c] = append(g.Members[c], i)
	}

	store, err := embedding.FromMap(vectors)
	if err != nil {
		panic(err)
	}
	g.Store = store
	return g
}

// Split is one partition of a synthetic link prediction task.
type Split struct {
	Positive []edge.Edge
	Negative []edge.Edge
}

// LinkSplit draws n links between distinct nodes of the same community and
// n non-links between nodes of different communities. It needs at least two
// communities with two members each.
func (r *RNG) LinkSplit(g *Graph, n int) Split {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := Split{
		Positive: make([]edge.Edge, 0, n),
		Negative: make([]edge.Edge, 0, n),
	}
	nodes := len(g.Community)

	for len(s.Positive) < n {
		m := g.Members[r.rand.Intn(len(g.Members))]
		if len(m) < 2 {
			continue
		}
		a, b := m[r.rand.Intn(len(m))], m[r.rand.Intn(len(m))]
		if a == b {
			continue
		}
		s.Positive = append(s.Positive, edge.Edge{Src: NodeID(a), Dst: NodeID(b)})
	}

	for len(s.Negative) < n {
		a, b := r.rand.Intn(nodes), r.rand.Intn(nodes)
		if g.Community[a] == g.Community[b] {
			continue
		}
		s.Negative = append(s.Negative, edge.Edge{Src: NodeID(a), Dst: NodeID(b)})
	}

	return s
}
