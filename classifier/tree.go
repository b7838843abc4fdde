package classifier

import (
	"math"
	"math/rand"
	"slices"
)

// treeNode is a CART node. Leaves have feature -1.
type treeNode struct {
	feature   int
	threshold float64
	left      int
	right     int
	prob      float64
}

type tree struct {
	nodes []treeNode
}

func (t *tree) proba(x []float64) float64 {
	n := &t.nodes[0]
	for n.feature >= 0 {
		if x[n.feature] <= n.threshold {
			n = &t.nodes[n.left]
		} else {
			n = &t.nodes[n.right]
		}
	}
	return n.prob
}

type treeBuilder struct {
	rows        [][]float64
	y           []int
	maxDepth    int
	minLeaf     int
	maxFeatures int
	rng         *rand.Rand
	features    []int
	nodes       []treeNode
}

func newTreeBuilder(rows [][]float64, y []int, opts Options, rng *rand.Rand) *treeBuilder {
	d := len(rows[0])
	features := make([]int, d)
	for i := range features {
		features[i] = i
	}
	return &treeBuilder{
		rows:        rows,
		y:           y,
		maxDepth:    opts.MaxDepth,
		minLeaf:     opts.MinSamplesLeaf,
		maxFeatures: max(1, int(math.Sqrt(float64(d)))),
		rng:         rng,
		features:    features,
	}
}

func (b *treeBuilder) fit(idx []int) *tree {
	b.nodes = b.nodes[:0]
	b.grow(idx, 0)
	return &tree{nodes: slices.Clip(b.nodes)}
}

func gini(n, pos int) float64 {
	if n == 0 {
		return 0
	}
	p := float64(pos) / float64(n)
	return 2 * p * (1 - p)
}

func (b *treeBuilder) grow(idx []int, depth int) int {
	pos := 0
	for _, i := range idx {
		pos += b.y[i]
	}
	id := len(b.nodes)
	b.nodes = append(b.nodes, treeNode{feature: -1, prob: float64(pos) / float64(len(idx))})

	if pos == 0 || pos == len(idx) || len(idx) < 2*b.minLeaf || (b.maxDepth > 0 && depth >= b.maxDepth) {
		return id
	}

	feature, thr, ok := b.bestSplit(idx, pos)
	if !ok {
		return id
	}

	var left, right []int
	for _, i := range idx {
		if b.rows[i][feature] <= thr {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	l := b.grow(left, depth+1)
	r := b.grow(right, depth+1)
	b.nodes[id] = treeNode{feature: feature, threshold: thr, left: l, right: r, prob: b.nodes[id].prob}
	return id
}

// bestSplit searches a random subset of maxFeatures features for the
// threshold with the lowest weighted gini impurity.
func (b *treeBuilder) bestSplit(idx []int, pos int) (int, float64, bool) {
	n := len(idx)
	parent := gini(n, pos)
	best := parent - 1e-12
	bestFeature, bestThr, found := -1, 0.0, false

	for k := range b.maxFeatures {
		j := k + b.rng.Intn(len(b.features)-k)
		b.features[k], b.features[j] = b.features[j], b.features[k]
	}

	sorted := slices.Clone(idx)
	for _, f := range b.features[:b.maxFeatures] {
		slices.SortFunc(sorted, func(a, c int) int {
			va, vc := b.rows[a][f], b.rows[c][f]
			switch {
			case va < vc:
				return -1
			case va > vc:
				return 1
			default:
				return 0
			}
		})

		leftPos := 0
		for i := 1; i < n; i++ {
			leftPos += b.y[sorted[i-1]]
			if i < b.minLeaf || n-i < b.minLeaf {
				continue
			}
			lo, hi := b.rows[sorted[i-1]][f], b.rows[sorted[i]][f]
			if lo == hi {
				continue
			}
			impurity := (float64(i)*gini(i, leftPos) + float64(n-i)*gini(n-i, pos-leftPos)) / float64(n)
			if impurity < best {
				best = impurity
				bestFeature = f
				bestThr = lo + (hi-lo)/2
				if bestThr >= hi {
					bestThr = lo
				}
				found = true
			}
		}
	}
	return bestFeature, bestThr, found
}
