package edge

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/linkeval/embedding"
)

// Stats summarizes an edge list against an embedding.
type Stats struct {
	// Edges is the number of rows in the list.
	Edges int `json:"edges"`
	// Links is the number of distinct unordered node pairs.
	Links int `json:"links"`
	// Nodes is the number of distinct embedded nodes.
	Nodes int `json:"nodes"`
	// Missing is the number of distinct endpoints absent from the embedding.
	Missing int `json:"missing"`
}

// Describe counts edges, logical links and nodes of an edge list. Endpoints
// without an embedding are counted in Missing and excluded from Links.
func Describe(edges []Edge, store *embedding.Store) Stats {
	nodes := roaring.New()
	links := roaring64.New()
	missing := make(map[string]struct{})

	for _, e := range edges {
		u, uok := store.Index(e.Src)
		v, vok := store.Index(e.Dst)
		if !uok {
			missing[e.Src] = struct{}{}
		}
		if !vok {
			missing[e.Dst] = struct{}{}
		}
		if !uok || !vok {
			continue
		}
		nodes.Add(uint32(u))
		nodes.Add(uint32(v))
		links.Add(pairKey(uint32(u), uint32(v)))
	}

	return Stats{
		Edges:   len(edges),
		Links:   int(links.GetCardinality()),
		Nodes:   int(nodes.GetCardinality()),
		Missing: len(missing),
	}
}

func pairKey(u, v uint32) uint64 {
	if u > v {
		u, v = v, u
	}
	return uint64(u)<<32 | uint64(v)
}
