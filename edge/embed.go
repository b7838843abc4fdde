package edge

import (
	"context"
	"math"

	"github.com/hupe1980/linkeval/embedding"
	"golang.org/x/sync/errgroup"
)

// Embed computes the edge vectors of edges in input order. The first edge
// with an endpoint missing from store aborts the call.
func Embed(edges []Edge, store *embedding.Store, op Operator) (*Embeddings, error) {
	if !op.Valid() {
		return nil, &UnknownOperatorError{Name: op.String()}
	}
	out := newEmbeddings(op, len(edges), store.Dim())
	if err := embedRange(out, edges, store, 0, len(edges)); err != nil {
		return nil, err
	}
	return out, nil
}

// EmbedParallel is Embed with the edge list split into up to shards
// contiguous ranges processed concurrently. Row order is the same as Embed.
func EmbedParallel(ctx context.Context, edges []Edge, store *embedding.Store, op Operator, shards int) (*Embeddings, error) {
	if !op.Valid() {
		return nil, &UnknownOperatorError{Name: op.String()}
	}
	if shards < 1 {
		shards = 1
	}
	if shards > len(edges) {
		shards = max(len(edges), 1)
	}

	out := newEmbeddings(op, len(edges), store.Dim())
	size := (len(edges) + shards - 1) / shards

	g, ctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(edges); lo += size {
		hi := min(lo+size, len(edges))
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return embedRange(out, edges, store, lo, hi)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func embedRange(out *Embeddings, edges []Edge, store *embedding.Store, lo, hi int) error {
	for i := lo; i < hi; i++ {
		e := edges[i]
		a, ok := store.Lookup(e.Src)
		if !ok {
			return &MissingNodeError{Node: e.Src, Position: i}
		}
		b, ok := store.Lookup(e.Dst)
		if !ok {
			return &MissingNodeError{Node: e.Dst, Position: i}
		}
		copy(out.SrcRow(i), a)
		copy(out.DstRow(i), b)
		row := out.Row(i)
		out.Operator.Apply(row, a, b)
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &NonFiniteError{Src: e.Src, Dst: e.Dst, Position: i}
			}
		}
	}
	return nil
}
