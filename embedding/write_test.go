package embedding

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/hupe1980/linkeval/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) *Store {
	t.Helper()
	s, err := FromMap(map[string][]float64{
		"ENSP1": {0.6698335, -0.83192813, -0.3676057},
		"ENSP2": {-0.6342755, 1e-9, 2},
		"7":     {0, 0, 0},
	})
	require.NoError(t, err)
	return s
}

func assertSameStore(t *testing.T, want, got *Store) {
	t.Helper()
	require.Equal(t, want.Dim(), got.Dim())
	require.Equal(t, want.Len(), got.Len())
	for _, id := range want.IDs() {
		w, _ := want.Lookup(id)
		g, ok := got.Lookup(id)
		require.True(t, ok, id)
		assert.Equal(t, w, g, id)
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	s := sample(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, s))
	assert.Equal(t, "7 0 0 0\n", buf.String()[:8])

	got, err := Load(&buf)
	require.NoError(t, err)
	assertSameStore(t, s, got)
}

func TestWriteFile_Compressed(t *testing.T) {
	s := sample(t)
	dir := t.TempDir()

	for _, name := range []string{"plain.emb", "e.emb.gz", "e.emb.zst", "e.emb.lz4"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, WriteFile(path, s))

			got, err := LoadFile(context.Background(), path)
			require.NoError(t, err)
			assertSameStore(t, s, got)
		})
	}
}

func TestWriteBlob(t *testing.T) {
	s := sample(t)
	store := blobstore.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, WriteBlob(ctx, store, "out.emb.zst", s))

	got, err := LoadBlob(ctx, store, "out.emb.zst")
	require.NoError(t, err)
	assertSameStore(t, s, got)
}
