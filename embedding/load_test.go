package embedding

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/hupe1980/linkeval/blobstore"
	"github.com/hupe1980/linkeval/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	in := "A 1 0\n\n  B\t0 1  \nA 0.5 0.5\n"

	s, err := Load(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, 2, s.Dim())
	assert.Equal(t, 2, s.Len())

	a, _ := s.Lookup("A")
	assert.Equal(t, []float64{0.5, 0.5}, a, "last line wins")
	b, _ := s.Lookup("B")
	assert.Equal(t, []float64{0, 1}, b)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, err error)
	}{
		{
			name:  "empty",
			input: "",
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrEmpty) },
		},
		{
			name:  "blank lines only",
			input: "\n  \n",
			check: func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrEmpty) },
		},
		{
			name:  "malformed number",
			input: "A 1 0\nB 0 x1\n",
			check: func(t *testing.T, err error) {
				var pe *ParseError
				require.ErrorAs(t, err, &pe)
				assert.Equal(t, 2, pe.Line)
				assert.Equal(t, "x1", pe.Field)
			},
		},
		{
			name:  "non-finite value",
			input: "A 1 0\nB NaN 1\nC +Inf 0\n",
			check: func(t *testing.T, err error) {
				var pe *ParseError
				require.ErrorAs(t, err, &pe)
				assert.Equal(t, 2, pe.Line)
				assert.Equal(t, "NaN", pe.Field)
				assert.ErrorIs(t, err, ErrNonFinite)
			},
		},
		{
			name:  "inconsistent dimension",
			input: "A 1 0\nB 0 1 2\n",
			check: func(t *testing.T, err error) {
				var de *DimensionError
				require.ErrorAs(t, err, &de)
				assert.Equal(t, "B", de.ID)
				assert.Equal(t, 2, de.Line)
				assert.Equal(t, 2, de.Expected)
				assert.Equal(t, 3, de.Actual)
			},
		},
		{
			name:  "id without vector",
			input: "A\n",
			check: func(t *testing.T, err error) {
				var pe *ParseError
				assert.ErrorAs(t, err, &pe)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Load(strings.NewReader(tt.input))
			assert.Nil(t, s)
			tt.check(t, err)
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(context.Background(), filepath.Join(t.TempDir(), "nope.emb"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.emb")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := LoadFile(context.Background(), path)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLoadBlob_Throttled(t *testing.T) {
	var sb strings.Builder
	for i := range 200 {
		sb.WriteString("n" + strconv.Itoa(i) + " 0.25 -1.5 3\n")
	}

	store := blobstore.NewMemoryStore()
	require.NoError(t, store.Put(context.Background(), "big.emb", []byte(sb.String())))

	rc := resource.NewController(resource.Config{IOLimitBytesPerSec: 1 << 20})
	s, err := LoadBlob(context.Background(), store, "big.emb", func(o *LoadOptions) {
		o.Resource = rc
	})
	require.NoError(t, err)
	assert.Equal(t, 200, s.Len())
	assert.Equal(t, 3, s.Dim())
}

func TestLoadBlob_NotFound(t *testing.T) {
	_, err := LoadBlob(context.Background(), blobstore.NewMemoryStore(), "missing")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
