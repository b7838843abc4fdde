package embedding

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hupe1980/linkeval/blobstore"
	"github.com/hupe1980/linkeval/internal/compress"
	"github.com/hupe1980/linkeval/resource"
)

const maxLineBytes = 64 * 1024 * 1024

// LoadOptions configures remote and file loads.
type LoadOptions struct {
	// Resource throttles reads from the blob; nil means unlimited.
	Resource *resource.Controller
}

// Load parses embeddings from r. Compressed streams are detected automatically.
func Load(r io.Reader) (*Store, error) {
	rc, _, err := compress.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	sc := bufio.NewScanner(rc)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	b := newBuilder(1024)
	var vec []float64
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}

		vec = vec[:0]
		for _, f := range fields[1:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &ParseError{Line: line, Field: f, Err: err}
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &ParseError{Line: line, Field: f, Err: ErrNonFinite}
			}
			vec = append(vec, v)
		}
		if err := b.add(line, fields[0], vec); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("embedding: read: %w", err)
	}
	return b.build()
}

// LoadFile loads embeddings from a local file. The file is memory mapped.
func LoadFile(ctx context.Context, path string, optFns ...func(*LoadOptions)) (*Store, error) {
	return LoadBlob(ctx, blobstore.NewLocalStore(filepath.Dir(path)), filepath.Base(path), optFns...)
}

// LoadBlob loads embeddings from a named blob.
func LoadBlob(ctx context.Context, store blobstore.BlobStore, name string, optFns ...func(*LoadOptions)) (*Store, error) {
	opts := LoadOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("embedding: open %s: %w", name, err)
	}
	defer func() { _ = blob.Close() }()

	s, err := Load(resource.NewRateLimitedReader(ctx, blobstore.NewReader(blob), opts.Resource))
	if err != nil {
		return nil, fmt.Errorf("embedding: load %s: %w", name, err)
	}
	return s, nil
}
