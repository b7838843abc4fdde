// Package edgelist reads edge files: one "src dst [weight]" record per line,
// separated by commas, tabs or spaces. Lines starting with '#' and blank
// lines are skipped. The weight column is ignored.
package edgelist

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/hupe1980/linkeval/blobstore"
	"github.com/hupe1980/linkeval/edge"
	"github.com/hupe1980/linkeval/internal/compress"
)

// ParseError reports a record with fewer than two columns.
type ParseError struct {
	Line int
	Text string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("edgelist: line %d: want at least 2 columns, got %q", e.Line, e.Text)
}

func isSep(r rune) bool {
	return r == ',' || r == '\t' || r == ' ' || r == '\r'
}

// Read parses r, which may be compressed.
func Read(r io.Reader) ([]edge.Edge, error) {
	rc, _, err := compress.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	var edges []edge.Edge
	sc := bufio.NewScanner(rc)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.FieldsFunc(text, isSep)
		if len(fields) < 2 {
			return nil, &ParseError{Line: line, Text: text}
		}
		edges = append(edges, edge.Edge{Src: fields[0], Dst: fields[1]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("edgelist: read: %w", err)
	}
	return edges, nil
}

// ReadBlob parses the named blob of store.
func ReadBlob(ctx context.Context, store blobstore.BlobStore, name string) ([]edge.Edge, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("edgelist: open %s: %w", name, err)
	}
	defer func() { _ = blob.Close() }()

	edges, err := Read(blobstore.NewReader(blob))
	if err != nil {
		return nil, fmt.Errorf("edgelist: %s: %w", name, err)
	}
	return edges, nil
}
