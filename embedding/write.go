package embedding

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"strconv"

	"github.com/hupe1980/linkeval/blobstore"
	"github.com/hupe1980/linkeval/internal/compress"
)

// Write emits the store in the text format, in row order, uncompressed.
func Write(w io.Writer, s *Store) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 32)
	for i, id := range s.ids {
		if _, err := bw.WriteString(id); err != nil {
			return err
		}
		for _, v := range s.Vector(i) {
			buf = append(buf[:0], ' ')
			buf = strconv.AppendFloat(buf, v, 'g', -1, 64)
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes the store to path, compressed according to its extension.
func WriteFile(path string, s *Store) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeCompressed(f, compress.FromExtension(path), s); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// WriteBlob encodes the store and puts it under name.
func WriteBlob(ctx context.Context, store blobstore.BlobStore, name string, s *Store) error {
	var buf bytes.Buffer
	if err := writeCompressed(&buf, compress.FromExtension(name), s); err != nil {
		return err
	}
	return store.Put(ctx, name, buf.Bytes())
}

func writeCompressed(w io.Writer, t compress.Type, s *Store) error {
	cw, err := compress.NewWriter(w, t)
	if err != nil {
		return err
	}
	if err := Write(cw, s); err != nil {
		_ = cw.Close()
		return err
	}
	return cw.Close()
}
