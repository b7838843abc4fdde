// Package compress detects and wraps the stream compressions accepted for
// embedding and edge list files.
package compress

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Type identifies a stream compression.
type Type uint8

const (
	// None indicates plain text.
	None Type = iota
	// Gzip indicates a gzip stream (.gz).
	Gzip
	// Zstd indicates a zstd frame (.zst).
	Zstd
	// LZ4 indicates an lz4 frame (.lz4).
	LZ4
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// Detect returns the compression indicated by the leading bytes of a stream.
func Detect(prefix []byte) Type {
	switch {
	case bytes.HasPrefix(prefix, zstdMagic):
		return Zstd
	case bytes.HasPrefix(prefix, lz4Magic):
		return LZ4
	case bytes.HasPrefix(prefix, gzipMagic):
		return Gzip
	default:
		return None
	}
}

// FromExtension returns the compression implied by a file name.
func FromExtension(name string) Type {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz", ".gzip":
		return Gzip
	case ".zst", ".zstd":
		return Zstd
	case ".lz4":
		return LZ4
	default:
		return None
	}
}

// NewReader sniffs r and returns a reader yielding the decompressed stream.
// Plain streams are passed through buffered.
func NewReader(r io.Reader) (io.ReadCloser, Type, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	prefix, err := br.Peek(4)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, None, err
	}

	t := Detect(prefix)
	switch t {
	case Gzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, t, fmt.Errorf("compress: open gzip: %w", err)
		}
		return zr, t, nil
	case Zstd:
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, t, fmt.Errorf("compress: open zstd: %w", err)
		}
		return dec.IOReadCloser(), t, nil
	case LZ4:
		return io.NopCloser(lz4.NewReader(br)), t, nil
	default:
		return io.NopCloser(br), t, nil
	}
}

// NewWriter wraps w with the requested compression. Close must be called to
// flush the trailer; it does not close w.
func NewWriter(w io.Writer, t Type) (io.WriteCloser, error) {
	switch t {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Zstd:
		enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("compress: open zstd: %w", err)
		}
		return enc, nil
	case LZ4:
		return lz4.NewWriter(w), nil
	default:
		return nil, fmt.Errorf("compress: unsupported type %v", t)
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
