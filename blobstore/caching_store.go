package blobstore

import (
	"context"
	"errors"
	"io"
	"sync"
)

// DefaultBlockSize is the read unit of CachingStore.
const DefaultBlockSize = 8 << 20

// CachingStore wraps a BlobStore and reads whole aligned blocks, so that
// small sequential reads against a remote store become few large requests.
type CachingStore struct {
	inner     BlobStore
	blockSize int64
	maxBlocks int
}

// NewCachingStore creates a new CachingStore.
// blockSize defaults to DefaultBlockSize and maxBlocks to 2 if <= 0.
// The cache is per opened blob and holds at most maxBlocks blocks.
func NewCachingStore(inner BlobStore, blockSize int64, maxBlocks int) *CachingStore {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	if maxBlocks <= 0 {
		maxBlocks = 2
	}
	return &CachingStore{
		inner:     inner,
		blockSize: blockSize,
		maxBlocks: maxBlocks,
	}
}

// Open opens a cached view of the named blob.
func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &CachingBlob{
		inner:     b,
		blockSize: s.blockSize,
		maxBlocks: s.maxBlocks,
		blocks:    make(map[int64][]byte, s.maxBlocks),
	}, nil
}

// Put is a pass-through. Blobs opened before the write keep their cache.
func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	return s.inner.Put(ctx, name, data)
}

// CachingBlob wraps a Blob and serves reads from cached blocks.
type CachingBlob struct {
	inner     Blob
	blockSize int64
	maxBlocks int

	mu     sync.Mutex
	blocks map[int64][]byte
	order  []int64 // insertion order, oldest first
}

func (b *CachingBlob) Close() error {
	b.mu.Lock()
	b.blocks = nil
	b.order = nil
	b.mu.Unlock()
	return b.inner.Close()
}

func (b *CachingBlob) Size() int64 {
	return b.inner.Size()
}

func (b *CachingBlob) ReadAt(p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	size := b.inner.Size()
	if off >= size {
		return 0, io.EOF
	}

	end := min(off+int64(len(p)), size)
	total := 0
	for blk := off / b.blockSize; blk*b.blockSize < end; blk++ {
		data, err := b.block(blk)
		if err != nil {
			return total, err
		}

		blkStart := blk * b.blockSize
		from := max(off, blkStart)
		to := min(end, blkStart+int64(len(data)))
		if to <= from {
			break
		}
		total += copy(p[from-off:to-off], data[from-blkStart:to-blkStart])
	}

	if total < len(p) {
		return total, io.EOF
	}
	return total, nil
}

// block returns block blk, reading it from the inner blob on a miss.
func (b *CachingBlob) block(blk int64) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if data, ok := b.blocks[blk]; ok {
		return data, nil
	}

	start := blk * b.blockSize
	buf := make([]byte, min(b.blockSize, b.inner.Size()-start))
	n, err := b.inner.ReadAt(buf, start)
	if err != nil && !(errors.Is(err, io.EOF) && n == len(buf)) {
		return nil, err
	}

	if len(b.order) >= b.maxBlocks {
		delete(b.blocks, b.order[0])
		b.order = b.order[1:]
	}
	b.blocks[blk] = buf
	b.order = append(b.order, blk)
	return buf, nil
}
