// Package redisstore keeps node embeddings in a Redis hash: one field per
// node, the value holding the vector as little-endian float64s.
package redisstore

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/hupe1980/linkeval/embedding"
	"github.com/redis/go-redis/v9"
)

const (
	scanCount = 1024
	batchSize = 512
)

// Store reads and writes one embedding under a hash key.
type Store struct {
	client redis.UniversalClient
	key    string
}

// New returns a store bound to key.
func New(client redis.UniversalClient, key string) *Store {
	return &Store{client: client, key: key}
}

// Name identifies the backend.
func (s *Store) Name() string { return "redis" }

// Save replaces the hash with the contents of emb.
func (s *Store) Save(ctx context.Context, emb *embedding.Store) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redisstore: clear %s: %w", s.key, err)
	}

	pipe := s.client.Pipeline()
	pending := 0
	for i, id := range emb.IDs() {
		pipe.HSet(ctx, s.key, id, encode(emb.Vector(i)))
		pending++
		if pending == batchSize {
			if _, err := pipe.Exec(ctx); err != nil {
				return fmt.Errorf("redisstore: write %s: %w", s.key, err)
			}
			pending = 0
		}
	}
	if pending > 0 {
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("redisstore: write %s: %w", s.key, err)
		}
	}
	return nil
}

// Load reads every field of the hash. An absent or empty hash yields
// embedding.ErrEmpty.
func (s *Store) Load(ctx context.Context) (*embedding.Store, error) {
	vectors := make(map[string][]float64)

	iter := s.client.HScan(ctx, s.key, 0, "", scanCount).Iterator()
	for iter.Next(ctx) {
		field := iter.Val()
		if !iter.Next(ctx) {
			break
		}
		vec, err := decode([]byte(iter.Val()))
		if err != nil {
			return nil, &embedding.ParseError{Field: field, Err: err}
		}
		vectors[field] = vec
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redisstore: scan %s: %w", s.key, err)
	}

	return embedding.FromMap(vectors)
}

func encode(vec []float64) []byte {
	buf := make([]byte, 8*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint64(buf[8*i:], math.Float64bits(v))
	}
	return buf
}

func decode(b []byte) ([]float64, error) {
	if len(b)%8 != 0 {
		return nil, fmt.Errorf("value length %d is not a multiple of 8", len(b))
	}
	vec := make([]float64, len(b)/8)
	for i := range vec {
		vec[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[8*i:]))
	}
	return vec, nil
}
