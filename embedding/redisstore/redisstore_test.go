package redisstore

import (
	"context"
	"math"
	"os"
	"testing"

	"github.com/hupe1980/linkeval/embedding"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	vec := []float64{0, -1.5, math.Pi, math.Inf(1)}
	got, err := decode(encode(vec))
	require.NoError(t, err)
	assert.Equal(t, vec, got)

	_, err = decode([]byte{1, 2, 3})
	assert.Error(t, err)
}

// TestStore_Integration requires a Redis server at REDIS_ADDR.
func TestStore_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not available: %v", err)
	}

	const key = "linkeval:test:embedding"
	defer client.Del(ctx, key)

	emb, err := embedding.FromMap(map[string][]float64{
		"A": {1, 0},
		"B": {0, 1},
	})
	require.NoError(t, err)

	s := New(client, key)
	require.NoError(t, s.Save(ctx, emb))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Dim())
	v, ok := got.Lookup("B")
	require.True(t, ok)
	assert.Equal(t, []float64{0, 1}, v)

	_, err = New(client, key+":missing").Load(ctx)
	assert.ErrorIs(t, err, embedding.ErrEmpty)
}
