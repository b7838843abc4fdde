package main

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"

	"github.com/hupe1980/linkeval/blobstore"
	blobminio "github.com/hupe1980/linkeval/blobstore/minio"
	blobs3 "github.com/hupe1980/linkeval/blobstore/s3"
	"github.com/hupe1980/linkeval/edge"
	"github.com/hupe1980/linkeval/embedding"
	"github.com/hupe1980/linkeval/embedding/redisstore"
	"github.com/hupe1980/linkeval/internal/edgelist"
	"github.com/hupe1980/linkeval/resource"
)

// location is a parsed blob reference.
type location struct {
	scheme string
	bucket string
	name   string
	raw    string
}

func parseLocation(loc string) (location, error) {
	scheme, rest, ok := strings.Cut(loc, "://")
	if !ok {
		return location{scheme: "file", bucket: filepath.Dir(loc), name: filepath.Base(loc), raw: loc}, nil
	}

	switch scheme {
	case "s3", "minio":
		bucket, key, _ := strings.Cut(rest, "/")
		if bucket == "" || key == "" {
			return location{}, fmt.Errorf("location %q: want %s://bucket/key", loc, scheme)
		}
		return location{scheme: scheme, bucket: bucket, name: key, raw: loc}, nil
	case "redis", "rediss":
		u, err := url.Parse(loc)
		if err != nil {
			return location{}, fmt.Errorf("location %q: %w", loc, err)
		}
		key := u.Query().Get("key")
		if key == "" {
			return location{}, fmt.Errorf("location %q: missing key parameter", loc)
		}
		u.RawQuery = ""
		return location{scheme: scheme, name: key, raw: u.String()}, nil
	default:
		return location{}, fmt.Errorf("location %q: unsupported scheme %q", loc, scheme)
	}
}

// blobStore returns the store holding l.name. Remote stores read through
// a block cache.
func blobStore(ctx context.Context, l location) (blobstore.BlobStore, error) {
	switch l.scheme {
	case "file":
		return blobstore.NewLocalStore(l.bucket), nil
	case "s3":
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("aws config: %w", err)
		}
		return blobstore.NewCachingStore(blobs3.NewStore(awss3.NewFromConfig(cfg), l.bucket, ""), 0, 0), nil
	case "minio":
		endpoint := os.Getenv("MINIO_ENDPOINT")
		if endpoint == "" {
			endpoint = "localhost:9000"
		}
		client, err := minio.New(endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
			Secure: os.Getenv("MINIO_SECURE") == "true",
		})
		if err != nil {
			return nil, fmt.Errorf("minio client: %w", err)
		}
		return blobstore.NewCachingStore(blobminio.NewStore(client, l.bucket, ""), 0, 0), nil
	default:
		return nil, fmt.Errorf("location %q holds no blobs", l.raw)
	}
}

func loadEmbedding(ctx context.Context, loc string, rc *resource.Controller) (*embedding.Store, error) {
	l, err := parseLocation(loc)
	if err != nil {
		return nil, err
	}

	if l.scheme == "redis" || l.scheme == "rediss" {
		opts, err := redis.ParseURL(l.raw)
		if err != nil {
			return nil, fmt.Errorf("redis url: %w", err)
		}
		client := redis.NewClient(opts)
		defer func() { _ = client.Close() }()
		return redisstore.New(client, l.name).Load(ctx)
	}

	store, err := blobStore(ctx, l)
	if err != nil {
		return nil, err
	}
	return embedding.LoadBlob(ctx, store, l.name, func(o *embedding.LoadOptions) {
		o.Resource = rc
	})
}

func readEdges(ctx context.Context, loc string) ([]edge.Edge, error) {
	if loc == "" {
		return nil, nil
	}
	l, err := parseLocation(loc)
	if err != nil {
		return nil, err
	}
	store, err := blobStore(ctx, l)
	if err != nil {
		return nil, err
	}
	return edgelist.ReadBlob(ctx, store, l.name)
}
