// Package blobstore abstracts where embedding files live.
//
// A BlobStore hands out read-only Blobs; loaders wrap them in an
// io.SectionReader and stream the text format from there. Writers use Put.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem, memory-mapped reads
//   - MemoryStore: in-process, for tests
//   - s3.Store: Amazon S3 with ranged reads and multipart uploads
//   - minio.Store: MinIO and other S3-compatible services
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Open(ctx, name) (Blob, error)
//	    Put(ctx, name, data) error
//	}
package blobstore
