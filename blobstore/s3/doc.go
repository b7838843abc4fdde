// Package s3 provides an Amazon S3 implementation of blobstore.BlobStore.
//
// Reads are served with ranged GetObject calls so large embedding files can
// be streamed through an io.SectionReader; writes use the multipart uploader.
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	store := s3.NewStore(awss3.NewFromConfig(cfg), "my-bucket", "embeddings/")
//	emb, _ := embedding.LoadBlob(ctx, store, "ppi.emb.zst")
package s3
