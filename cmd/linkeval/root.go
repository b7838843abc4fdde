package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "linkeval",
		Short: "Evaluate node embeddings on link prediction",
		Long: `linkeval turns node embeddings into edge vectors, trains a binary
classifier on the train partition and reports confusion-matrix and ranking
metrics for every partition.

Locations may be local paths or URIs:
  s3://bucket/key               AWS S3 (default credential chain)
  minio://bucket/key            MinIO (MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY)
  redis://host:port/db?key=k    Redis hash (embeddings only)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newRunCmd(), newInspectCmd(), newHistoryCmd())

	return root
}
