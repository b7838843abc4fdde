// Command linkeval evaluates node embeddings on link prediction.
//
// Usage:
//
//	linkeval run --config run.yaml
//	linkeval run --config run.yaml --classifier RF --test-only --json -
//	linkeval inspect --embedding emb.txt pos_train.csv neg_train.csv
//	linkeval history --sqlite runs.db
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
