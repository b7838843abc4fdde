package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hupe1980/linkeval/codec"
	"github.com/hupe1980/linkeval/edge"
)

type listStats struct {
	File string `json:"file"`
	edge.Stats
}

func newInspectCmd() *cobra.Command {
	var (
		embeddingLoc string
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [edge files...]",
		Short: "Print node and link counts of edge lists",
		Long: `Inspect reports, per edge file, the number of edges, distinct logical
links (an edge and its reverse count once), distinct nodes and nodes missing
from the embedding.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := loadEmbedding(ctx, embeddingLoc, nil)
			if err != nil {
				return err
			}

			stats := make([]listStats, 0, len(args))
			for _, loc := range args {
				edges, err := readEdges(ctx, loc)
				if err != nil {
					return err
				}
				stats = append(stats, listStats{File: loc, Stats: edge.Describe(edges, store)})
			}

			out := cmd.OutOrStdout()
			if asJSON {
				for _, s := range stats {
					b, err := codec.Default.Marshal(s)
					if err != nil {
						return err
					}
					if _, err := fmt.Fprintln(out, string(b)); err != nil {
						return err
					}
				}
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FILE\tEDGES\tLINKS\tNODES\tMISSING")
			for _, s := range stats {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\n", s.File, s.Edges, s.Links, s.Nodes, s.Missing)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&embeddingLoc, "embedding", "", "Embedding location")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print one JSON object per file")
	_ = cmd.MarkFlagRequired("embedding")

	return cmd
}
