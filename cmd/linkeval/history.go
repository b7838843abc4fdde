package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/linkeval/codec"
	"github.com/hupe1980/linkeval/report"
)

func newHistoryCmd() *cobra.Command {
	var (
		path  string
		runID string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or show runs stored in a SQLite run history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			sink, err := report.OpenSQLite(path)
			if err != nil {
				return err
			}
			defer func() { _ = sink.Close() }()

			out := cmd.OutOrStdout()
			if runID != "" {
				rep, err := sink.Load(ctx, runID)
				if err != nil {
					return err
				}
				return report.Encode(out, rep, codec.IndentJSON{})
			}

			ids, err := sink.RunIDs(ctx)
			if err != nil {
				return err
			}
			for _, id := range ids {
				if _, err := fmt.Fprintln(out, id); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "sqlite", "", "SQLite run history")
	cmd.Flags().StringVar(&runID, "run", "", "Print the report of this run as JSON")
	_ = cmd.MarkFlagRequired("sqlite")

	return cmd
}
