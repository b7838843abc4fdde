package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/linkeval"
	"github.com/hupe1980/linkeval/codec"
	"github.com/hupe1980/linkeval/config"
	"github.com/hupe1980/linkeval/edge"
	"github.com/hupe1980/linkeval/gate"
	promcollector "github.com/hupe1980/linkeval/observability/prometheus"
	"github.com/hupe1980/linkeval/report"
)

type runFlags struct {
	config string

	embedding string
	trainPos  string
	trainNeg  string
	validPos  string
	validNeg  string
	testPos   string
	testNeg   string

	operator   string
	classifier string
	strict     bool
	testOnly   bool
	seed       int64
	workers    int64

	jsonOut   string
	csvOut    string
	sqliteOut string
	gates     []string

	logLevel       string
	logFormat      string
	logPredictions bool

	metricsFile string
}

func newRunCmd() *cobra.Command {
	f := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one link prediction evaluation",
		Long: `Run loads the embedding and the edge lists, fits the classifier on the
train partition and writes the report to the configured outputs. Flags
override values from the run file. Gates are checked last; a failed gate
makes the command exit non-zero after the outputs are written.

Examples:
  linkeval run --config run.yaml
  linkeval run --config run.yaml --classifier RF --json -
  linkeval run --embedding emb.txt --train-pos p.csv --train-neg n.csv \
      --test-pos tp.csv --test-neg tn.csv --test-only --gate 'test.auroc > 0.8'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEvaluation(cmd, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.config, "config", "c", "", "YAML run file")
	fl.StringVar(&f.embedding, "embedding", "", "Embedding location")
	fl.StringVar(&f.trainPos, "train-pos", "", "Positive train edges")
	fl.StringVar(&f.trainNeg, "train-neg", "", "Negative train edges")
	fl.StringVar(&f.validPos, "valid-pos", "", "Positive validation edges")
	fl.StringVar(&f.validNeg, "valid-neg", "", "Negative validation edges")
	fl.StringVar(&f.testPos, "test-pos", "", "Positive test edges")
	fl.StringVar(&f.testNeg, "test-neg", "", "Negative test edges")
	fl.StringVarP(&f.operator, "operator", "o", "", "Edge embedding method (hadamard, average, weightedL1, weightedL2)")
	fl.StringVar(&f.classifier, "classifier", "", "Classifier (LR, RF, SVM, MLP, FFNN, MultiModalFFNN)")
	fl.BoolVar(&f.strict, "strict", false, "Reject unknown classifiers instead of falling back to SVM")
	fl.BoolVar(&f.testOnly, "test-only", false, "Skip the validation partition")
	fl.Int64Var(&f.seed, "seed", 0, "Classifier random seed")
	fl.Int64Var(&f.workers, "workers", 0, "Concurrently embedded edge lists (0 = GOMAXPROCS)")
	fl.StringVar(&f.jsonOut, "json", "", "Write the report as JSON (- for stdout)")
	fl.StringVar(&f.csvOut, "csv", "", "Append the report as a CSV row")
	fl.StringVar(&f.sqliteOut, "sqlite", "", "Store the report in a SQLite run history")
	fl.StringArrayVar(&f.gates, "gate", nil, "CEL quality gate, e.g. 'test.auroc > 0.8' (repeatable)")
	fl.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fl.StringVar(&f.logFormat, "log-format", "", "Log format (text, json)")
	fl.BoolVar(&f.logPredictions, "log-predictions", false, "Log every validation and test prediction at debug level")
	fl.StringVar(&f.metricsFile, "metrics-file", "", "Write Prometheus metrics in text format to this file")

	return cmd
}

// loadConfig reads the run file, if any, and applies changed flags on top.
func loadConfig(cmd *cobra.Command, f *runFlags) (*config.Config, error) {
	cfg := config.Default()
	if f.config != "" {
		var err error
		if cfg, err = config.Load(f.config); err != nil {
			return nil, err
		}
	}

	changed := cmd.Flags().Changed
	set := func(flag string, dst *string, v string) {
		if changed(flag) {
			*dst = v
		}
	}
	set("embedding", &cfg.Embedding, f.embedding)
	set("train-pos", &cfg.Edges.Train.Positive, f.trainPos)
	set("train-neg", &cfg.Edges.Train.Negative, f.trainNeg)
	set("valid-pos", &cfg.Edges.Validation.Positive, f.validPos)
	set("valid-neg", &cfg.Edges.Validation.Negative, f.validNeg)
	set("test-pos", &cfg.Edges.Test.Positive, f.testPos)
	set("test-neg", &cfg.Edges.Test.Negative, f.testNeg)
	set("operator", &cfg.EdgeEmbeddingMethod, f.operator)
	set("classifier", &cfg.Classifier, f.classifier)
	set("json", &cfg.Outputs.JSON, f.jsonOut)
	set("csv", &cfg.Outputs.CSV, f.csvOut)
	set("sqlite", &cfg.Outputs.SQLite, f.sqliteOut)
	set("log-level", &cfg.Log.Level, f.logLevel)
	set("log-format", &cfg.Log.Format, f.logFormat)

	if changed("strict") {
		cfg.StrictClassifier = f.strict
	}
	if changed("test-only") {
		cfg.UseValidation = !f.testOnly
	}
	if changed("seed") {
		cfg.ClassifierOptions.Seed = f.seed
	}
	if changed("workers") {
		cfg.Workers = f.workers
	}
	if changed("log-predictions") {
		cfg.LogPredictions = f.logPredictions
	}
	cfg.Gates = append(cfg.Gates, f.gates...)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runEvaluation(cmd *cobra.Command, f *runFlags) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return err
	}
	gates, err := cfg.CompileGates()
	if err != nil {
		return err
	}

	logger := cfg.Logger()
	rc := cfg.Resource()

	store, err := loadEmbedding(ctx, cfg.Embedding, rc)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "embedding loaded", "nodes", store.Len(), "dim", store.Dim())

	in, err := readInput(ctx, cfg)
	if err != nil {
		return err
	}

	opts := cfg.Options(logger, rc)
	var reg *prometheus.Registry
	if f.metricsFile != "" {
		reg = prometheus.NewRegistry()
		opts = append(opts, linkeval.WithMetricsCollector(promcollector.NewCollector(reg)))
	}

	ev, err := linkeval.New(store, opts...)
	if err != nil {
		return err
	}

	rep, runErr := ev.Run(ctx, in)
	if reg != nil {
		if err := prometheus.WriteToTextfile(f.metricsFile, reg); err != nil {
			logger.WarnContext(ctx, "write metrics file", "path", f.metricsFile, "error", err)
		}
	}
	if runErr != nil {
		return runErr
	}

	if err := writeOutputs(ctx, cfg.Outputs, rep, cmd.OutOrStdout()); err != nil {
		return err
	}
	return gate.CheckAll(rep, gates...)
}

// readInput reads the edge files concurrently. Validation files are skipped
// in test-only mode.
func readInput(ctx context.Context, cfg *config.Config) (linkeval.Input, error) {
	var in linkeval.Input

	type source struct {
		loc string
		dst *[]edge.Edge
	}
	lists := []source{
		{cfg.Edges.Train.Positive, &in.Train.Positive},
		{cfg.Edges.Train.Negative, &in.Train.Negative},
		{cfg.Edges.Test.Positive, &in.Test.Positive},
		{cfg.Edges.Test.Negative, &in.Test.Negative},
	}
	if cfg.UseValidation {
		lists = append(lists,
			source{cfg.Edges.Validation.Positive, &in.Validation.Positive},
			source{cfg.Edges.Validation.Negative, &in.Validation.Negative},
		)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, l := range lists {
		g.Go(func() error {
			edges, err := readEdges(gctx, l.loc)
			if err != nil {
				return err
			}
			*l.dst = edges
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return linkeval.Input{}, err
	}
	return in, nil
}

func writeOutputs(ctx context.Context, out config.Outputs, rep *report.Report, stdout io.Writer) error {
	if out.JSON != "" {
		if err := writeJSON(out.JSON, rep, stdout); err != nil {
			return fmt.Errorf("json output: %w", err)
		}
	}
	if out.CSV != "" {
		if err := appendCSV(out.CSV, rep); err != nil {
			return fmt.Errorf("csv output: %w", err)
		}
	}
	if out.SQLite != "" {
		if err := storeSQLite(ctx, out.SQLite, rep); err != nil {
			return fmt.Errorf("sqlite output: %w", err)
		}
	}
	return nil
}

func writeJSON(path string, rep *report.Report, stdout io.Writer) error {
	if path == "-" {
		return report.Encode(stdout, rep, codec.IndentJSON{})
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.Encode(file, rep, codec.IndentJSON{}); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func appendCSV(path string, rep *report.Report) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil {
		return err
	}
	w := report.NewCSVWriter(file)
	if info.Size() > 0 {
		w.SkipHeader()
	}
	if err := w.Write(rep); err != nil {
		return err
	}
	return file.Close()
}

func storeSQLite(ctx context.Context, path string, rep *report.Report) error {
	sink, err := report.OpenSQLite(path)
	if err != nil {
		return err
	}
	if err := sink.Write(ctx, rep); err != nil {
		_ = sink.Close()
		return err
	}
	return sink.Close()
}
