package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/linkeval"
	"github.com/hupe1980/linkeval/classifier"
	"github.com/hupe1980/linkeval/embedding"
)

const runFile = `
embedding: data/ppi.emb.gz
edges:
  train: {positive: pos_train.csv, negative: neg_train.csv}
  validation: {positive: pos_valid.csv, negative: neg_valid.csv}
  test: {positive: pos_test.csv, negative: neg_test.csv}
edge_embedding_method: weightedL2
classifier: RF
classifier_options:
  seed: 42
  trees: 50
  hidden: [32, 16]
outputs:
  json: out/report.json
  sqlite: out/runs.db
gates:
  - test.auroc > 0.8
log:
  level: debug
  format: json
workers: 4
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(runFile))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "data/ppi.emb.gz", cfg.Embedding)
	assert.Equal(t, "neg_valid.csv", cfg.Edges.Validation.Negative)
	assert.Equal(t, "weightedL2", cfg.EdgeEmbeddingMethod)
	assert.Equal(t, "RF", cfg.Classifier)
	assert.Equal(t, int64(42), cfg.ClassifierOptions.Seed)
	assert.Equal(t, []int{32, 16}, cfg.ClassifierOptions.Hidden)
	assert.Equal(t, "out/runs.db", cfg.Outputs.SQLite)
	assert.Equal(t, []string{"test.auroc > 0.8"}, cfg.Gates)
	assert.Equal(t, int64(4), cfg.Workers)

	// use_validation is absent and keeps its default.
	assert.True(t, cfg.UseValidation)
	assert.Equal(t, linkeval.WithValidation, cfg.Mode())

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	var opts classifier.Options
	cfg.ClassifierOptions.Apply(&opts)
	assert.Equal(t, 50, opts.Trees)
	assert.Equal(t, int64(42), opts.Seed)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(runFile), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "RF", cfg.Classifier)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("edges: [1, 2"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "hadamard", cfg.EdgeEmbeddingMethod)
	assert.Equal(t, "SVM", cfg.Classifier)
	assert.True(t, cfg.UseValidation)
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := Parse([]byte(runFile))
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"UnknownOperator", func(c *Config) { c.EdgeEmbeddingMethod = "cosine" }, "cosine"},
		{"MissingEmbedding", func(c *Config) { c.Embedding = "" }, "embedding is required"},
		{"MissingTestEdges", func(c *Config) { c.Edges.Test.Negative = "" }, "edges.test"},
		{"MissingValidationEdges", func(c *Config) { c.Edges.Validation = EdgeFiles{} }, "edges.validation"},
		{"StrictUnknownClassifier", func(c *Config) { c.Classifier = "XGB"; c.StrictClassifier = true }, "XGB"},
		{"LogLevel", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"LogFormat", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"NegativeWorkers", func(c *Config) { c.Workers = -1 }, "workers"},
		{"BadGate", func(c *Config) { c.Gates = []string{"test.auroc >"} }, "gate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("TestOnlyNeedsNoValidationEdges", func(t *testing.T) {
		cfg := valid()
		cfg.UseValidation = false
		cfg.Edges.Validation = EdgeFiles{}

		require.NoError(t, cfg.Validate())
		assert.Equal(t, linkeval.TestOnly, cfg.Mode())
	})

	t.Run("UnknownClassifierLenient", func(t *testing.T) {
		cfg := valid()
		cfg.Classifier = "XGB"

		assert.NoError(t, cfg.Validate())
	})
}

func TestOptions(t *testing.T) {
	cfg, err := Parse([]byte(runFile))
	require.NoError(t, err)

	store, err := embedding.FromMap(map[string][]float64{"a": {1, 2}})
	require.NoError(t, err)

	ev, err := linkeval.New(store, cfg.Options(linkeval.NoopLogger(), cfg.Resource())...)
	require.NoError(t, err)

	assert.Equal(t, "weightedL2", ev.Operator().String())
	assert.Equal(t, classifier.RF, ev.Classifier())
	assert.Equal(t, linkeval.WithValidation, ev.Mode())
}

func TestCompileGates(t *testing.T) {
	cfg, err := Parse([]byte(runFile))
	require.NoError(t, err)

	gates, err := cfg.CompileGates()
	require.NoError(t, err)
	require.Len(t, gates, 1)
	assert.Equal(t, "test.auroc > 0.8", gates[0].String())
}
