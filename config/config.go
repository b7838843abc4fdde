// Package config loads YAML run files for the linkeval command.
//
// A run file names the embedding, the six edge lists and the evaluation
// settings:
//
//	embedding: data/embedding.txt.gz
//	edges:
//	  train:      {positive: pos_train.csv, negative: neg_train.csv}
//	  validation: {positive: pos_valid.csv, negative: neg_valid.csv}
//	  test:       {positive: pos_test.csv,  negative: neg_test.csv}
//	edge_embedding_method: hadamard
//	classifier: SVM
//	use_validation: true
//	outputs:
//	  json: report.json
//	gates:
//	  - test.auroc > 0.8
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/linkeval"
	"github.com/hupe1980/linkeval/classifier"
	"github.com/hupe1980/linkeval/edge"
	"github.com/hupe1980/linkeval/gate"
	"github.com/hupe1980/linkeval/resource"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is a run file.
type Config struct {
	// Embedding is a local path or an s3:// URI of the node embedding.
	Embedding string `yaml:"embedding"`
	Edges     Edges  `yaml:"edges"`

	EdgeEmbeddingMethod string `yaml:"edge_embedding_method"`
	Classifier          string `yaml:"classifier"`
	StrictClassifier    bool   `yaml:"strict_classifier"`
	UseValidation       bool   `yaml:"use_validation"`

	ClassifierOptions ClassifierOptions `yaml:"classifier_options"`

	Outputs Outputs  `yaml:"outputs"`
	Gates   []string `yaml:"gates"`
	Log     Log      `yaml:"log"`

	// Workers bounds concurrently embedded edge lists. Zero means GOMAXPROCS.
	Workers int64 `yaml:"workers"`
	// IOLimit throttles remote embedding reads in bytes per second.
	IOLimit int64 `yaml:"io_limit"`

	LogPredictions   bool `yaml:"log_predictions"`
	ConsistencyCheck bool `yaml:"consistency_check"`
}

// Edges names the edge files per partition.
type Edges struct {
	Train      EdgeFiles `yaml:"train"`
	Validation EdgeFiles `yaml:"validation"`
	Test       EdgeFiles `yaml:"test"`
}

// EdgeFiles names the positive and negative edge file of a partition.
type EdgeFiles struct {
	Positive string `yaml:"positive"`
	Negative string `yaml:"negative"`
}

// ClassifierOptions mirrors classifier.Options. Zero values keep the
// backend defaults.
type ClassifierOptions struct {
	Seed               int64   `yaml:"seed"`
	C                  float64 `yaml:"c"`
	MaxIter            int     `yaml:"max_iter"`
	Trees              int     `yaml:"trees"`
	MaxDepth           int     `yaml:"max_depth"`
	MinSamplesLeaf     int     `yaml:"min_samples_leaf"`
	Workers            int     `yaml:"workers"`
	CalibrationFolds   int     `yaml:"calibration_folds"`
	Hidden             []int   `yaml:"hidden"`
	Epochs             int     `yaml:"epochs"`
	BatchSize          int     `yaml:"batch_size"`
	LearningRate       float64 `yaml:"learning_rate"`
	Dropout            float64 `yaml:"dropout"`
	Patience           int     `yaml:"patience"`
	ValidationFraction float64 `yaml:"validation_fraction"`
}

// Apply copies the settings into o.
func (c ClassifierOptions) Apply(o *classifier.Options) {
	o.Seed = c.Seed
	o.C = c.C
	o.MaxIter = c.MaxIter
	o.Trees = c.Trees
	o.MaxDepth = c.MaxDepth
	o.MinSamplesLeaf = c.MinSamplesLeaf
	o.Workers = c.Workers
	o.CalibrationFolds = c.CalibrationFolds
	o.Hidden = c.Hidden
	o.Epochs = c.Epochs
	o.BatchSize = c.BatchSize
	o.LearningRate = c.LearningRate
	o.Dropout = c.Dropout
	o.Patience = c.Patience
	o.ValidationFraction = c.ValidationFraction
}

// Outputs are the report sinks. Empty paths are skipped.
type Outputs struct {
	JSON   string `yaml:"json"`
	CSV    string `yaml:"csv"`
	SQLite string `yaml:"sqlite"`
}

// Log selects the log handler.
type Log struct {
	// Level is debug, info, warn or error.
	Level string `yaml:"level"`
	// Format is text or json.
	Format string `yaml:"format"`
}

// Default returns the settings used for keys absent from a run file.
func Default() *Config {
	return &Config{
		EdgeEmbeddingMethod: edge.Hadamard.String(),
		Classifier:          classifier.Default.String(),
		UseValidation:       true,
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML run file over Default.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML run file over Default.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration before any data is read.
func (c *Config) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if c.Embedding == "" {
		add("embedding is required")
	}

	required := []struct {
		name  string
		files EdgeFiles
	}{
		{"train", c.Edges.Train},
		{"test", c.Edges.Test},
	}
	if c.UseValidation {
		required = append(required, struct {
			name  string
			files EdgeFiles
		}{"validation", c.Edges.Validation})
	}
	for _, r := range required {
		if r.files.Positive == "" || r.files.Negative == "" {
			add("edges.%s needs positive and negative files", r.name)
		}
	}

	if _, err := edge.ParseOperator(c.EdgeEmbeddingMethod); err != nil {
		add("%v", err)
	}
	if c.StrictClassifier && c.Classifier != "" {
		if _, ok := classifier.ParseKind(c.Classifier); !ok {
			add("%v", &classifier.UnknownClassifierError{Name: c.Classifier})
		}
	}

	if _, err := c.Level(); err != nil {
		add("log.level: %v", err)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		add("log.format: want text or json, got %q", c.Log.Format)
	}

	if c.Workers < 0 {
		add("workers must not be negative")
	}
	if c.IOLimit < 0 {
		add("io_limit must not be negative")
	}

	if _, err := c.CompileGates(); err != nil {
		add("%v", err)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Level parses Log.Level.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if c.Log.Level == "" {
		return slog.LevelInfo, nil
	}
	err := l.UnmarshalText([]byte(c.Log.Level))
	return l, err
}

// Logger builds the configured logger writing to stderr.
func (c *Config) Logger() *linkeval.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	if strings.EqualFold(c.Log.Format, "json") {
		return linkeval.NewJSONLogger(level)
	}
	return linkeval.NewTextLogger(level)
}

// Mode returns the run mode selected by UseValidation.
func (c *Config) Mode() linkeval.RunMode {
	if c.UseValidation {
		return linkeval.WithValidation
	}
	return linkeval.TestOnly
}

// Resource returns the worker and IO limits.
func (c *Config) Resource() *resource.Controller {
	return resource.NewController(resource.Config{
		MaxWorkers:         c.Workers,
		IOLimitBytesPerSec: c.IOLimit,
	})
}

// CompileGates compiles every gate expression.
func (c *Config) CompileGates() ([]*gate.Gate, error) {
	gates := make([]*gate.Gate, 0, len(c.Gates))
	for _, expr := range c.Gates {
		g, err := gate.Compile(expr)
		if err != nil {
			return nil, err
		}
		gates = append(gates, g)
	}
	return gates, nil
}

// Options translates the configuration into evaluator options. The logger
// and resource controller are passed in so callers can share them.
func (c *Config) Options(logger *linkeval.Logger, rc *resource.Controller) []linkeval.Option {
	return []linkeval.Option{
		linkeval.WithOperator(c.EdgeEmbeddingMethod),
		linkeval.WithClassifier(c.Classifier),
		linkeval.WithStrictClassifier(c.StrictClassifier),
		linkeval.WithRunMode(c.Mode()),
		linkeval.WithClassifierOptions(c.ClassifierOptions.Apply),
		linkeval.WithLogger(logger),
		linkeval.WithResource(rc),
		linkeval.WithPredictionLogging(c.LogPredictions),
		linkeval.WithConsistencyCheck(c.ConsistencyCheck),
	}
}
