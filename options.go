package linkeval

import (
	"github.com/hupe1980/linkeval/classifier"
	"github.com/hupe1980/linkeval/edge"
	"github.com/hupe1980/linkeval/resource"
)

type options struct {
	operator         string
	classifier       string
	strict           bool
	mode             RunMode
	classifierOpts   []func(*classifier.Options)
	logger           *Logger
	metricsCollector MetricsCollector
	resource         *resource.Controller
	shards           int
	consistencyCheck bool
	logPredictions   bool
}

func defaultOptions() options {
	return options{
		operator:         edge.Hadamard.String(),
		classifier:       classifier.Default.String(),
		mode:             WithValidation,
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
}

// Option configures an Evaluator.
type Option func(*options)

// WithOperator selects the edge embedding operator by name
// ("hadamard", "average", "weightedL1", "weightedL2"). Default hadamard.
func WithOperator(name string) Option {
	return func(o *options) {
		o.operator = name
	}
}

// WithClassifier selects the backend by name ("LR", "RF", "SVM", "MLP",
// "FFNN", "MultiModalFFNN"). Unknown names fall back to SVM unless
// WithStrictClassifier is set. Empty selects the default.
func WithClassifier(name string) Option {
	return func(o *options) {
		o.classifier = name
	}
}

// WithStrictClassifier makes New reject unknown classifier names instead of
// falling back to the default.
func WithStrictClassifier(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// WithRunMode selects whether the validation partition is evaluated.
func WithRunMode(mode RunMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithClassifierOptions tunes the backend (seed, epochs, trees, ...).
func WithClassifierOptions(optFns ...func(*classifier.Options)) Option {
	return func(o *options) {
		o.classifierOpts = append(o.classifierOpts, optFns...)
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector.
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithResource bounds the concurrent embedding workers. Runs sharing a
// controller share its worker slots.
func WithResource(rc *resource.Controller) Option {
	return func(o *options) {
		o.resource = rc
	}
}

// WithShards splits every edge list into n ranges embedded concurrently.
// Zero uses the worker limit of the resource controller.
func WithShards(n int) Option {
	return func(o *options) {
		o.shards = n
	}
}

// WithConsistencyCheck logs a warning when predicted labels disagree with
// the 0.5 probability threshold. It never fails a run.
func WithConsistencyCheck(enabled bool) Option {
	return func(o *options) {
		o.consistencyCheck = enabled
	}
}

// WithPredictionLogging logs every validation and test edge with its
// actual and predicted label at debug level.
func WithPredictionLogging(enabled bool) Option {
	return func(o *options) {
		o.logPredictions = enabled
	}
}
