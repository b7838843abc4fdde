package linkeval

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/linkeval/dataset"
	"github.com/hupe1980/linkeval/edge"
	"github.com/hupe1980/linkeval/metrics"
	"github.com/hupe1980/linkeval/report"
)

// Logger wraps slog.Logger with linkeval-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithRun tags every record with the run id.
func (l *Logger) WithRun(runID string) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", runID),
	}
}

// LogClassifierFallback notes that an unknown classifier was replaced by the default.
func (l *Logger) LogClassifierFallback(ctx context.Context, requested, fallback string) {
	l.WarnContext(ctx, "unknown classifier, using default",
		"requested", requested,
		"classifier", fallback,
	)
}

// LogEdgeList logs the node and link counts of one edge list.
func (l *Logger) LogEdgeList(ctx context.Context, p dataset.Partition, polarity string, st edge.Stats) {
	l.InfoContext(ctx, "edge list",
		"partition", p.String(),
		"polarity", polarity,
		"edges", st.Edges,
		"links", st.Links,
		"nodes", st.Nodes,
		"missing_nodes", st.Missing,
	)
}

// LogFit logs the classifier training.
func (l *Logger) LogFit(ctx context.Context, classifier string, rows int, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "fit failed",
			"classifier", classifier,
			"rows", rows,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "fit completed",
			"classifier", classifier,
			"rows", rows,
			"duration", duration,
		)
	}
}

// LogPartition logs the metrics of one partition.
func (l *Logger) LogPartition(ctx context.Context, p dataset.Partition, s metrics.Scores) {
	cm := s.Confusion
	l.InfoContext(ctx, "partition evaluated",
		"partition", p.String(),
		"tn", cm.TN(),
		"fp", cm.FP(),
		"fn", cm.FN(),
		"tp", cm.TP(),
		metrics.NameAccuracy, s.Accuracy.String(),
		metrics.NameSpecificity, s.Specificity.String(),
		metrics.NameSensitivity, s.Sensitivity.String(),
		metrics.NameF1, s.F1.String(),
		metrics.NameROCAUC, s.ROCAUC.String(),
		metrics.NameAveragePrecision, s.AveragePrecision.String(),
	)
}

// LogPrediction logs one edge with its actual and predicted label.
func (l *Logger) LogPrediction(ctx context.Context, p dataset.Partition, e edge.Edge, actual, predicted int, proba float64) {
	l.DebugContext(ctx, "edge prediction",
		"partition", p.String(),
		"src", e.Src,
		"dst", e.Dst,
		"label", actual,
		"predicted", predicted,
		"probability", proba,
	)
}

// LogInconsistent warns about labels disagreeing with the probabilities.
func (l *Logger) LogInconsistent(ctx context.Context, p dataset.Partition, count, total int) {
	l.WarnContext(ctx, "predicted labels disagree with probabilities",
		"partition", p.String(),
		"count", count,
		"total", total,
	)
}

// LogRun logs the outcome of a run.
func (l *Logger) LogRun(ctx context.Context, r *report.Report, duration time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "run failed",
			"error", err,
			"duration", duration,
		)
	} else {
		l.InfoContext(ctx, "run completed",
			"operator", r.Operator,
			"classifier", r.Classifier,
			"mode", r.Mode,
			"partitions", len(r.Partitions),
			"duration", duration,
		)
	}
}
