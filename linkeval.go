package linkeval

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/linkeval/classifier"
	"github.com/hupe1980/linkeval/dataset"
	"github.com/hupe1980/linkeval/edge"
	"github.com/hupe1980/linkeval/embedding"
	"github.com/hupe1980/linkeval/metrics"
	"github.com/hupe1980/linkeval/report"
)

// RunMode selects the evaluated partitions.
type RunMode int

const (
	// WithValidation evaluates train, validation and test.
	WithValidation RunMode = iota
	// TestOnly skips the validation partition entirely.
	TestOnly
)

func (m RunMode) String() string {
	switch m {
	case WithValidation:
		return report.ModeWithValidation
	case TestOnly:
		return report.ModeTestOnly
	default:
		return fmt.Sprintf("RunMode(%d)", int(m))
	}
}

// ParseRunMode resolves a mode from its report name.
func ParseRunMode(name string) (RunMode, error) {
	switch name {
	case report.ModeWithValidation:
		return WithValidation, nil
	case report.ModeTestOnly:
		return TestOnly, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidRunMode, name)
	}
}

// Split holds the positive and negative edges of one partition.
type Split struct {
	Positive []edge.Edge
	Negative []edge.Edge
}

// Input holds the edge lists of a run. Validation is ignored in TestOnly mode.
type Input struct {
	Train      Split
	Validation Split
	Test       Split
}

func (in Input) split(p dataset.Partition) Split {
	switch p {
	case dataset.Validation:
		return in.Validation
	case dataset.Test:
		return in.Test
	default:
		return in.Train
	}
}

// Evaluator runs link prediction evaluations against one embedding store.
// It is immutable after New and safe for concurrent use.
type Evaluator struct {
	store *embedding.Store
	op    edge.Operator
	kind  classifier.Kind
	opts  options
}

// New validates the configuration. No edge data is touched.
func New(store *embedding.Store, optFns ...Option) (*Evaluator, error) {
	if store == nil {
		return nil, ErrNilStore
	}

	o := defaultOptions()
	for _, fn := range optFns {
		fn(&o)
	}

	op, err := edge.ParseOperator(o.operator)
	if err != nil {
		return nil, err
	}

	if o.mode != WithValidation && o.mode != TestOnly {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRunMode, int(o.mode))
	}

	kind := classifier.Default
	if o.classifier != "" {
		k, ok := classifier.ParseKind(o.classifier)
		switch {
		case ok:
			kind = k
		case o.strict:
			return nil, &classifier.UnknownClassifierError{Name: o.classifier}
		default:
			o.logger.LogClassifierFallback(context.Background(), o.classifier, kind.String())
		}
	}

	if o.shards <= 0 {
		o.shards = o.resource.MaxWorkers()
	}

	return &Evaluator{
		store: store,
		op:    op,
		kind:  kind,
		opts:  o,
	}, nil
}

// Operator returns the edge embedding operator.
func (e *Evaluator) Operator() edge.Operator { return e.op }

// Classifier returns the resolved backend.
func (e *Evaluator) Classifier() classifier.Kind { return e.kind }

// Mode returns the run mode.
func (e *Evaluator) Mode() RunMode { return e.opts.mode }

// Partitions returns the partitions a run evaluates, in report order.
func (e *Evaluator) Partitions() []dataset.Partition {
	if e.opts.mode == TestOnly {
		return []dataset.Partition{dataset.Train, dataset.Test}
	}
	return []dataset.Partition{dataset.Train, dataset.Validation, dataset.Test}
}

// Run embeds the edge lists, fits a fresh classifier on train and scores
// every partition. On error the report is nil and the error is a *RunError.
func (e *Evaluator) Run(ctx context.Context, in Input) (rep *report.Report, err error) {
	start := time.Now()
	runID := uuid.NewString()
	log := e.opts.logger.WithRun(runID)

	defer func() {
		e.opts.metricsCollector.RecordRun(time.Since(start), err)
		log.LogRun(ctx, rep, time.Since(start), err)
	}()

	parts := e.Partitions()

	sets, err := e.assemble(ctx, log, in, parts)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, e.fail(StageFit, dataset.Train, err)
	}

	b, err := bind(e.kind, e.opts.classifierOpts)
	if err != nil {
		return nil, e.fail(StageFit, dataset.Train, err)
	}

	train := sets[dataset.Train]
	fitStart := time.Now()
	err = b.fit(train)
	e.opts.metricsCollector.RecordFit(b.name, train.Rows(), time.Since(fitStart), err)
	log.LogFit(ctx, b.name, train.Rows(), time.Since(fitStart), err)
	if err != nil {
		return nil, e.fail(StageFit, dataset.Train, err)
	}

	out := &report.Report{
		RunID:      runID,
		CreatedAt:  time.Now().UTC(),
		Operator:   e.op.String(),
		Classifier: b.name,
		Mode:       e.opts.mode.String(),
	}

	for _, p := range parts {
		if err := ctx.Err(); err != nil {
			return nil, e.fail(StagePredict, p, err)
		}

		d := sets[p]
		scores, err := e.score(ctx, log, b, d, in.split(p))
		if err != nil {
			return nil, err
		}
		log.LogPartition(ctx, p, scores)
		out.Add(p, d.NumPositive, d.NumNegative, scores)
	}

	return out, nil
}

type listJob struct {
	partition dataset.Partition
	polarity  string
	edges     []edge.Edge
	out       **edge.Embeddings
}

// assemble embeds every edge list concurrently and stacks them into one
// dataset per partition.
func (e *Evaluator) assemble(ctx context.Context, log *Logger, in Input, parts []dataset.Partition) (map[dataset.Partition]*dataset.Dataset, error) {
	pos := make([]*edge.Embeddings, len(parts))
	neg := make([]*edge.Embeddings, len(parts))

	jobs := make([]listJob, 0, 2*len(parts))
	for i, p := range parts {
		s := in.split(p)
		jobs = append(jobs,
			listJob{partition: p, polarity: "positive", edges: s.Positive, out: &pos[i]},
			listJob{partition: p, polarity: "negative", edges: s.Negative, out: &neg[i]},
		)
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, j := range jobs {
		g.Go(func() error {
			if err := e.opts.resource.AcquireWorker(gctx); err != nil {
				return e.fail(StageEmbed, j.partition, err)
			}
			defer e.opts.resource.ReleaseWorker()

			if log.Enabled(gctx, slog.LevelInfo) {
				log.LogEdgeList(gctx, j.partition, j.polarity, edge.Describe(j.edges, e.store))
			}

			embedStart := time.Now()
			emb, err := edge.EmbedParallel(gctx, j.edges, e.store, e.op, e.opts.shards)
			e.opts.metricsCollector.RecordEmbed(j.partition.String(), len(j.edges), time.Since(embedStart), err)
			if err != nil {
				return e.fail(StageEmbed, j.partition, err)
			}
			*j.out = emb
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sets := make(map[dataset.Partition]*dataset.Dataset, len(parts))
	for i, p := range parts {
		d, err := dataset.Assemble(p, pos[i], neg[i])
		if err != nil {
			return nil, e.fail(StageAssemble, p, err)
		}
		sets[p] = d
	}
	return sets, nil
}

func (e *Evaluator) score(ctx context.Context, log *Logger, b *binding, d *dataset.Dataset, s Split) (metrics.Scores, error) {
	p := d.Partition

	predictStart := time.Now()
	labels, proba, err := b.predict(d)
	e.opts.metricsCollector.RecordPredict(p.String(), d.Rows(), time.Since(predictStart), err)
	if err != nil {
		return metrics.Scores{}, e.fail(StagePredict, p, err)
	}

	if e.opts.consistencyCheck {
		if n := inconsistent(labels, proba); n > 0 {
			log.LogInconsistent(ctx, p, n, len(labels))
		}
	}

	if e.opts.logPredictions && p != dataset.Train {
		for i, edges := range [][]edge.Edge{s.Positive, s.Negative} {
			offset := i * d.NumPositive
			for j, ed := range edges {
				r := offset + j
				log.LogPrediction(ctx, p, ed, d.Labels[r], labels[r], proba[r])
			}
		}
	}

	scores, err := metrics.Evaluate(d.Labels, labels, proba)
	if err != nil {
		return metrics.Scores{}, e.fail(StageEvaluate, p, err)
	}
	return scores, nil
}

// inconsistent counts labels that disagree with the probability threshold.
func inconsistent(labels []int, proba []float64) int {
	n := 0
	for i, l := range labels {
		want := 0
		if proba[i] > 0.5 {
			want = 1
		}
		if l != want {
			n++
		}
	}
	return n
}

func (e *Evaluator) fail(stage Stage, p dataset.Partition, err error) error {
	return &RunError{
		Stage:      stage,
		Partition:  p,
		Operator:   e.op.String(),
		Classifier: e.kind.String(),
		Err:        err,
	}
}

// binding hides the single-input / pair-input split of the backends behind
// one fit and one predict call.
type binding struct {
	name    string
	fit     func(d *dataset.Dataset) error
	predict func(d *dataset.Dataset) ([]int, []float64, error)
}

func bind(kind classifier.Kind, optFns []func(*classifier.Options)) (*binding, error) {
	m, err := classifier.Build(kind, optFns...)
	if err != nil {
		return nil, err
	}

	switch m := m.(type) {
	case classifier.PairModel:
		return &binding{
			name: m.Name(),
			fit: func(d *dataset.Dataset) error {
				return m.FitPair(d.Src, d.Dst, d.Labels)
			},
			predict: func(d *dataset.Dataset) ([]int, []float64, error) {
				labels, err := m.PredictPair(d.Src, d.Dst)
				if err != nil {
					return nil, nil, err
				}
				proba, err := m.PredictProbaPair(d.Src, d.Dst)
				if err != nil {
					return nil, nil, err
				}
				return labels, proba, nil
			},
		}, nil
	case classifier.Model:
		return &binding{
			name: m.Name(),
			fit: func(d *dataset.Dataset) error {
				return m.Fit(d.X, d.Labels)
			},
			predict: func(d *dataset.Dataset) ([]int, []float64, error) {
				labels, err := m.Predict(d.X)
				if err != nil {
					return nil, nil, err
				}
				proba, err := m.PredictProba(d.X)
				if err != nil {
					return nil, nil, err
				}
				return labels, proba, nil
			},
		}, nil
	default:
		return nil, &classifier.UnknownClassifierError{Name: kind.String()}
	}
}
