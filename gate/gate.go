// Package gate evaluates quality gates over evaluation reports.
//
// A gate is a CEL expression returning bool. The partitions are exposed as
// maps named train, validation and test holding every metric (null when
// undefined) plus the positives, negatives, tn, fp, fn and tp counts; a
// partition missing from the report is an empty map, so has() is false
// there, while an undefined metric is a present null. The strings
// classifier, operator and mode describe the run.
//
//	test.auroc > 0.8 && test.f1 >= 0.7
//	!has(validation.auroc) || validation.auroc == null || validation.auroc > 0.75
//	classifier != "RF" || train.accuracy < 0.999
package gate

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/hupe1980/linkeval/dataset"
	"github.com/hupe1980/linkeval/metrics"
	"github.com/hupe1980/linkeval/report"
)

var (
	env     *cel.Env
	envErr  error
	envOnce sync.Once
)

func celEnv() (*cel.Env, error) {
	envOnce.Do(func() {
		partition := cel.MapType(cel.StringType, cel.DynType)
		env, envErr = cel.NewEnv(
			cel.Variable(dataset.Train.String(), partition),
			cel.Variable(dataset.Validation.String(), partition),
			cel.Variable(dataset.Test.String(), partition),
			cel.Variable("classifier", cel.StringType),
			cel.Variable("operator", cel.StringType),
			cel.Variable("mode", cel.StringType),
		)
	})
	return env, envErr
}

// FailedError reports a gate that evaluated to false.
type FailedError struct {
	Expr string
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("gate: %q failed", e.Expr)
}

// Gate is a compiled expression. It is safe for concurrent use.
type Gate struct {
	expr string
	prg  cel.Program
}

// Compile parses and type-checks expr.
func Compile(expr string) (*Gate, error) {
	e, err := celEnv()
	if err != nil {
		return nil, fmt.Errorf("gate: environment: %w", err)
	}

	ast, iss := e.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("gate: compile %q: %w", expr, iss.Err())
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("gate: %q must return bool, returns %s", expr, out)
	}

	prg, err := e.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("gate: program %q: %w", expr, err)
	}
	return &Gate{expr: expr, prg: prg}, nil
}

// MustCompile is Compile that panics on error.
func MustCompile(expr string) *Gate {
	g, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Gate) String() string { return g.expr }

// Check evaluates the gate against r. Comparing an undefined metric is an
// evaluation error, not a failed gate.
func (g *Gate) Check(r *report.Report) (bool, error) {
	out, _, err := g.prg.Eval(activation(r))
	if err != nil {
		return false, fmt.Errorf("gate: evaluate %q: %w", g.expr, err)
	}
	passed, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("gate: %q returned %T, want bool", g.expr, out.Value())
	}
	return passed, nil
}

// CheckAll evaluates every gate and joins the failures.
func CheckAll(r *report.Report, gates ...*Gate) error {
	var errs []error
	for _, g := range gates {
		passed, err := g.Check(r)
		switch {
		case err != nil:
			errs = append(errs, err)
		case !passed:
			errs = append(errs, &FailedError{Expr: g.expr})
		}
	}
	return errors.Join(errs...)
}

func activation(r *report.Report) map[string]any {
	vars := map[string]any{
		"classifier": r.Classifier,
		"operator":   r.Operator,
		"mode":       r.Mode,
	}
	for _, p := range []dataset.Partition{dataset.Train, dataset.Validation, dataset.Test} {
		vars[p.String()] = map[string]any{}
	}

	for _, p := range r.Partitions {
		m := map[string]any{
			"positives": int64(p.Positives),
			"negatives": int64(p.Negatives),
			"tn":        int64(p.Scores.Confusion.TN()),
			"fp":        int64(p.Scores.Confusion.FP()),
			"fn":        int64(p.Scores.Confusion.FN()),
			"tp":        int64(p.Scores.Confusion.TP()),
		}
		for _, name := range metrics.Names() {
			v, _ := p.Scores.Get(name)
			if f, ok := v.Float(); ok {
				m[name] = f
			} else {
				m[name] = nil
			}
		}
		vars[p.Name] = m
	}
	return vars
}
