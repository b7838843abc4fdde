package linkeval

import (
	"errors"
	"fmt"

	"github.com/hupe1980/linkeval/dataset"
)

// ErrNilStore is returned by New without an embedding store.
var ErrNilStore = errors.New("linkeval: embedding store is nil")

// Stage names the pipeline step that failed.
type Stage string

const (
	StageEmbed    Stage = "embed"
	StageAssemble Stage = "assemble"
	StageFit      Stage = "fit"
	StagePredict  Stage = "predict"
	StageEvaluate Stage = "evaluate"
)

// RunError wraps any failure inside Run with the context needed to tell
// which partition, operator and backend failed.
type RunError struct {
	Stage      Stage
	Partition  dataset.Partition
	Operator   string
	Classifier string
	Err        error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("linkeval: %s %s (operator=%s classifier=%s): %v",
		e.Stage, e.Partition, e.Operator, e.Classifier, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

// ErrInvalidRunMode is returned by New for a run mode outside
// WithValidation and TestOnly.
var ErrInvalidRunMode = errors.New("linkeval: invalid run mode")
