package report

import (
	"encoding/csv"
	"io"
	"time"
)

var csvMeta = []string{"run_id", "created_at", "operator", "classifier", "mode"}

// CSVWriter writes one row per report with one column per partition and
// metric. Partitions a report lacks are left empty; undefined metrics are
// written as "undefined".
type CSVWriter struct {
	w      *csv.Writer
	header bool
}

// NewCSVWriter returns a writer that emits the header before the first row.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(w), header: true}
}

// SkipHeader suppresses the header, for appending to an existing file.
func (cw *CSVWriter) SkipHeader() *CSVWriter {
	cw.header = false
	return cw
}

// Write appends r and flushes.
func (cw *CSVWriter) Write(r *Report) error {
	if cw.header {
		if err := cw.w.Write(append(append([]string(nil), csvMeta...), Columns()...)); err != nil {
			return err
		}
		cw.header = false
	}

	values := make(map[string]string)
	for _, f := range r.Flatten() {
		values[f.Key] = f.Value.String()
	}

	row := []string{r.RunID, r.CreatedAt.UTC().Format(time.RFC3339), r.Operator, r.Classifier, r.Mode}
	for _, col := range Columns() {
		row = append(row, values[col])
	}
	if err := cw.w.Write(row); err != nil {
		return err
	}
	cw.w.Flush()
	return cw.w.Error()
}
