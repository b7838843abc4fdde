package report

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hupe1980/linkeval/metrics"
	_ "modernc.org/sqlite"
)

// ErrRunNotFound is returned by Load for an unknown run id.
var ErrRunNotFound = errors.New("report: run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id     TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	operator   TEXT NOT NULL,
	classifier TEXT NOT NULL,
	mode       TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS partitions (
	run_id    TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
	split     TEXT NOT NULL,
	positives INTEGER NOT NULL,
	negatives INTEGER NOT NULL,
	tn INTEGER NOT NULL,
	fp INTEGER NOT NULL,
	fn INTEGER NOT NULL,
	tp INTEGER NOT NULL,
	PRIMARY KEY (run_id, split)
);
CREATE TABLE IF NOT EXISTS metrics (
	run_id    TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
	split     TEXT NOT NULL,
	metric    TEXT NOT NULL,
	value     REAL,
	PRIMARY KEY (run_id, split, metric)
);
`

// SQLiteSink persists reports into a SQLite database. Undefined metrics are
// stored as NULL.
type SQLiteSink struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("report: create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("report: open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("report: enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("report: enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("report: create schema: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

// Write stores r in one transaction.
func (s *SQLiteSink) Write(ctx context.Context, r *Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, created_at, operator, classifier, mode) VALUES (?, ?, ?, ?, ?)`,
		r.RunID, r.CreatedAt.UTC().Format(time.RFC3339Nano), r.Operator, r.Classifier, r.Mode,
	); err != nil {
		return fmt.Errorf("report: insert run: %w", err)
	}

	for _, p := range r.Partitions {
		cm := p.Scores.Confusion
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO partitions (run_id, split, positives, negatives, tn, fp, fn, tp) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.RunID, p.Name, p.Positives, p.Negatives, cm.TN(), cm.FP(), cm.FN(), cm.TP(),
		); err != nil {
			return fmt.Errorf("report: insert partition %s: %w", p.Name, err)
		}
		for _, name := range metrics.Names() {
			v, _ := p.Scores.Get(name)
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO metrics (run_id, split, metric, value) VALUES (?, ?, ?, ?)`,
				r.RunID, p.Name, name, v,
			); err != nil {
				return fmt.Errorf("report: insert metric %s.%s: %w", p.Name, name, err)
			}
		}
	}
	return tx.Commit()
}

// Load reads a stored report back.
func (s *SQLiteSink) Load(ctx context.Context, runID string) (*Report, error) {
	r := &Report{RunID: runID}
	var created string
	err := s.db.QueryRowContext(ctx,
		`SELECT created_at, operator, classifier, mode FROM runs WHERE run_id = ?`, runID,
	).Scan(&created, &r.Operator, &r.Classifier, &r.Mode)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, err
	}
	if r.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT split, positives, negatives, tn, fp, fn, tp FROM partitions WHERE run_id = ?`, runID)
	if err != nil {
		return nil, err
	}
	var parts []Partition
	for rows.Next() {
		var p Partition
		var cm metrics.ConfusionMatrix
		if err := rows.Scan(&p.Name, &p.Positives, &p.Negatives, &cm[0][0], &cm[0][1], &cm[1][0], &cm[1][1]); err != nil {
			_ = rows.Close()
			return nil, err
		}
		p.Scores.Confusion = cm
		parts = append(parts, p)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}

	for i := range parts {
		if err := s.loadMetrics(ctx, runID, &parts[i]); err != nil {
			return nil, err
		}
	}
	r.Partitions = parts
	sortPartitions(r.Partitions)
	return r, nil
}

func (s *SQLiteSink) loadMetrics(ctx context.Context, runID string, p *Partition) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT metric, value FROM metrics WHERE run_id = ? AND split = ?`, runID, p.Name)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var name string
		var value sql.NullFloat64
		if err := rows.Scan(&name, &value); err != nil {
			return err
		}
		v := metrics.Undefined
		if value.Valid {
			v = metrics.Defined(value.Float64)
		}
		switch name {
		case metrics.NameAccuracy:
			p.Scores.Accuracy = v
		case metrics.NameSpecificity:
			p.Scores.Specificity = v
		case metrics.NameSensitivity:
			p.Scores.Sensitivity = v
		case metrics.NameF1:
			p.Scores.F1 = v
		case metrics.NameROCAUC:
			p.Scores.ROCAUC = v
		case metrics.NameAveragePrecision:
			p.Scores.AveragePrecision = v
		}
	}
	return rows.Err()
}

// RunIDs lists stored runs, oldest first.
func (s *SQLiteSink) RunIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT run_id FROM runs ORDER BY created_at, run_id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Close closes the database.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
