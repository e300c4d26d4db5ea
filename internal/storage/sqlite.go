package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/azrim/fhevm-examples-generator/internal/report"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db *sql.DB
}

var _ RunStore = (*SQLiteStore)(nil)

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			mode TEXT,
			started_at TEXT,
			finished_at TEXT,
			output_dir TEXT,
			total INTEGER,
			successful INTEGER,
			failed INTEGER,
			report JSON
		);`,
		`CREATE TABLE IF NOT EXISTS examples (
			run_id TEXT,
			name TEXT,
			success INTEGER,
			error TEXT,
			output_dir TEXT,
			duration_ms INTEGER,
			warnings JSON,
			PRIMARY KEY (run_id, name)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_examples_name ON examples(name);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, r *report.RunReport) error {
	if r == nil || r.RunID == "" {
		return fmt.Errorf("run report has no id")
	}
	r.Finalize()

	full, err := json.Marshal(r)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, mode, started_at, finished_at, output_dir, total, successful, failed, report)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			mode=excluded.mode,
			started_at=excluded.started_at,
			finished_at=excluded.finished_at,
			output_dir=excluded.output_dir,
			total=excluded.total,
			successful=excluded.successful,
			failed=excluded.failed,
			report=excluded.report
	`, r.RunID, r.Mode, r.StartedAt, r.GeneratedAt, r.OutputDir, r.Summary.Total, r.Summary.Successful, r.Summary.Failed, full)
	if err != nil {
		return err
	}

	// A re-saved run replaces its example rows.
	if _, err := tx.ExecContext(ctx, "DELETE FROM examples WHERE run_id = ?", r.RunID); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO examples (run_id, name, success, error, output_dir, duration_ms, warnings)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, name) DO UPDATE SET
			success=excluded.success,
			error=excluded.error,
			output_dir=excluded.output_dir,
			duration_ms=excluded.duration_ms,
			warnings=excluded.warnings
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, ex := range r.Examples {
		warnings, err := json.Marshal(ex.Warnings)
		if err != nil {
			return fmt.Errorf("failed to encode warnings for %s: %w", ex.Name, err)
		}
		if _, err := stmt.ExecContext(ctx, r.RunID, ex.Name, ex.Success, ex.Error, ex.OutputDir, ex.DurationMS, warnings); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, mode, started_at, finished_at, output_dir, total, successful, failed
		FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.Mode, &r.StartedAt, &r.FinishedAt, &r.OutputDir, &r.Total, &r.Successful, &r.Failed); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

func (s *SQLiteStore) LoadRun(ctx context.Context, id string) (*report.RunReport, error) {
	var data []byte
	if err := s.db.QueryRowContext(ctx, "SELECT report FROM runs WHERE id = ?", id).Scan(&data); err != nil {
		return nil, err
	}
	var r report.RunReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode run %s: %w", id, err)
	}
	return &r, nil
}

func (s *SQLiteStore) ExampleHistory(ctx context.Context, name string, limit int) ([]ExampleRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT e.run_id, e.name, e.success, e.error, e.output_dir, e.duration_ms, e.warnings, r.finished_at
		FROM examples e JOIN runs r ON r.id = e.run_id
		WHERE e.name = ?
		ORDER BY r.started_at DESC, r.rowid DESC LIMIT ?`, name, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExampleRecord
	for rows.Next() {
		var rec ExampleRecord
		var warnings []byte
		if err := rows.Scan(&rec.RunID, &rec.Name, &rec.Success, &rec.Error, &rec.OutputDir, &rec.DurationMS, &warnings, &rec.FinishedAt); err != nil {
			return nil, err
		}
		if len(warnings) > 0 {
			if err := json.Unmarshal(warnings, &rec.Warnings); err != nil {
				return nil, fmt.Errorf("failed to decode warnings for %s in run %s: %w", rec.Name, rec.RunID, err)
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
