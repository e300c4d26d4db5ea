package storage

import (
	"context"

	"github.com/azrim/fhevm-examples-generator/internal/report"
)

// RunStore persists scaffold run history.
type RunStore interface {
	// SaveRun upserts a finished run and its per-example results.
	SaveRun(ctx context.Context, r *report.RunReport) error

	// ListRuns returns the most recent runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]RunRecord, error)

	// LoadRun returns the full report stored for a run ID.
	LoadRun(ctx context.Context, id string) (*report.RunReport, error)

	// ExampleHistory returns the recorded outcomes of one example, newest first.
	ExampleHistory(ctx context.Context, name string, limit int) ([]ExampleRecord, error)

	Close() error
}

// RunRecord is the summary row of one run.
type RunRecord struct {
	ID         string
	Mode       string
	StartedAt  string
	FinishedAt string
	OutputDir  string
	Total      int
	Successful int
	Failed     int
}

// ExampleRecord is one example outcome within a run.
type ExampleRecord struct {
	RunID      string
	Name       string
	Success    bool
	Error      string
	OutputDir  string
	DurationMS int64
	Warnings   []string
	FinishedAt string
}
