package logger

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// NewFromString creates a logger from a level name such as "debug" or "warn".
// Unknown names fall back to info.
func NewFromString(w io.Writer, level string) *Logger {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = log.InfoLevel
	}
	return NewWithLevel(w, lvl)
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// ExampleStarted logs the start of scaffolding one example
func (l *Logger) ExampleStarted(name, outputDir string) {
	l.Info("example started",
		"example", name,
		"output_dir", outputDir)
}

// ExampleFinished logs the outcome of scaffolding one example
func (l *Logger) ExampleFinished(name string, success bool, duration time.Duration) {
	l.Info("example finished",
		"example", name,
		"success", success,
		"duration", duration.Round(time.Millisecond))
}

// TestsDiscovered logs how many test sources feed an example's documentation
func (l *Logger) TestsDiscovered(dir string, count int) {
	l.Debug("test files discovered",
		"dir", dir,
		"count", count)
}

// ReadmeGenerated logs a written README
func (l *Logger) ReadmeGenerated(example, path string) {
	l.Info("readme generated",
		"example", example,
		"path", path)
}

// CommentSkipped logs a block comment that yielded no tags
func (l *Logger) CommentSkipped(file string, line int, reason string) {
	l.Warn("comment skipped",
		"file", file,
		"line", line,
		"reason", reason)
}

// ValidationReported logs the outcome of a template check
func (l *Logger) ValidationReported(template string, valid bool, errors, warnings int) {
	l.Debug("template validated",
		"template", template,
		"valid", valid,
		"errors", errors,
		"warnings", warnings)
}

// FileError logs an error for a specific file
func (l *Logger) FileError(file string, err error) {
	l.Error("file error",
		"file", file,
		"error", err)
}

// StageFailed logs a failed pipeline stage
func (l *Logger) StageFailed(stage, example string, err error) {
	l.Error("stage failed",
		"stage", stage,
		"example", example,
		"error", err)
}

// CommandStarted logs an external command invocation
func (l *Logger) CommandStarted(dir, name string, args []string) {
	l.Debug("running command",
		"dir", dir,
		"cmd", name,
		"args", strings.Join(args, " "))
}
