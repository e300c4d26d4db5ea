package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusSkipped = "skipped"
)

type Signal struct {
	Code     string  `json:"code"`
	Example  string  `json:"example,omitempty"`
	Stage    string  `json:"stage"`
	Severity string  `json:"severity"`
	Message  string  `json:"message"`
	Value    float64 `json:"value,omitempty"`
}

type StageMetric struct {
	Example    string             `json:"example,omitempty"`
	Name       string             `json:"name"`
	Status     string             `json:"status"`
	StartedAt  string             `json:"started_at"`
	FinishedAt string             `json:"finished_at"`
	DurationMS int64              `json:"duration_ms"`
	Counters   map[string]float64 `json:"counters,omitempty"`
	Notes      []string           `json:"notes,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// ExampleResult is the outcome of scaffolding one example.
type ExampleResult struct {
	Name       string   `json:"name"`
	Category   string   `json:"category,omitempty"`
	Contract   string   `json:"contract_template,omitempty"`
	Test       string   `json:"test_template,omitempty"`
	Success    bool     `json:"success"`
	Error      string   `json:"error,omitempty"`
	OutputDir  string   `json:"output_dir,omitempty"`
	ReadmePath string   `json:"readme_path,omitempty"`
	Branch     string   `json:"branch,omitempty"`
	Files      []string `json:"files,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
	DurationMS int64    `json:"duration_ms"`
}

type Summary struct {
	Total             int            `json:"total"`
	Successful        int            `json:"successful"`
	Failed            int            `json:"failed"`
	StageCount        int            `json:"stage_count"`
	FailedStages      int            `json:"failed_stages"`
	Warnings          int            `json:"warnings"`
	SignalsBySeverity map[string]int `json:"signals_by_severity"`
}

// RunReport is the deliverables record of one scaffold run.
type RunReport struct {
	Version     string          `json:"version"`
	RunID       string          `json:"run_id"`
	Mode        string          `json:"mode"`
	StartedAt   string          `json:"started_at"`
	GeneratedAt string          `json:"generated_at"`
	OutputDir   string          `json:"output_dir"`
	Examples    []ExampleResult `json:"examples"`
	Stages      []StageMetric   `json:"stages"`
	Signals     []Signal        `json:"signals"`
	Summary     Summary         `json:"summary"`
}

type StageHandle struct {
	example string
	name    string
	started time.Time
}

func NewRunReport(mode, outputDir string) *RunReport {
	now := time.Now().UTC().Format(time.RFC3339)
	return &RunReport{
		Version:     "v1",
		RunID:       uuid.NewString(),
		Mode:        mode,
		StartedAt:   now,
		GeneratedAt: now,
		OutputDir:   outputDir,
		Examples:    []ExampleResult{},
		Stages:      []StageMetric{},
		Signals:     []Signal{},
	}
}

func (r *RunReport) BeginStage(example, name string) StageHandle {
	return StageHandle{example: strings.TrimSpace(example), name: strings.TrimSpace(name), started: time.Now().UTC()}
}

func (r *RunReport) EndStage(h StageHandle, status string, counters map[string]float64, notes []string, err error) {
	if r == nil || h.name == "" {
		return
	}
	if strings.TrimSpace(status) == "" {
		status = StatusOK
	}
	finished := time.Now().UTC()
	m := StageMetric{
		Example:    h.example,
		Name:       h.name,
		Status:     status,
		StartedAt:  h.started.Format(time.RFC3339Nano),
		FinishedAt: finished.Format(time.RFC3339Nano),
		DurationMS: finished.Sub(h.started).Milliseconds(),
		Counters:   cleanCounters(counters),
		Notes:      cleanNotes(notes),
	}
	if err != nil {
		m.Error = err.Error()
		if status == StatusOK {
			m.Status = StatusError
		}
	}
	r.Stages = append(r.Stages, m)
}

func (r *RunReport) AddSignal(code, example, stage, severity, message string, value float64) {
	if r == nil {
		return
	}
	s := Signal{
		Code:     strings.TrimSpace(code),
		Example:  strings.TrimSpace(example),
		Stage:    strings.TrimSpace(stage),
		Severity: strings.ToLower(strings.TrimSpace(severity)),
		Message:  strings.TrimSpace(message),
		Value:    value,
	}
	if s.Code == "" || s.Stage == "" || s.Severity == "" || s.Message == "" {
		return
	}
	r.Signals = append(r.Signals, s)
}

func (r *RunReport) AddExample(res ExampleResult) {
	if r == nil || strings.TrimSpace(res.Name) == "" {
		return
	}
	r.Examples = append(r.Examples, res)
}

// Failed reports whether any example failed.
func (r *RunReport) Failed() bool {
	for _, ex := range r.Examples {
		if !ex.Success {
			return true
		}
	}
	return false
}

func (r *RunReport) Finalize() {
	if r == nil {
		return
	}
	r.GeneratedAt = time.Now().UTC().Format(time.RFC3339)
	severityCount := map[string]int{
		"critical": 0,
		"warning":  0,
		"info":     0,
	}
	sort.SliceStable(r.Signals, func(i, j int) bool {
		pi := signalPriority(r.Signals[i].Severity)
		pj := signalPriority(r.Signals[j].Severity)
		if pi == pj {
			if r.Signals[i].Example == r.Signals[j].Example {
				return r.Signals[i].Code < r.Signals[j].Code
			}
			return r.Signals[i].Example < r.Signals[j].Example
		}
		return pi > pj
	})
	for _, s := range r.Signals {
		severityCount[s.Severity]++
	}

	failedStages := 0
	for _, st := range r.Stages {
		if st.Status == StatusError {
			failedStages++
		}
	}

	sum := Summary{
		Total:             len(r.Examples),
		StageCount:        len(r.Stages),
		FailedStages:      failedStages,
		SignalsBySeverity: severityCount,
	}
	for _, ex := range r.Examples {
		if ex.Success {
			sum.Successful++
		} else {
			sum.Failed++
		}
		sum.Warnings += len(ex.Warnings)
	}
	r.Summary = sum
}

// Save finalizes the report and writes it as indented JSON.
func (r *RunReport) Save(path string) error {
	if r == nil {
		return nil
	}
	r.Finalize()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0644)
}

// Load reads a report written by Save.
func Load(path string) (*RunReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r RunReport
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", path, err)
	}
	return &r, nil
}

func cleanCounters(raw map[string]float64) map[string]float64 {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		key := strings.TrimSpace(k)
		if key == "" {
			continue
		}
		out[key] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func cleanNotes(raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, n := range raw {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func signalPriority(severity string) int {
	switch severity {
	case "critical":
		return 3
	case "warning":
		return 2
	default:
		return 1
	}
}
