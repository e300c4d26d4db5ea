package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/azrim/fhevm-examples-generator/internal/logger"
)

// Step is one command of the example toolchain.
type Step struct {
	Name string
	Cmd  string
	Args []string
}

// DefaultSteps installs dependencies, compiles contracts and runs the tests.
var DefaultSteps = []Step{
	{Name: "install", Cmd: "npm", Args: []string{"ci"}},
	{Name: "compile", Cmd: "npx", Args: []string{"hardhat", "compile"}},
	{Name: "test", Cmd: "npm", Args: []string{"test"}},
}

// Runner executes a command in dir.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// ExecRunner runs commands as child processes.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w\n%s", name, strings.Join(args, " "), err, tail(out.String(), 40))
	}
	return nil
}

func tail(s string, lines int) string {
	parts := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(parts) > lines {
		parts = parts[len(parts)-lines:]
	}
	return strings.Join(parts, "\n")
}

// StepResult records one executed step.
type StepResult struct {
	Step     string        `json:"step"`
	Duration time.Duration `json:"duration"`
	Error    string        `json:"error,omitempty"`
}

type Toolchain struct {
	runner  Runner
	steps   []Step
	timeout time.Duration
	log     *logger.Logger
}

// New builds a toolchain. A nil runner means ExecRunner; a zero timeout means none.
func New(runner Runner, timeout time.Duration, log *logger.Logger) *Toolchain {
	if runner == nil {
		runner = ExecRunner{}
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Toolchain{runner: runner, steps: DefaultSteps, timeout: timeout, log: log}
}

// WithSteps replaces the steps to run.
func (t *Toolchain) WithSteps(steps []Step) *Toolchain {
	t.steps = steps
	return t
}

// Run executes the steps in dir in order and stops at the first failure.
// The timeout covers the whole sequence.
func (t *Toolchain) Run(ctx context.Context, dir string) ([]StepResult, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	results := make([]StepResult, 0, len(t.steps))
	for _, s := range t.steps {
		t.log.CommandStarted(dir, s.Cmd, s.Args)
		start := time.Now()
		err := t.runner.Run(ctx, dir, s.Cmd, s.Args...)

		res := StepResult{Step: s.Name, Duration: time.Since(start)}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				err = fmt.Errorf("%w (%v)", ctxErr, err)
			}
			res.Error = err.Error()
			results = append(results, res)
			return results, fmt.Errorf("toolchain step %s failed: %w", s.Name, err)
		}
		results = append(results, res)
	}
	return results, nil
}
