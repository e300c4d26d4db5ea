package scaffold

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/azrim/fhevm-examples-generator/internal/generator"
	"github.com/azrim/fhevm-examples-generator/internal/git"
	"github.com/azrim/fhevm-examples-generator/internal/logger"
	"github.com/azrim/fhevm-examples-generator/internal/report"
	"github.com/azrim/fhevm-examples-generator/internal/toolchain"
	"github.com/azrim/fhevm-examples-generator/internal/validation"
)

var (
	ErrTemplateInvalid     = errors.New("template validation failed")
	ErrBaseTemplateMissing = errors.New("base template not found")
)

// ContractsDir holds the Solidity sources of a scaffolded example.
const ContractsDir = "contracts"

// Options describe one example to scaffold.
type Options struct {
	Name             string
	Category         string
	ContractTemplate string
	TestTemplate     string
	OutDir           string
	BaseTemplateDir  string
	RunToolchain     bool
	InitGit          bool
}

// Result describes a scaffolded example.
type Result struct {
	Name       string
	OutputDir  string
	ReadmePath string
	Branch     string
	Files      []string // relative to OutputDir
	Warnings   []string
	Validation validation.PairResult
	Toolchain  []toolchain.StepResult
}

// Scaffolder assembles standalone example projects from the base template.
type Scaffolder struct {
	docs      *generator.ReadmeGenerator
	toolchain *toolchain.Toolchain
	log       *logger.Logger
}

func New(docs *generator.ReadmeGenerator, tc *toolchain.Toolchain, log *logger.Logger) *Scaffolder {
	if log == nil {
		log = logger.Discard()
	}
	if tc == nil {
		tc = toolchain.New(nil, 0, log)
	}
	return &Scaffolder{docs: docs, toolchain: tc, log: log}
}

func (o Options) validate() error {
	switch {
	case o.Name == "":
		return errors.New("example name is required")
	case filepath.Base(o.Name) != o.Name || o.Name == "." || o.Name == "..":
		return fmt.Errorf("invalid example name %q", o.Name)
	case o.ContractTemplate == "" || o.TestTemplate == "":
		return errors.New("contract and test templates are required")
	case o.OutDir == "":
		return errors.New("output directory is required")
	}
	return nil
}

// Create scaffolds one example. Stages are recorded into rep when it is not nil.
// README generation problems are reported as warnings and do not fail the example.
func (s *Scaffolder) Create(ctx context.Context, opts Options, rep *report.RunReport) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	outputDir := filepath.Join(opts.OutDir, opts.Name)
	res := &Result{Name: opts.Name, OutputDir: outputDir}
	s.log.ExampleStarted(opts.Name, outputDir)

	// 1. Validate templates
	h := rep.BeginStage(opts.Name, "validate")
	pair, err := validation.ValidateBoth(ctx, opts.ContractTemplate, opts.TestTemplate)
	if err != nil {
		rep.EndStage(h, "", nil, nil, err)
		return res, err
	}
	res.Validation = pair
	res.Warnings = append(res.Warnings, pair.Contract.Warnings...)
	res.Warnings = append(res.Warnings, pair.Test.Warnings...)
	s.log.ValidationReported(opts.ContractTemplate, pair.Contract.Valid, len(pair.Contract.Errors), len(pair.Contract.Warnings))
	s.log.ValidationReported(opts.TestTemplate, pair.Test.Valid, len(pair.Test.Errors), len(pair.Test.Warnings))
	counters := map[string]float64{
		"errors":   float64(len(pair.Contract.Errors) + len(pair.Test.Errors)),
		"warnings": float64(len(res.Warnings)),
	}
	if !pair.Valid() {
		errs := append(append([]string{}, pair.Contract.Errors...), pair.Test.Errors...)
		err := fmt.Errorf("%w: %v", ErrTemplateInvalid, errs)
		rep.EndStage(h, report.StatusError, counters, errs, err)
		rep.AddSignal("template_invalid", opts.Name, "validate", "critical", err.Error(), counters["errors"])
		return res, err
	}
	rep.EndStage(h, report.StatusOK, counters, nil, nil)
	for _, w := range res.Warnings {
		rep.AddSignal("template_warning", opts.Name, "validate", "warning", w, 0)
	}

	// 2. Copy base template
	h = rep.BeginStage(opts.Name, "copy_base")
	copied, err := s.copyBase(opts.BaseTemplateDir, outputDir)
	rep.EndStage(h, "", map[string]float64{"files": float64(copied)}, nil, err)
	if err != nil {
		return res, err
	}

	// 3. Install templates
	h = rep.BeginStage(opts.Name, "install_templates")
	files, err := installTemplates(outputDir, opts.ContractTemplate, opts.TestTemplate)
	rep.EndStage(h, "", map[string]float64{"files": float64(len(files))}, nil, err)
	if err != nil {
		return res, err
	}
	res.Files = append(res.Files, files...)

	// 4. README
	h = rep.BeginStage(opts.Name, "generate_docs")
	readme, err := s.docs.GenerateDocs(ctx, outputDir, opts.Name)
	if err != nil {
		w := fmt.Sprintf("README generation failed: %v", err)
		res.Warnings = append(res.Warnings, w)
		rep.EndStage(h, report.StatusSkipped, nil, []string{w}, nil)
		rep.AddSignal("readme_failed", opts.Name, "generate_docs", "warning", w, 0)
	} else {
		res.ReadmePath = readme
		res.Files = append(res.Files, generator.ReadmeName)
		rep.EndStage(h, report.StatusOK, nil, nil, nil)
	}

	// 5. Toolchain
	if opts.RunToolchain {
		h = rep.BeginStage(opts.Name, "toolchain")
		steps, err := s.toolchain.Run(ctx, outputDir)
		res.Toolchain = steps
		rep.EndStage(h, "", map[string]float64{"steps": float64(len(steps))}, nil, err)
		if err != nil {
			return res, err
		}
	}

	// 6. Git repository
	if opts.InitGit {
		h = rep.BeginStage(opts.Name, "git_init")
		err := git.InitExample(ctx, outputDir, opts.Name)
		rep.EndStage(h, "", nil, nil, err)
		if err != nil {
			return res, fmt.Errorf("failed to initialise git repository: %w", err)
		}
		res.Branch = git.BranchPrefix + opts.Name
	}

	return res, nil
}

func (s *Scaffolder) copyBase(baseDir, outputDir string) (int, error) {
	info, err := os.Stat(baseDir)
	if err != nil || !info.IsDir() {
		return 0, fmt.Errorf("%w: %s (run setup first)", ErrBaseTemplateMissing, baseDir)
	}
	if err := os.RemoveAll(outputDir); err != nil {
		return 0, fmt.Errorf("failed to clear %s: %w", outputDir, err)
	}
	return copyDir(baseDir, outputDir)
}

func installTemplates(outputDir, contractTemplate, testTemplate string) ([]string, error) {
	contractsDir := filepath.Join(outputDir, ContractsDir)
	testDir := filepath.Join(outputDir, generator.TestDirName)

	if err := clearMatching(contractsDir, "*.sol"); err != nil {
		return nil, fmt.Errorf("failed to clear base contracts: %w", err)
	}
	if err := clearMatching(testDir, "*.ts"); err != nil {
		return nil, fmt.Errorf("failed to clear base tests: %w", err)
	}

	var files []string
	for _, pair := range []struct{ src, dir string }{
		{contractTemplate, ContractsDir},
		{testTemplate, generator.TestDirName},
	} {
		rel := filepath.Join(pair.dir, filepath.Base(pair.src))
		if err := copyFile(pair.src, filepath.Join(outputDir, rel), 0644); err != nil {
			return files, fmt.Errorf("failed to install %s: %w", pair.src, err)
		}
		files = append(files, rel)
	}
	return files, nil
}

// ExampleResult converts a scaffold outcome into its report entry.
func ExampleResult(opts Options, res *Result, err error, elapsed time.Duration) report.ExampleResult {
	out := report.ExampleResult{
		Name:       opts.Name,
		Category:   opts.Category,
		Contract:   opts.ContractTemplate,
		Test:       opts.TestTemplate,
		Success:    err == nil,
		DurationMS: elapsed.Milliseconds(),
	}
	if err != nil {
		out.Error = err.Error()
	}
	if res != nil {
		out.OutputDir = res.OutputDir
		out.ReadmePath = res.ReadmePath
		out.Branch = res.Branch
		out.Files = res.Files
		out.Warnings = res.Warnings
	}
	return out
}
