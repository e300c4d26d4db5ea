package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/azrim/fhevm-examples-generator/internal/config"
	"github.com/azrim/fhevm-examples-generator/internal/generator"
	"github.com/azrim/fhevm-examples-generator/internal/report"
	"github.com/azrim/fhevm-examples-generator/internal/scaffold"
	"github.com/azrim/fhevm-examples-generator/internal/styles"
	"github.com/azrim/fhevm-examples-generator/internal/toolchain"

	"github.com/spf13/cobra"
)

var (
	createCategory  string
	createContract  string
	createTest      string
	createOutDir    string
	createToolchain bool
	createNoGit     bool
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Scaffold one standalone example project",
	Long: `Scaffold one example from a contract and test template.
Templates default to the configured example of the same name.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		opts := scaffold.Options{
			Name:            name,
			Category:        createCategory,
			OutDir:          cfg.Paths.Output,
			BaseTemplateDir: cfg.BaseTemplate.Dir,
			RunToolchain:    cfg.Toolchain.Enabled || createToolchain,
			InitGit:         cfg.Git.InitRepo && !createNoGit,
		}
		if ex, err := cfg.Example(name); err == nil {
			opts.Category = firstNonEmpty(opts.Category, ex.Category)
			opts.ContractTemplate = ex.ContractTemplate
			opts.TestTemplate = ex.TestTemplate
		} else if !errors.Is(err, config.ErrUnknownExample) {
			return err
		}
		opts.ContractTemplate = firstNonEmpty(createContract, opts.ContractTemplate)
		opts.TestTemplate = firstNonEmpty(createTest, opts.TestTemplate)
		opts.OutDir = firstNonEmpty(createOutDir, opts.OutDir)
		if opts.ContractTemplate == "" || opts.TestTemplate == "" {
			return fmt.Errorf("%q is not a configured example; pass --contract and --test", name)
		}

		rep := report.NewRunReport("create", opts.OutDir)
		res, err := runExample(cmd.Context(), opts, rep)
		saveRun(cmd.Context(), rep)
		if err != nil {
			return errFailed
		}

		fmt.Println()
		fmt.Println(styles.Check("Example created at " + res.OutputDir))
		if res.Branch != "" {
			fmt.Println(styles.DimStyle.Render("   branch: " + res.Branch))
		}
		fmt.Println("\nNext steps:")
		fmt.Printf("  cd %s\n  npm ci\n  npm test\n", res.OutputDir)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&createCategory, "category", "", "Documentation category")
	createCmd.Flags().StringVar(&createContract, "contract", "", "Path to the contract template (.sol)")
	createCmd.Flags().StringVar(&createTest, "test", "", "Path to the test template (.test.ts)")
	createCmd.Flags().StringVarP(&createOutDir, "out", "o", "", "Output directory (default from config)")
	createCmd.Flags().BoolVar(&createToolchain, "toolchain", false, "Run npm ci, hardhat compile and npm test after scaffolding")
	createCmd.Flags().BoolVar(&createNoGit, "no-git", false, "Do not initialise a git repository")
}

func newScaffolder() (*scaffold.Scaffolder, error) {
	gen, err := generator.NewReadmeGenerator(log)
	if err != nil {
		return nil, err
	}
	tc := toolchain.New(nil, cfg.Toolchain.Timeout, log)
	return scaffold.New(gen, tc, log), nil
}

// runExample scaffolds one example, prints its outcome and records it in rep.
func runExample(ctx context.Context, opts scaffold.Options, rep *report.RunReport) (*scaffold.Result, error) {
	s, err := newScaffolder()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := s.Create(ctx, opts, rep)
	elapsed := time.Since(start)
	log.ExampleFinished(opts.Name, err == nil, elapsed)
	rep.AddExample(scaffold.ExampleResult(opts, res, err, elapsed))

	if res != nil {
		for _, w := range res.Warnings {
			fmt.Println(styles.Warn(w))
		}
	}
	if err != nil {
		fmt.Println(styles.Cross(fmt.Sprintf("Failed to scaffold %s: %v", opts.Name, err)))
		return res, err
	}
	fmt.Println(styles.Check("Successfully scaffolded: " + opts.Name))
	return res, nil
}

// saveRun writes the run into the history database. Failures are logged only.
func saveRun(ctx context.Context, rep *report.RunReport) {
	store, err := initStore()
	if err != nil {
		log.Warn("run history unavailable", "db", cfg.Paths.Database, "error", err)
		return
	}
	defer store.Close()
	if err := store.SaveRun(ctx, rep); err != nil {
		log.Warn("failed to record run", "run", rep.RunID, "error", err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func cleanPath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
