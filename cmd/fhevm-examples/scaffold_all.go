package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/azrim/fhevm-examples-generator/internal/config"
	"github.com/azrim/fhevm-examples-generator/internal/git"
	"github.com/azrim/fhevm-examples-generator/internal/report"
	"github.com/azrim/fhevm-examples-generator/internal/scaffold"
	"github.com/azrim/fhevm-examples-generator/internal/styles"

	"github.com/spf13/cobra"
)

var (
	changedSince     string
	deliverablesPath string
	summaryPath      string
)

var scaffoldAllCmd = &cobra.Command{
	Use:   "scaffold-all",
	Short: "Scaffold every configured example and write the run deliverables",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		examples := cfg.Examples
		if changedSince != "" {
			changed, err := git.ChangedPaths(ctx, ".", changedSince)
			if err != nil {
				return fmt.Errorf("failed to detect changed templates: %w", err)
			}
			examples = filterChanged(examples, changed)
			if len(examples) == 0 {
				fmt.Println(styles.Check("No template changes since " + changedSince))
				return nil
			}
		}

		fmt.Println(styles.Banner("FHEVM Examples Generator - Scaffold All Examples"))
		fmt.Printf("📋 Scaffolding %d example(s)...\n", len(examples))

		rep := report.NewRunReport("scaffold-all", cfg.Paths.Output)
		for _, ex := range examples {
			fmt.Printf("\n%s\n📦 Processing: %s\n%s\n", strings.Repeat("=", 60), ex.Name, strings.Repeat("=", 60))
			opts := scaffold.Options{
				Name:             ex.Name,
				Category:         ex.Category,
				ContractTemplate: ex.ContractTemplate,
				TestTemplate:     ex.TestTemplate,
				OutDir:           cfg.Paths.Output,
				BaseTemplateDir:  cfg.BaseTemplate.Dir,
				RunToolchain:     cfg.Toolchain.Enabled,
				InitGit:          cfg.Git.InitRepo,
			}
			// Failures are recorded in the report; keep going.
			_, _ = runExample(ctx, opts, rep)
		}

		if err := rep.Save(deliverablesPath); err != nil {
			return fmt.Errorf("failed to write %s: %w", deliverablesPath, err)
		}
		if err := rep.WriteSummary(summaryPath); err != nil {
			return fmt.Errorf("failed to write %s: %w", summaryPath, err)
		}
		saveRun(ctx, rep)

		fmt.Printf("\n%s\n", styles.Banner("SCAFFOLD SUMMARY"))
		fmt.Println(styles.Stats("Successful", rep.Summary.Successful, styles.SuccessStyle))
		fmt.Println(styles.Stats("Failed", rep.Summary.Failed, styles.ErrorStyle))
		fmt.Println(styles.Stats("Total", rep.Summary.Total, styles.InfoStyle))
		fmt.Printf("\n📄 Summary written to: %s\n", summaryPath)
		fmt.Printf("📊 Deliverables written to: %s\n", deliverablesPath)
		fmt.Println(styles.DimStyle.Render("   run " + rep.RunID))

		if rep.Failed() {
			return errFailed
		}
		return nil
	},
}

func init() {
	scaffoldAllCmd.Flags().StringVar(&changedSince, "changed-since", "", "Only scaffold examples whose templates changed since this git ref")
	scaffoldAllCmd.Flags().StringVar(&deliverablesPath, "deliverables", "deliverables.json", "Path of the JSON run report")
	scaffoldAllCmd.Flags().StringVar(&summaryPath, "summary", "summary.txt", "Path of the text summary")
}

// filterChanged keeps examples with a template in changed, a set of absolute
// paths. Template paths are resolved against the working directory.
func filterChanged(examples []config.Example, changed map[string]bool) []config.Example {
	norm := make(map[string]bool, len(changed))
	for p := range changed {
		norm[resolvePath(p)] = true
	}
	var out []config.Example
	for _, ex := range examples {
		if norm[resolvePath(ex.ContractTemplate)] || norm[resolvePath(ex.TestTemplate)] {
			out = append(out, ex)
		}
	}
	return out
}

// resolvePath returns p as an absolute path with symlinks resolved when it exists.
func resolvePath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return cleanPath(p)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}
