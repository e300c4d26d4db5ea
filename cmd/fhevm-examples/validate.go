package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/azrim/fhevm-examples-generator/internal/styles"
	"github.com/azrim/fhevm-examples-generator/internal/validation"

	"github.com/spf13/cobra"
)

var (
	validateContract string
	validateTest     string
	validateJSON     bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check contract and test templates against the example policy",
	Long: `Validate every contracts/<name>.sol and tests/<name>.test.ts pair under the
templates directory, or a single pair given with --contract and --test.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var pairs []validation.TemplatePair
		switch {
		case validateContract != "" || validateTest != "":
			if validateContract == "" || validateTest == "" {
				return fmt.Errorf("--contract and --test must be given together")
			}
			name := strings.TrimSuffix(filepath.Base(validateContract), ".sol")
			pairs = []validation.TemplatePair{{Name: name, ContractPath: validateContract, TestPath: validateTest}}
		default:
			var err error
			pairs, err = validation.DiscoverPairs(cfg.Paths.Templates)
			if err != nil {
				return err
			}
		}

		reports, sum, err := validation.ValidatePairs(ctx, pairs)
		if err != nil {
			return err
		}

		if validateJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(struct {
				Templates []validation.PairReport `json:"templates"`
				Summary   validation.Summary      `json:"summary"`
			}{reports, sum}); err != nil {
				return err
			}
		} else {
			printValidation(reports, sum)
		}

		if sum.Errors > 0 {
			return errFailed
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateContract, "contract", "", "Contract template to validate")
	validateCmd.Flags().StringVar(&validateTest, "test", "", "Test template to validate")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Print results as JSON")
}

func printValidation(reports []validation.PairReport, sum validation.Summary) {
	fmt.Println(styles.Banner("Template Validation"))
	for _, r := range reports {
		fmt.Println()
		fmt.Println(styles.HighlightStyle.Render(r.Name))
		printResult(r.ContractPath, r.Result.Contract)
		printResult(r.TestPath, r.Result.Test)
	}

	fmt.Println()
	fmt.Println(styles.Stats("Templates", sum.Templates, styles.InfoStyle))
	fmt.Println(styles.Stats("Valid", sum.Valid, styles.SuccessStyle))
	fmt.Println(styles.Stats("Errors", sum.Errors, styles.ErrorStyle))
	fmt.Println(styles.Stats("Warnings", sum.Warnings, styles.WarningStyle))
}

func printResult(path string, res validation.ValidationResult) {
	if res.Valid {
		fmt.Println("  " + styles.Check(path))
	} else {
		fmt.Println("  " + styles.Cross(path))
	}
	for _, e := range res.Errors {
		fmt.Println("     " + styles.ErrorStyle.Render(e))
	}
	for _, w := range res.Warnings {
		fmt.Println("     " + styles.Warn(w))
	}
}
