package main

import (
	"fmt"
	"path/filepath"

	"github.com/azrim/fhevm-examples-generator/internal/generator"
	"github.com/azrim/fhevm-examples-generator/internal/styles"

	"github.com/spf13/cobra"
)

var (
	docsName      string
	docsCheck     bool
	docsModelPath string
)

var docsCmd = &cobra.Command{
	Use:   "docs <exampleDir>",
	Short: "Regenerate an example README from its test documentation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		dir := args[0]
		name := docsName
		if name == "" {
			abs, err := filepath.Abs(dir)
			if err != nil {
				return err
			}
			name = filepath.Base(abs)
		}

		gen, err := generator.NewReadmeGenerator(log)
		if err != nil {
			return err
		}

		content, docs, err := gen.Render(ctx, dir, name)
		if err != nil {
			return err
		}

		if docsModelPath != "" {
			if err := generator.SaveDocModel(docsModelPath, generator.NewDocModel(name, docs)); err != nil {
				return err
			}
			fmt.Println(styles.Check("Doc model written to " + docsModelPath))
		}

		readmePath := filepath.Join(dir, generator.ReadmeName)
		if docsCheck {
			diff, err := generator.DiffReadme(readmePath, content)
			if err != nil {
				return err
			}
			if diff == "" {
				fmt.Println(styles.Check(readmePath + " is up to date"))
				return nil
			}
			fmt.Print(styles.RenderDiff(diff))
			fmt.Println(styles.Cross(readmePath + " is out of date"))
			return errFailed
		}

		path, err := generator.WriteReadme(dir, content)
		if err != nil {
			return err
		}
		log.ReadmeGenerated(name, path)
		fmt.Println(styles.Check("README written to " + path))
		return nil
	},
}

func init() {
	docsCmd.Flags().StringVarP(&docsName, "name", "n", "", "Example name (default: directory name)")
	docsCmd.Flags().BoolVar(&docsCheck, "check", false, "Only report whether the README is out of date")
	docsCmd.Flags().StringVar(&docsModelPath, "model", "", "Also write the parsed documentation model as JSON")
}
