package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/azrim/fhevm-examples-generator/internal/generator"
	"github.com/azrim/fhevm-examples-generator/internal/styles"

	"github.com/spf13/cobra"
)

var showWidth int

var showCmd = &cobra.Command{
	Use:   "show <exampleDir>",
	Short: "Render an example README in the terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := filepath.Join(args[0], generator.ReadmeName)
		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		fmt.Print(styles.RenderMarkdown(string(content), showWidth))
		return nil
	},
}

func init() {
	showCmd.Flags().IntVarP(&showWidth, "width", "w", 100, "Word wrap width")
}
