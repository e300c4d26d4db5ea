package main

import (
	"fmt"

	"github.com/azrim/fhevm-examples-generator/internal/gitbook"
	"github.com/azrim/fhevm-examples-generator/internal/styles"

	"github.com/spf13/cobra"
)

var gitbookCmd = &cobra.Command{
	Use:   "gitbook",
	Short: "Collect scaffolded READMEs into a GitBook docs directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("📚 Generating GitBook documentation...")

		pages, err := gitbook.Build(cfg.Paths.Output, cfg.Paths.Docs, cfg, log)
		if err != nil {
			return err
		}
		for _, p := range pages {
			fmt.Println(styles.Check("Copied: " + p.Path))
		}

		fmt.Printf("\n📊 Generated %d documentation files\n", len(pages))
		fmt.Printf("✨ GitBook documentation ready in %s/\n", cfg.Paths.Docs)
		fmt.Println("\nNext steps:")
		fmt.Println("1. Install GitBook CLI: npm install -g gitbook-cli")
		fmt.Printf("2. Serve locally: cd %s && gitbook serve\n", cfg.Paths.Docs)
		fmt.Println("3. Build: gitbook build")
		return nil
	},
}
