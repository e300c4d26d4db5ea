package main

import (
	"fmt"
	"os"

	"github.com/azrim/fhevm-examples-generator/internal/git"
	"github.com/azrim/fhevm-examples-generator/internal/styles"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Clone the Hardhat base template used for every example",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		dir := cfg.BaseTemplate.Dir
		fmt.Println(styles.Banner("FHEVM Examples Generator - Setup"))

		if _, err := os.Stat(dir); err == nil {
			fmt.Println(styles.Check(dir + "/ already exists"))
			if git.IsRepo(ctx, dir) {
				fmt.Println(styles.Check(dir + "/ is a valid git repository"))
				return nil
			}
			fmt.Println(styles.Warn(dir + "/ exists but is not a valid git repository, re-cloning"))
			if err := os.RemoveAll(dir); err != nil {
				return fmt.Errorf("failed to remove %s: %w", dir, err)
			}
		}

		fmt.Printf("📦 Cloning base template from: %s\n", cfg.BaseTemplate.URL)
		if err := git.Clone(ctx, cfg.BaseTemplate.URL, dir); err != nil {
			log.StageFailed("setup", "", err)
			fmt.Println(styles.Cross("Failed to clone base template. Check git and network access."))
			return errFailed
		}
		fmt.Println(styles.Check("Successfully cloned base template"))
		return nil
	},
}
