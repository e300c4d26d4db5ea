package main

import (
	"fmt"

	"github.com/azrim/fhevm-examples-generator/internal/styles"

	"github.com/spf13/cobra"
)

var (
	historyLimit   int
	historyExample string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent scaffold runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := initStore()
		if err != nil {
			return fmt.Errorf("failed to open run history: %w", err)
		}
		defer store.Close()

		if historyExample != "" {
			records, err := store.ExampleHistory(ctx, historyExample, historyLimit)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Println(styles.DimStyle.Render("No runs recorded for " + historyExample))
				return nil
			}
			for _, r := range records {
				line := fmt.Sprintf("%s  %s  %dms", r.FinishedAt, r.RunID, r.DurationMS)
				if r.Success {
					fmt.Println(styles.Check(line))
				} else {
					fmt.Println(styles.Cross(line + "  " + r.Error))
				}
			}
			return nil
		}

		runs, err := store.ListRuns(ctx, historyLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println(styles.DimStyle.Render("No runs recorded yet"))
			return nil
		}
		for _, r := range runs {
			line := fmt.Sprintf("%s  %-12s %s  %d/%d succeeded", r.StartedAt, r.Mode, r.ID, r.Successful, r.Total)
			if r.Failed > 0 {
				fmt.Println(styles.Cross(line))
			} else {
				fmt.Println(styles.Check(line))
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of runs to show")
	historyCmd.Flags().StringVarP(&historyExample, "example", "e", "", "Show the outcomes of one example")
}
