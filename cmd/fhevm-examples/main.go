package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/azrim/fhevm-examples-generator/internal/config"
	"github.com/azrim/fhevm-examples-generator/internal/logger"
	"github.com/azrim/fhevm-examples-generator/internal/storage"

	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:           "fhevm-examples",
		Short:         "Scaffold and document standalone FHEVM example projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadRuntime(cmd)
		},
	}
	configPath string
	dbPath     string
	logLevel   string

	cfg *config.Config
	log *logger.Logger
)

// errFailed signals a run that already reported its failures.
var errFailed = errors.New("failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Path to the generator config (YAML)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Path to the run history database (SQLite)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(scaffoldAllCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(docsCmd)
	rootCmd.AddCommand(gitbookCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(showCmd)
}

func loadRuntime(cmd *cobra.Command) error {
	var err error
	cfg, err = config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("db") {
		cfg.Paths.Database = dbPath
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	log = logger.NewFromString(os.Stderr, cfg.LogLevel)
	return nil
}

// initStore opens the run history database.
func initStore() (*storage.SQLiteStore, error) {
	return storage.NewSQLiteStore(cfg.Paths.Database)
}
