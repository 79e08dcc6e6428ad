package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tensebunny/tensebunny/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "tensebunny",
	Short: "Learn the 12 English tenses",
	Long: `TenseBunny — a terminal app for learning the twelve English tenses with
lessons, mini games, a placement test and a final exam.

AI features (GrammarBot chat, speech, the mascot, generated practice) are
enabled by setting TENSEBUNNY_LLM_PROVIDER or one of GEMINI_API_KEY,
API_KEY, ANTHROPIC_API_KEY, OPENAI_API_KEY, OPENROUTER_API_KEY.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Database file or DSN (overrides TENSEBUNNY_DB env var)")
	rootCmd.PersistentFlags().String("db-driver", "sqlite", "Database driver: sqlite or postgres")
	rootCmd.Flags().Bool("skip-welcome", false, "Start without the welcome screen")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(tensesCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(mascotCmd)
	rootCmd.AddCommand(speakCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then TENSEBUNNY_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, nil
	}
	return store.DefaultDBPath()
}

// openStore connects to the database selected by --db and --db-driver.
// SQLite files get their directory created first.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	name, _ := cmd.Flags().GetString("db-driver")
	driver, err := store.ParseDriver(name)
	if err != nil {
		return nil, err
	}
	dsn, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	if driver == store.DriverPostgres && !cmd.Flags().Changed("db") && os.Getenv("TENSEBUNNY_DB") == "" {
		return nil, errors.New("postgres needs a DSN: pass --db or set TENSEBUNNY_DB")
	}
	if driver == store.DriverSQLite {
		if err := store.EnsureDir(dsn); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.OpenDriver(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return st, nil
}
