package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/sparky/internal/config"
	"github.com/abhisek/sparky/internal/logging"
	"github.com/abhisek/sparky/internal/store"
)

const appName = "sparky"

// cfg is loaded once before any command runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "sparky",
	Short: "Brain-training quizzes for kids",
	Long:  "Sparky is a terminal quiz game that helps children (grades 3-12) practice verbal, quantitative and non-verbal reasoning.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		applyFlags(cmd, cfg)

		logger := logging.New(appName, cfg.Env, cfg.LogLevel, os.Stderr)
		cmd.SetContext(logging.IntoContext(cmd.Context(), logger))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, false)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SPARKY_DB env var)")
	rootCmd.PersistentFlags().Bool("offline", false, "Use the built-in question bank instead of an LLM")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Fix the question shuffle seed (0 seeds from the clock)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(skillCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// applyFlags lets command-line flags override the environment.
func applyFlags(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("db") {
		c.DB, _ = flags.GetString("db")
	}
	if flags.Changed("offline") {
		c.Practice.Offline, _ = flags.GetBool("offline")
	}
	if flags.Changed("seed") {
		c.Practice.Seed, _ = flags.GetUint64("seed")
	}
}

// resolveDBPath returns the database path using --db or SPARKY_DB first,
// then the default XDG path.
func resolveDBPath() (string, error) {
	if cfg != nil && cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}
