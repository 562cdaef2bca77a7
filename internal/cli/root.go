// Package cli provides the command-line interface for soundstats.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/soundstats-io/soundstats/internal/cli/commands"
	"github.com/soundstats-io/soundstats/internal/cli/config"
	"github.com/soundstats-io/soundstats/internal/cli/ui"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "soundstats",
		Short: "soundstats - sales analytics for Chinook-schema datasets",
		Long: `soundstats computes descriptive sales statistics from a Chinook-schema
SQLite dataset: revenue totals and trend, top customers and countries,
best-selling genres, artists and albums, and sales-rep performance.

Results are printed as tables and written as chart images.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
				Level: level,
			}))

			cmd.SetContext(config.NewContext(cmd.Context(), cfg, logger))

			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					logger.Debug("using config file", "path", configFile)
				}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./soundstats.yaml)")
	rootCmd.PersistentFlags().String("database", "", "Path to the dataset SQLite file")
	rootCmd.PersistentFlags().String("reports-dir", "", "Directory for chart images and the run manifest")
	rootCmd.PersistentFlags().Int("top-customers", 0, "Ranking size for top customers")
	rootCmd.PersistentFlags().Int("top-countries", 0, "Ranking size for top countries")
	rootCmd.PersistentFlags().Int("top-catalog", 0, "Ranking size for genres/artists/albums")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (table|markdown|csv|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "markdown", "csv", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewReportCommand())
	rootCmd.AddCommand(commands.NewQueryCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		return err
	}
	return nil
}

func printError(w io.Writer, err error) {
	_, _ = fmt.Fprintln(w, ui.Styles.ErrorBox.Render("Error: "+err.Error()))
}
