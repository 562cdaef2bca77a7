package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/soundstats-io/soundstats/internal/cli/config"
	"github.com/soundstats-io/soundstats/internal/cli/ui"
	"github.com/soundstats-io/soundstats/internal/report"
	"github.com/soundstats-io/soundstats/internal/snapshot"
)

// ReportOptions holds options for the report command.
type ReportOptions struct {
	NoCharts bool
}

// NewReportCommand creates the report command.
func NewReportCommand() *cobra.Command {
	opts := &ReportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Run the full sales analysis",
		Long: `Load the dataset and compute every business-question aggregate:
revenue summary and monthly trend, top customers and countries by revenue,
best-selling genres, artists and albums, and revenue per sales rep.

Result tables are printed to stdout; bar/line chart PNGs and a run
manifest are written to the reports directory.`,
		Example: `  # Full report with charts
  soundstats report

  # Tables only, as markdown
  soundstats report --no-charts --output markdown

  # Wider rankings against another dataset copy
  soundstats report --database backups/Chinook.sqlite --top-customers 25`,
		Aliases: []string{"run"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.NoCharts, "no-charts", false, "Skip chart rendering")

	return cmd
}

func runReport(cmd *cobra.Command, opts *ReportOptions) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	logger := config.GetLogger(ctx)
	out := cmd.OutOrStdout()

	logger.Debug("loading dataset", "path", cfg.DatabasePath)
	snap, err := snapshot.Load(ctx, cfg.DatabasePath)
	if err != nil {
		return err
	}
	logger.Debug("dataset loaded",
		"customers", len(snap.Customers),
		"invoices", len(snap.Invoices),
		"invoice_lines", len(snap.InvoiceLines),
		"tracks", len(snap.Tracks))

	rep := report.Build(snap, cfg.ReportOptions())

	for _, t := range rep.Tables() {
		if cfg.OutputFormat == "table" || cfg.OutputFormat == "" {
			_, _ = fmt.Fprintln(out, ui.Styles.Header.Render(t.Title))
		}
		if err := renderTable(out, t, cfg.OutputFormat); err != nil {
			return fmt.Errorf("render %s: %w", t.Name, err)
		}
	}

	charts := cfg.Charts && !opts.NoCharts
	if !charts {
		logger.Debug("chart rendering disabled")
		return nil
	}

	manifest := report.NewManifest(cfg.DatabasePath)
	if err := report.WriteCharts(rep, cfg.ReportsDir, logger, manifest); err != nil {
		return err
	}
	manifestPath, err := manifest.Write(cfg.ReportsDir)
	if err != nil {
		return err
	}
	logger.Debug("wrote manifest", "path", manifestPath)

	if cfg.OutputFormat == "table" || cfg.OutputFormat == "" {
		msg := fmt.Sprintf("Wrote %d charts to %s", len(manifest.Artifacts), cfg.ReportsDir)
		_, _ = fmt.Fprintln(out, ui.Styles.SuccessBox.Render(msg))
	}
	return nil
}
