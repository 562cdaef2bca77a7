package commands

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/soundstats-io/soundstats/internal/cli/config"
	"github.com/soundstats-io/soundstats/internal/report"

	// sqlite driver for ad-hoc dataset queries.
	_ "modernc.org/sqlite"
)

// openDatasetReadOnly opens the dataset in read-only mode so ad-hoc SQL
// cannot mutate the snapshot source.
func openDatasetReadOnly(path string) (*sql.DB, error) {
	return sql.Open("sqlite", path+"?mode=ro")
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query [SQL]",
		Short: "Query the dataset directly",
		Long: `Execute read-only SQL against the dataset.

Useful for exploring the source tables behind the report. The dataset is
always opened read-only. Supports the same output formats as report.`,
		Example: `  # Ad-hoc SQL
  soundstats query "SELECT BillingCountry, SUM(Total) FROM Invoice GROUP BY 1"

  # List tables and views
  soundstats query tables

  # Show a table's schema
  soundstats query schema Invoice`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())

			switch args[0] {
			case "tables":
				return listTables(cmd, cfg.DatabasePath, cfg.OutputFormat)
			case "schema":
				if len(args) < 2 {
					return fmt.Errorf("usage: soundstats query schema <table>")
				}
				return showSchema(cmd, cfg.DatabasePath, args[1], cfg.OutputFormat)
			default:
				return execQuery(cmd, cfg.DatabasePath, strings.Join(args, " "), cfg.OutputFormat)
			}
		},
	}

	return cmd
}

func execQuery(cmd *cobra.Command, dbPath, query, format string) error {
	db, err := openDatasetReadOnly(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryContext(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	t, err := tableFromRows(rows, "query")
	if err != nil {
		return err
	}
	return renderTable(cmd.OutOrStdout(), t, format)
}

func listTables(cmd *cobra.Command, dbPath, format string) error {
	db, err := openDatasetReadOnly(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = db.Close() }()

	return listTablesFromDB(cmd.Context(), cmd.OutOrStdout(), db, format)
}

func listTablesFromDB(ctx context.Context, w io.Writer, db *sql.DB, format string) error {
	rows, err := db.QueryContext(ctx, `
		SELECT name, type
		FROM sqlite_master
		WHERE type IN ('table', 'view')
		AND name NOT LIKE 'sqlite_%'
		ORDER BY type DESC, name
	`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	t, err := tableFromRows(rows, "tables")
	if err != nil {
		return err
	}
	return renderTable(w, t, format)
}

func showSchema(cmd *cobra.Command, dbPath, tableName, format string) error {
	db, err := openDatasetReadOnly(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = db.Close() }()

	return showSchemaFromDB(cmd.Context(), cmd.OutOrStdout(), db, tableName, format)
}

func showSchemaFromDB(ctx context.Context, w io.Writer, db *sql.DB, tableName, format string) error {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", tableName))
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	t := report.Table{
		Name:    "schema",
		Title:   "Schema: " + tableName,
		Columns: []string{"Column", "Type", "Nullable", "Default"},
	}

	for rows.Next() {
		var cid int
		var name, colType string
		var notNull, pk int
		var dflt sql.NullString

		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return err
		}

		nullable := "YES"
		if notNull == 1 {
			nullable = "NO"
		}

		defaultVal := dflt.String
		if pk == 1 {
			if defaultVal != "" {
				defaultVal += " "
			}
			defaultVal += "(primary key)"
		}

		t.Rows = append(t.Rows, []string{name, colType, nullable, defaultVal})
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if len(t.Rows) == 0 {
		return fmt.Errorf("table or view '%s' not found", tableName)
	}
	return renderTable(w, t, format)
}
