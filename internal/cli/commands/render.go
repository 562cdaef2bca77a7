package commands

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/soundstats-io/soundstats/internal/report"
)

// renderTable writes one result table in the requested format. Unknown
// formats fall back to the go-pretty table layout.
func renderTable(w io.Writer, t report.Table, format string) error {
	switch format {
	case "json":
		return renderJSON(w, t)
	case "csv":
		return renderCSV(w, t)
	case "md", "markdown":
		return renderMarkdown(w, t)
	default:
		return renderPretty(w, t)
	}
}

func renderPretty(w io.Writer, t report.Table) error {
	if len(t.Rows) == 0 {
		_, _ = fmt.Fprintf(w, "(no data: %s)\n", noteOrDefault(t))
		return nil
	}

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(t.Columns))
	for i, col := range t.Columns {
		headerRow[i] = col
	}
	tw.AppendHeader(headerRow)

	for _, cells := range t.Rows {
		row := make(table.Row, len(cells))
		for i, cell := range cells {
			row[i] = cell
		}
		tw.AppendRow(row)
	}

	tw.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(t.Rows))
	return nil
}

func renderJSON(w io.Writer, t report.Table) error {
	type jsonTable struct {
		Name    string     `json:"name"`
		Title   string     `json:"title"`
		Columns []string   `json:"columns"`
		Rows    [][]string `json:"rows"`
		Note    string     `json:"note,omitempty"`
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jsonTable(t))
}

func renderCSV(w io.Writer, t report.Table) error {
	_, _ = fmt.Fprintln(w, strings.Join(t.Columns, ","))
	for _, cells := range t.Rows {
		escaped := make([]string, len(cells))
		for i, cell := range cells {
			escaped[i] = escapeCSV(cell)
		}
		_, _ = fmt.Fprintln(w, strings.Join(escaped, ","))
	}
	return nil
}

func renderMarkdown(w io.Writer, t report.Table) error {
	if len(t.Rows) == 0 {
		_, _ = fmt.Fprintf(w, "(no data: %s)\n", noteOrDefault(t))
		return nil
	}

	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(t.Columns, " | "))
	seps := make([]string, len(t.Columns))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

	for _, cells := range t.Rows {
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
	}
	return nil
}

func noteOrDefault(t report.Table) string {
	if t.Note != "" {
		return t.Note
	}
	return "empty result"
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

// tableFromRows drains a sql.Rows into a render-ready table so that ad-hoc
// query output goes through the same renderers as report output.
func tableFromRows(rows *sql.Rows, name string) (report.Table, error) {
	cols, err := rows.Columns()
	if err != nil {
		return report.Table{}, err
	}

	t := report.Table{Name: name, Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return report.Table{}, err
		}

		cells := make([]string, len(cols))
		for i, val := range values {
			cells[i] = formatValue(val)
		}
		t.Rows = append(t.Rows, cells)
	}
	if err := rows.Err(); err != nil {
		return report.Table{}, err
	}
	return t, nil
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}
