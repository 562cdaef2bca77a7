// Package report assembles every business-question aggregate over one
// snapshot into render-ready tables and chart inputs.
package report

import (
	"fmt"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/soundstats-io/soundstats/internal/analytics"
	"github.com/soundstats-io/soundstats/internal/snapshot"
)

// Default result sizes, matching the original analysis.
const (
	DefaultTopCustomers = 10
	DefaultTopCountries = 3
	DefaultTopCatalog   = 10
)

// Options bounds the top-N rankings.
type Options struct {
	TopCustomers int
	TopCountries int
	TopCatalog   int
}

// DefaultOptions returns the documented default ranking sizes.
func DefaultOptions() Options {
	return Options{
		TopCustomers: DefaultTopCustomers,
		TopCountries: DefaultTopCountries,
		TopCatalog:   DefaultTopCatalog,
	}
}

func (o Options) withDefaults() Options {
	if o.TopCustomers <= 0 {
		o.TopCustomers = DefaultTopCustomers
	}
	if o.TopCountries <= 0 {
		o.TopCountries = DefaultTopCountries
	}
	if o.TopCatalog <= 0 {
		o.TopCatalog = DefaultTopCatalog
	}
	return o
}

// Report holds every aggregate computed from one snapshot.
type Report struct {
	Summary   analytics.Summary
	Monthly   []analytics.MonthRevenue
	Customers []analytics.CustomerRevenue
	Countries []analytics.CountryRevenue
	Genres    []analytics.UnitsSold
	Artists   []analytics.UnitsSold
	Albums    []analytics.UnitsSold
	Reps      []analytics.RepRevenue
}

// Build runs the full pipeline. Each aggregate is an independent read-only
// query over the snapshot; Build just runs them in presentation order.
func Build(s *snapshot.Snapshot, opts Options) *Report {
	opts = opts.withDefaults()
	return &Report{
		Summary:   analytics.RevenueSummary(s),
		Monthly:   analytics.MonthlyRevenue(s),
		Customers: analytics.TopCustomers(s, opts.TopCustomers),
		Countries: analytics.TopCountries(s, opts.TopCountries),
		Genres:    analytics.TopGenres(s, opts.TopCatalog),
		Artists:   analytics.TopArtists(s, opts.TopCatalog),
		Albums:    analytics.TopAlbums(s, opts.TopCatalog),
		Reps:      analytics.SalesByRep(s),
	}
}

// Table is a small render-ready result table. Rows hold pre-formatted
// cells so that every output format (and repeated runs) renders the same
// bytes. Note carries the explicit "no data" message for empty inputs.
type Table struct {
	Name    string
	Title   string
	Columns []string
	Rows    [][]string
	Note    string
}

// money formats with grouped thousands, e.g. "2,328.60".
var money = message.NewPrinter(language.English)

func formatMoney(v float64) string {
	return money.Sprintf("%.2f", v)
}

// Tables converts the report into presentation order tables.
func (r *Report) Tables() []Table {
	return []Table{
		r.summaryTable(),
		r.monthlyTable(),
		r.customersTable(),
		r.countriesTable(),
		unitsTable("top_genres", "Best-Selling Genres", "Genre", r.Genres),
		unitsTable("top_artists", "Best-Selling Artists", "Artist", r.Artists),
		unitsTable("top_albums", "Best-Selling Albums", "Album", r.Albums),
		r.repsTable(),
	}
}

func (r *Report) summaryTable() Table {
	t := Table{
		Name:    "revenue_summary",
		Title:   "Revenue Summary",
		Columns: []string{"Metric", "Value"},
	}
	if !r.Summary.HasData {
		t.Note = "no invoices in dataset"
		return t
	}
	t.Rows = [][]string{
		{"Invoices", strconv.Itoa(r.Summary.InvoiceCount)},
		{"Total Revenue", formatMoney(r.Summary.TotalRevenue)},
		{"Average Invoice", formatMoney(r.Summary.AverageInvoice)},
	}
	return t
}

func (r *Report) monthlyTable() Table {
	t := Table{
		Name:    "monthly_revenue",
		Title:   "Monthly Revenue",
		Columns: []string{"Month", "Revenue"},
	}
	if len(r.Monthly) == 0 {
		t.Note = "no invoices in dataset"
		return t
	}
	for _, m := range r.Monthly {
		t.Rows = append(t.Rows, []string{m.Month, formatMoney(m.Total)})
	}
	return t
}

func (r *Report) customersTable() Table {
	t := Table{
		Name:    "top_customers",
		Title:   fmt.Sprintf("Top %d Customers by Revenue", len(r.Customers)),
		Columns: []string{"#", "Customer", "Country", "Revenue"},
	}
	if len(r.Customers) == 0 {
		t.Title = "Top Customers by Revenue"
		t.Note = "no invoices in dataset"
		return t
	}
	for i, c := range r.Customers {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(i + 1), c.Name, c.Country, formatMoney(c.Total),
		})
	}
	return t
}

func (r *Report) countriesTable() Table {
	t := Table{
		Name:    "top_countries",
		Title:   fmt.Sprintf("Top %d Countries by Revenue", len(r.Countries)),
		Columns: []string{"#", "Country", "Revenue"},
	}
	if len(r.Countries) == 0 {
		t.Title = "Top Countries by Revenue"
		t.Note = "no invoices in dataset"
		return t
	}
	for i, c := range r.Countries {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(i + 1), c.Country, formatMoney(c.Total),
		})
	}
	return t
}

func unitsTable(name, title, dimension string, rows []analytics.UnitsSold) Table {
	t := Table{
		Name:    name,
		Title:   title,
		Columns: []string{"#", dimension, "Units Sold"},
	}
	if len(rows) == 0 {
		t.Note = "no invoice lines in dataset"
		return t
	}
	for i, u := range rows {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(i + 1), u.Label, strconv.FormatInt(u.Units, 10),
		})
	}
	return t
}

func (r *Report) repsTable() Table {
	t := Table{
		Name:    "sales_by_rep",
		Title:   "Revenue by Sales Rep",
		Columns: []string{"#", "Sales Rep", "Title", "Revenue"},
	}
	if len(r.Reps) == 0 {
		t.Note = "no invoices in dataset"
		return t
	}
	for i, rep := range r.Reps {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(i + 1), rep.Name, rep.Title, formatMoney(rep.Total),
		})
	}
	return t
}
