package report

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/soundstats-io/soundstats/internal/analytics"
	"github.com/soundstats-io/soundstats/internal/chart"
)

// Chart file names follow the original report numbering.
const (
	chartMonthlyRevenue = "01_monthly_revenue.png"
	chartTopCustomers   = "02_top_customers.png"
	chartTopCountries   = "03_top_countries.png"
	chartTopGenres      = "04_top_genres.png"
	chartTopArtists     = "05_top_artists.png"
	chartTopAlbums      = "06_top_albums.png"
	chartSalesByRep     = "07_sales_by_rep.png"
)

// WriteCharts renders one chart per aggregate into dir, creating it if
// needed, and records each produced file in the manifest. Aggregates with
// too little data are skipped with a log line rather than failing the run.
func WriteCharts(r *Report, dir string, logger *slog.Logger, m *Manifest) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}

	months := make([]string, 0, len(r.Monthly))
	monthTotals := make([]float64, 0, len(r.Monthly))
	for _, mr := range r.Monthly {
		months = append(months, mr.Month)
		monthTotals = append(monthTotals, mr.Total)
	}

	jobs := []struct {
		file   string
		render func(path string) error
	}{
		{chartMonthlyRevenue, func(path string) error {
			return chart.WriteMonthlyLine(path, "Monthly Revenue", months, monthTotals)
		}},
		{chartTopCustomers, func(path string) error {
			labels, values := customerSeries(r)
			return chart.WriteBar(path, "Top Customers by Revenue", labels, values)
		}},
		{chartTopCountries, func(path string) error {
			labels, values := countrySeries(r)
			return chart.WriteBar(path, "Top Countries by Revenue", labels, values)
		}},
		{chartTopGenres, func(path string) error {
			labels, values := unitsSeries(r.Genres)
			return chart.WriteBar(path, "Top Genres by Units Sold", labels, values)
		}},
		{chartTopArtists, func(path string) error {
			labels, values := unitsSeries(r.Artists)
			return chart.WriteBar(path, "Top Artists by Units Sold", labels, values)
		}},
		{chartTopAlbums, func(path string) error {
			labels, values := unitsSeries(r.Albums)
			return chart.WriteBar(path, "Top Albums by Units Sold", labels, values)
		}},
		{chartSalesByRep, func(path string) error {
			labels, values := repSeries(r)
			return chart.WriteBar(path, "Revenue by Sales Rep", labels, values)
		}},
	}

	for _, job := range jobs {
		path := filepath.Join(dir, job.file)
		err := job.render(path)
		switch {
		case errors.Is(err, chart.ErrNoData):
			logger.Info("skipping chart, not enough data", "chart", job.file)
		case err != nil:
			return err
		default:
			logger.Debug("wrote chart", "path", path)
			m.AddChart(path)
		}
	}
	return nil
}

func customerSeries(r *Report) ([]string, []float64) {
	labels := make([]string, 0, len(r.Customers))
	values := make([]float64, 0, len(r.Customers))
	for _, c := range r.Customers {
		labels = append(labels, c.Name)
		values = append(values, c.Total)
	}
	return labels, values
}

func countrySeries(r *Report) ([]string, []float64) {
	labels := make([]string, 0, len(r.Countries))
	values := make([]float64, 0, len(r.Countries))
	for _, c := range r.Countries {
		labels = append(labels, c.Country)
		values = append(values, c.Total)
	}
	return labels, values
}

func unitsSeries(rows []analytics.UnitsSold) ([]string, []float64) {
	labels := make([]string, 0, len(rows))
	values := make([]float64, 0, len(rows))
	for _, u := range rows {
		labels = append(labels, u.Label)
		values = append(values, float64(u.Units))
	}
	return labels, values
}

func repSeries(r *Report) ([]string, []float64) {
	labels := make([]string, 0, len(r.Reps))
	values := make([]float64, 0, len(r.Reps))
	for _, rep := range r.Reps {
		labels = append(labels, rep.Name)
		values = append(values, rep.Total)
	}
	return labels, values
}
