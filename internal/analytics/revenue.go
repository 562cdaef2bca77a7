package analytics

import (
	"sort"

	"github.com/soundstats-io/soundstats/internal/snapshot"
)

// Summary holds the headline revenue numbers. HasData is false when the
// invoice table is empty, in which case the averages are undefined and the
// zero values must not be presented as real figures.
type Summary struct {
	InvoiceCount   int
	TotalRevenue   float64
	AverageInvoice float64
	HasData        bool
}

// RevenueSummary computes total revenue and average invoice value.
func RevenueSummary(s *snapshot.Snapshot) Summary {
	if len(s.Invoices) == 0 {
		return Summary{}
	}

	var total float64
	for _, inv := range s.Invoices {
		total += inv.Total
	}
	n := len(s.Invoices)
	return Summary{
		InvoiceCount:   n,
		TotalRevenue:   total,
		AverageInvoice: total / float64(n),
		HasData:        true,
	}
}

// MonthRevenue is one point of the monthly revenue series.
type MonthRevenue struct {
	Month string // "2006-01", UTC
	Total float64
}

// MonthlyRevenue sums invoice totals per calendar month, ascending by month.
func MonthlyRevenue(s *snapshot.Snapshot) []MonthRevenue {
	totals := make(map[string]float64)
	for _, inv := range s.Invoices {
		totals[inv.Date.Format("2006-01")] += inv.Total
	}

	months := make([]string, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Strings(months)

	out := make([]MonthRevenue, 0, len(months))
	for _, m := range months {
		out = append(out, MonthRevenue{Month: m, Total: totals[m]})
	}
	return out
}
