package analytics

import (
	"sort"

	"github.com/soundstats-io/soundstats/internal/snapshot"
)

// CustomerRevenue is one row of the top-customers ranking.
type CustomerRevenue struct {
	CustomerID int64
	Name       string
	Country    string
	Total      float64
}

// TopCustomers ranks customers by summed invoice revenue, descending,
// returning at most n rows. Customers without invoices are excluded.
// Equal revenues keep customer-table (CustomerId) order.
func TopCustomers(s *snapshot.Snapshot, n int) []CustomerRevenue {
	totals := make(map[int64]float64)
	for _, inv := range s.Invoices {
		totals[inv.CustomerID] += inv.Total
	}

	out := make([]CustomerRevenue, 0, len(totals))
	for _, c := range s.Customers {
		total, ok := totals[c.ID]
		if !ok {
			continue
		}
		out = append(out, CustomerRevenue{
			CustomerID: c.ID,
			Name:       c.Name(),
			Country:    c.Country,
			Total:      total,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	return head(out, n)
}

// CountryRevenue is one row of the top-countries ranking.
type CountryRevenue struct {
	Country string
	Total   float64
}

// TopCountries ranks invoice billing countries by summed revenue,
// descending, returning at most n rows. Equal revenues keep the order in
// which the country first appears in the invoice scan. A blank billing
// country counts under the Unknown bucket.
func TopCountries(s *snapshot.Snapshot, n int) []CountryRevenue {
	acc := newAccumulator()
	for _, inv := range s.Invoices {
		country := inv.BillingCountry
		if country == "" {
			country = UnknownLabel
		}
		acc.add(country, inv.Total)
	}

	ranked := acc.sorted()
	out := make([]CountryRevenue, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, CountryRevenue{Country: r.label, Total: r.total})
	}
	return head(out, n)
}
