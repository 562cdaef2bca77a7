package analytics

import (
	"sort"

	"github.com/soundstats-io/soundstats/internal/snapshot"
)

// RepRevenue is one row of the sales-rep performance ranking.
type RepRevenue struct {
	EmployeeID int64 // 0 for the Unknown bucket
	Name       string
	Title      string
	Total      float64
}

// SalesByRep sums invoice revenue per support rep (invoice → customer →
// employee), descending. Grouping is by employee id, so reps sharing a
// display name stay separate. Invoices whose customer or rep does not
// resolve count under Unknown (id 0). Ties keep invoice scan order.
func SalesByRep(s *snapshot.Snapshot) []RepRevenue {
	var order []int64
	totals := make(map[int64]float64)

	for _, inv := range s.Invoices {
		var id int64
		if customer, ok := s.CustomerByID[inv.CustomerID]; ok {
			if _, ok := s.EmployeeByID[customer.SupportRepID]; ok {
				id = customer.SupportRepID
			}
		}
		if _, seen := totals[id]; !seen {
			order = append(order, id)
		}
		totals[id] += inv.Total
	}

	out := make([]RepRevenue, 0, len(order))
	for _, id := range order {
		row := RepRevenue{EmployeeID: id, Name: UnknownLabel, Total: totals[id]}
		if rep, ok := s.EmployeeByID[id]; ok {
			row.Name = rep.Name()
			row.Title = rep.Title
		}
		out = append(out, row)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Total > out[j].Total
	})
	return out
}
