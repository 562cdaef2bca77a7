// Package analytics computes the business-question aggregates over a
// dataset snapshot. Every function is a pure, total function of the
// snapshot: empty inputs produce explicit empty results, never a panic,
// and repeated calls over the same snapshot return identical output.
//
// Ranking determinism: results are sorted descending by metric with a
// stable sort, so equal values keep their pre-sort order. That order is
// the customer-table order for TopCustomers and first appearance in the
// invoice (or invoice-line) scan for everything else.
package analytics

import "sort"

// UnknownLabel is the bucket for rows whose foreign key does not resolve
// within the snapshot. Such rows are counted, not dropped, so per-bucket
// sums reconcile with grand totals.
const UnknownLabel = "Unknown"

// accumulator groups float64 or int64 totals by label while remembering
// first-seen order.
type accumulator struct {
	order  []string
	totals map[string]float64
}

func newAccumulator() *accumulator {
	return &accumulator{totals: make(map[string]float64)}
}

func (a *accumulator) add(label string, v float64) {
	if _, seen := a.totals[label]; !seen {
		a.order = append(a.order, label)
	}
	a.totals[label] += v
}

// sorted returns (label, total) pairs descending by total, ties keeping
// first-seen order.
func (a *accumulator) sorted() []labelTotal {
	out := make([]labelTotal, 0, len(a.order))
	for _, label := range a.order {
		out = append(out, labelTotal{label, a.totals[label]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].total > out[j].total
	})
	return out
}

type labelTotal struct {
	label string
	total float64
}

func head[T any](s []T, n int) []T {
	if n >= 0 && n < len(s) {
		return s[:n]
	}
	return s
}
