package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundstats-io/soundstats/internal/snapshot"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fixture builds a snapshot directly from rows, indexing it the same way
// Load does.
func fixture(t *testing.T, s snapshot.Snapshot) *snapshot.Snapshot {
	t.Helper()
	s.CustomerByID = make(map[int64]snapshot.Customer)
	for _, c := range s.Customers {
		s.CustomerByID[c.ID] = c
	}
	s.TrackByID = make(map[int64]snapshot.Track)
	for _, tr := range s.Tracks {
		s.TrackByID[tr.ID] = tr
	}
	s.AlbumByID = make(map[int64]snapshot.Album)
	for _, a := range s.Albums {
		s.AlbumByID[a.ID] = a
	}
	s.ArtistByID = make(map[int64]snapshot.Artist)
	for _, a := range s.Artists {
		s.ArtistByID[a.ID] = a
	}
	s.GenreByID = make(map[int64]snapshot.Genre)
	for _, g := range s.Genres {
		s.GenreByID[g.ID] = g
	}
	s.EmployeeByID = make(map[int64]snapshot.Employee)
	for _, e := range s.Employees {
		s.EmployeeByID[e.ID] = e
	}
	return &s
}

func TestRevenueSummary(t *testing.T) {
	snap := fixture(t, snapshot.Snapshot{
		Invoices: []snapshot.Invoice{
			{ID: 1, CustomerID: 1, Date: date(2021, 1, 5), Total: 10},
			{ID: 2, CustomerID: 1, Date: date(2021, 1, 20), Total: 20},
			{ID: 3, CustomerID: 2, Date: date(2021, 2, 1), Total: 30},
		},
	})

	got := RevenueSummary(snap)
	require.True(t, got.HasData)
	assert.Equal(t, 3, got.InvoiceCount)
	assert.Equal(t, 60.0, got.TotalRevenue)
	assert.Equal(t, 20.0, got.AverageInvoice)
}

func TestRevenueSummary_Empty(t *testing.T) {
	got := RevenueSummary(fixture(t, snapshot.Snapshot{}))
	assert.False(t, got.HasData)
	assert.Zero(t, got.TotalRevenue)
	assert.Zero(t, got.AverageInvoice)
}

func TestMonthlyRevenue(t *testing.T) {
	snap := fixture(t, snapshot.Snapshot{
		Invoices: []snapshot.Invoice{
			{ID: 1, Date: date(2021, 2, 1), Total: 30},
			{ID: 2, Date: date(2021, 1, 5), Total: 10},
			{ID: 3, Date: date(2021, 1, 20), Total: 20},
		},
	})

	got := MonthlyRevenue(snap)
	require.Len(t, got, 2)
	assert.Equal(t, MonthRevenue{Month: "2021-01", Total: 30}, got[0])
	assert.Equal(t, MonthRevenue{Month: "2021-02", Total: 30}, got[1])
}

func TestMonthlyRevenue_Empty(t *testing.T) {
	assert.Empty(t, MonthlyRevenue(fixture(t, snapshot.Snapshot{})))
}

func TestTopCustomers(t *testing.T) {
	snap := fixture(t, snapshot.Snapshot{
		Customers: []snapshot.Customer{
			{ID: 1, FirstName: "Ana", LastName: "A", Country: "Brazil"},
			{ID: 2, FirstName: "Ben", LastName: "B", Country: "Canada"},
			{ID: 3, FirstName: "Cy", LastName: "C", Country: "Chile"},
			{ID: 4, FirstName: "Dee", LastName: "D", Country: "Denmark"},
		},
		Invoices: []snapshot.Invoice{
			{ID: 1, CustomerID: 2, Total: 50},
			{ID: 2, CustomerID: 1, Total: 30},
			{ID: 3, CustomerID: 3, Total: 30},
		},
	})

	got := TopCustomers(snap, 10)
	require.Len(t, got, 3) // customer 4 has no invoices
	assert.Equal(t, "Ben B", got[0].Name)
	// Equal revenue: customer-table order decides
	assert.Equal(t, "Ana A", got[1].Name)
	assert.Equal(t, "Cy C", got[2].Name)
}

func TestTopCustomers_TieStability(t *testing.T) {
	snap := fixture(t, snapshot.Snapshot{
		Customers: []snapshot.Customer{
			{ID: 1, FirstName: "First", LastName: "X"},
			{ID: 2, FirstName: "Second", LastName: "Y"},
		},
		Invoices: []snapshot.Invoice{
			// Second's invoice comes first in the scan, but the ranking
			// order for equal totals follows the customer table.
			{ID: 1, CustomerID: 2, Total: 100},
			{ID: 2, CustomerID: 1, Total: 100},
		},
	})

	got := TopCustomers(snap, 10)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].CustomerID)
	assert.Equal(t, int64(2), got[1].CustomerID)
}

func TestTopCustomers_Truncates(t *testing.T) {
	snap := fixture(t, snapshot.Snapshot{
		Customers: []snapshot.Customer{{ID: 1}, {ID: 2}, {ID: 3}},
		Invoices: []snapshot.Invoice{
			{ID: 1, CustomerID: 1, Total: 3},
			{ID: 2, CustomerID: 2, Total: 2},
			{ID: 3, CustomerID: 3, Total: 1},
		},
	})
	assert.Len(t, TopCustomers(snap, 2), 2)
}

func TestTopCountries(t *testing.T) {
	snap := fixture(t, snapshot.Snapshot{
		Invoices: []snapshot.Invoice{
			{ID: 1, BillingCountry: "A", Total: 300},
			{ID: 2, BillingCountry: "B", Total: 200},
			{ID: 3, BillingCountry: "C", Total: 200},
			{ID: 4, BillingCountry: "D", Total: 50},
		},
	})

	got := TopCountries(snap, 3)
	require.Len(t, got, 3)
	assert.Equal(t, CountryRevenue{Country: "A", Total: 300}, got[0])
	// B and C tie at 200; B appeared first in the invoice scan
	assert.Equal(t, CountryRevenue{Country: "B", Total: 200}, got[1])
	assert.Equal(t, CountryRevenue{Country: "C", Total: 200}, got[2])
}

func TestTopCountries_BlankCountry(t *testing.T) {
	snap := fixture(t, snapshot.Snapshot{
		Invoices: []snapshot.Invoice{
			{ID: 1, BillingCountry: "", Total: 5},
			{ID: 2, BillingCountry: "A", Total: 1},
		},
	})

	got := TopCountries(snap, 3)
	require.Len(t, got, 2)
	assert.Equal(t, UnknownLabel, got[0].Country)
}

func catalogFixture(t *testing.T) *snapshot.Snapshot {
	t.Helper()
	return fixture(t, snapshot.Snapshot{
		Genres: []snapshot.Genre{
			{ID: 1, Name: "X"},
			{ID: 2, Name: "Y"},
		},
		Artists: []snapshot.Artist{
			{ID: 1, Name: "Alpha"},
			{ID: 2, Name: "Beta"},
		},
		Albums: []snapshot.Album{
			{ID: 1, Title: "One", ArtistID: 1},
			{ID: 2, Title: "Two", ArtistID: 2},
		},
		Tracks: []snapshot.Track{
			{ID: 1, Name: "t1", AlbumID: 1, GenreID: 1},
			{ID: 2, Name: "t2", AlbumID: 2, GenreID: 2},
		},
		InvoiceLines: []snapshot.InvoiceLine{
			{ID: 1, InvoiceID: 1, TrackID: 1, Quantity: 10},
			{ID: 2, InvoiceID: 1, TrackID: 2, Quantity: 15},
		},
	})
}

func TestTopGenres(t *testing.T) {
	got := TopGenres(catalogFixture(t), 10)
	require.Len(t, got, 2)
	assert.Equal(t, UnitsSold{Label: "Y", Units: 15}, got[0])
	assert.Equal(t, UnitsSold{Label: "X", Units: 10}, got[1])
}

func TestTopArtists(t *testing.T) {
	got := TopArtists(catalogFixture(t), 10)
	require.Len(t, got, 2)
	assert.Equal(t, UnitsSold{Label: "Beta", Units: 15}, got[0])
	assert.Equal(t, UnitsSold{Label: "Alpha", Units: 10}, got[1])
}

func TestTopAlbums(t *testing.T) {
	got := TopAlbums(catalogFixture(t), 10)
	require.Len(t, got, 2)
	assert.Equal(t, UnitsSold{Label: "Two", Units: 15}, got[0])
	assert.Equal(t, UnitsSold{Label: "One", Units: 10}, got[1])
}

func TestTopGenres_UnknownBucket(t *testing.T) {
	snap := fixture(t, snapshot.Snapshot{
		Genres: []snapshot.Genre{{ID: 1, Name: "Rock"}},
		Tracks: []snapshot.Track{{ID: 1, Name: "t1", GenreID: 1}},
		InvoiceLines: []snapshot.InvoiceLine{
			{ID: 1, InvoiceID: 1, TrackID: 1, Quantity: 4},
			// dangling track reference: counted, not dropped
			{ID: 2, InvoiceID: 1, TrackID: 999, Quantity: 3},
			// track with NULL genre
			{ID: 3, InvoiceID: 1, TrackID: 2, Quantity: 2},
		},
	})
	snap.Tracks = append(snap.Tracks, snapshot.Track{ID: 2, Name: "t2"})
	snap.TrackByID[2] = snapshot.Track{ID: 2, Name: "t2"}

	got := TopGenres(snap, 10)
	require.Len(t, got, 2)

	var total, unknown int64
	for _, row := range got {
		total += row.Units
		if row.Label == UnknownLabel {
			unknown = row.Units
		}
	}
	// Per-bucket totals reconcile with the grand total
	assert.Equal(t, int64(9), total)
	assert.Equal(t, int64(5), unknown)
}

func TestSalesByRep(t *testing.T) {
	snap := fixture(t, snapshot.Snapshot{
		Employees: []snapshot.Employee{
			{ID: 1, FirstName: "Jane", LastName: "Peacock", Title: "Sales Support Agent"},
			{ID: 2, FirstName: "Steve", LastName: "Johnson", Title: "Sales Support Agent"},
		},
		Customers: []snapshot.Customer{
			{ID: 1, SupportRepID: 1},
			{ID: 2, SupportRepID: 2},
			{ID: 3}, // no rep assigned
		},
		Invoices: []snapshot.Invoice{
			{ID: 1, CustomerID: 1, Total: 10},
			{ID: 2, CustomerID: 2, Total: 25},
			{ID: 3, CustomerID: 1, Total: 5},
			{ID: 4, CustomerID: 3, Total: 7},
		},
	})

	got := SalesByRep(snap)
	require.Len(t, got, 3)
	assert.Equal(t, "Steve Johnson", got[0].Name)
	assert.Equal(t, 25.0, got[0].Total)
	assert.Equal(t, "Sales Support Agent", got[0].Title)
	assert.Equal(t, "Jane Peacock", got[1].Name)
	assert.Equal(t, 15.0, got[1].Total)
	assert.Equal(t, UnknownLabel, got[2].Name)
	assert.Equal(t, 7.0, got[2].Total)
	assert.Equal(t, int64(0), got[2].EmployeeID)
}

func TestSalesByRep_SameNameDistinctReps(t *testing.T) {
	snap := fixture(t, snapshot.Snapshot{
		Employees: []snapshot.Employee{
			{ID: 1, FirstName: "Jane", LastName: "Peacock", Title: "Sales Support Agent"},
			{ID: 2, FirstName: "Jane", LastName: "Peacock", Title: "Sales Manager"},
		},
		Customers: []snapshot.Customer{
			{ID: 1, SupportRepID: 1},
			{ID: 2, SupportRepID: 2},
		},
		Invoices: []snapshot.Invoice{
			{ID: 1, CustomerID: 1, Total: 40},
			{ID: 2, CustomerID: 2, Total: 10},
		},
	})

	got := SalesByRep(snap)
	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].EmployeeID)
	assert.Equal(t, 40.0, got[0].Total)
	assert.Equal(t, int64(2), got[1].EmployeeID)
	assert.Equal(t, 10.0, got[1].Total)
	assert.Equal(t, got[0].Name, got[1].Name)
}

func TestDeterminism(t *testing.T) {
	snap := catalogFixture(t)
	first := TopGenres(snap, 10)
	for range 5 {
		assert.Equal(t, first, TopGenres(snap, 10))
	}
}
