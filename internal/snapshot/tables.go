package snapshot

import "time"

// Customer is a row of the Customer table. SupportRepID is 0 when the
// customer has no assigned support rep (NULL in the source).
type Customer struct {
	ID           int64
	FirstName    string
	LastName     string
	Country      string
	SupportRepID int64
}

// Name returns the customer's display name.
func (c Customer) Name() string {
	return c.FirstName + " " + c.LastName
}

// Invoice is a row of the Invoice table.
type Invoice struct {
	ID             int64
	CustomerID     int64
	Date           time.Time
	BillingCountry string
	Total          float64
}

// InvoiceLine is a row of the InvoiceLine table.
type InvoiceLine struct {
	ID        int64
	InvoiceID int64
	TrackID   int64
	UnitPrice float64
	Quantity  int64
}

// Track is a row of the Track table. AlbumID and GenreID are 0 when NULL.
type Track struct {
	ID      int64
	Name    string
	AlbumID int64
	GenreID int64
}

// Album is a row of the Album table.
type Album struct {
	ID       int64
	Title    string
	ArtistID int64
}

// Artist is a row of the Artist table.
type Artist struct {
	ID   int64
	Name string
}

// Genre is a row of the Genre table.
type Genre struct {
	ID   int64
	Name string
}

// Employee is a row of the Employee table. ReportsTo is 0 when NULL.
type Employee struct {
	ID        int64
	FirstName string
	LastName  string
	Title     string
	ReportsTo int64
}

// Name returns the employee's display name.
func (e Employee) Name() string {
	return e.FirstName + " " + e.LastName
}

// Snapshot is the full in-memory copy of the dataset, loaded once per run
// and treated as immutable. Slices preserve primary-key order; the maps are
// lookup indexes over the same rows. A lookup miss means the source had a
// dangling foreign key, which callers handle rather than assume away.
type Snapshot struct {
	Customers    []Customer
	Invoices     []Invoice
	InvoiceLines []InvoiceLine
	Tracks       []Track
	Albums       []Album
	Artists      []Artist
	Genres       []Genre
	Employees    []Employee

	CustomerByID map[int64]Customer
	TrackByID    map[int64]Track
	AlbumByID    map[int64]Album
	ArtistByID   map[int64]Artist
	GenreByID    map[int64]Genre
	EmployeeByID map[int64]Employee
}

func (s *Snapshot) index() {
	s.CustomerByID = make(map[int64]Customer, len(s.Customers))
	for _, c := range s.Customers {
		s.CustomerByID[c.ID] = c
	}
	s.TrackByID = make(map[int64]Track, len(s.Tracks))
	for _, t := range s.Tracks {
		s.TrackByID[t.ID] = t
	}
	s.AlbumByID = make(map[int64]Album, len(s.Albums))
	for _, a := range s.Albums {
		s.AlbumByID[a.ID] = a
	}
	s.ArtistByID = make(map[int64]Artist, len(s.Artists))
	for _, a := range s.Artists {
		s.ArtistByID[a.ID] = a
	}
	s.GenreByID = make(map[int64]Genre, len(s.Genres))
	for _, g := range s.Genres {
		s.GenreByID[g.ID] = g
	}
	s.EmployeeByID = make(map[int64]Employee, len(s.Employees))
	for _, e := range s.Employees {
		s.EmployeeByID[e.ID] = e
	}
}
