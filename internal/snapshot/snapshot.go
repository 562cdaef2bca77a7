// Package snapshot loads the Chinook-schema dataset into memory.
//
// The dataset file is opened read-only, every table is read once in
// primary-key order, and the connection is closed before Load returns.
// Everything downstream works on the immutable in-memory copy.
package snapshot

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	// sqlite driver for the dataset file.
	_ "modernc.org/sqlite"
)

// DataSourceError reports a dataset that is missing, unreadable, or not
// shaped like the expected schema. It is fatal for the run.
type DataSourceError struct {
	Path string
	Err  error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("data source %s: %v", e.Path, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }

// Load reads every table of the dataset at path into a Snapshot.
func Load(ctx context.Context, path string) (*Snapshot, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &DataSourceError{Path: path, Err: err}
	}

	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, &DataSourceError{Path: path, Err: err}
	}
	defer func() { _ = db.Close() }()

	if err := db.PingContext(ctx); err != nil {
		return nil, &DataSourceError{Path: path, Err: err}
	}

	s := &Snapshot{}
	loaders := []func(context.Context, *sql.DB) error{
		s.loadCustomers,
		s.loadInvoices,
		s.loadInvoiceLines,
		s.loadTracks,
		s.loadAlbums,
		s.loadArtists,
		s.loadGenres,
		s.loadEmployees,
	}
	for _, load := range loaders {
		if err := load(ctx, db); err != nil {
			return nil, &DataSourceError{Path: path, Err: err}
		}
	}

	s.index()
	return s, nil
}

func (s *Snapshot) loadCustomers(ctx context.Context, db *sql.DB) error {
	rows, err := db.QueryContext(ctx,
		`SELECT CustomerId, FirstName, LastName, Country, SupportRepId FROM Customer ORDER BY CustomerId`)
	if err != nil {
		return fmt.Errorf("query Customer: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var c Customer
		var country sql.NullString
		var rep sql.NullInt64
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &country, &rep); err != nil {
			return fmt.Errorf("scan Customer: %w", err)
		}
		c.Country = country.String
		c.SupportRepID = rep.Int64
		s.Customers = append(s.Customers, c)
	}
	return rows.Err()
}

func (s *Snapshot) loadInvoices(ctx context.Context, db *sql.DB) error {
	rows, err := db.QueryContext(ctx,
		`SELECT InvoiceId, CustomerId, InvoiceDate, BillingCountry, Total FROM Invoice ORDER BY InvoiceId`)
	if err != nil {
		return fmt.Errorf("query Invoice: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var inv Invoice
		var date any
		var country sql.NullString
		if err := rows.Scan(&inv.ID, &inv.CustomerID, &date, &country, &inv.Total); err != nil {
			return fmt.Errorf("scan Invoice: %w", err)
		}
		t, err := coerceTime(date)
		if err != nil {
			return fmt.Errorf("invoice %d: %w", inv.ID, err)
		}
		inv.Date = t
		inv.BillingCountry = country.String
		s.Invoices = append(s.Invoices, inv)
	}
	return rows.Err()
}

func (s *Snapshot) loadInvoiceLines(ctx context.Context, db *sql.DB) error {
	rows, err := db.QueryContext(ctx,
		`SELECT InvoiceLineId, InvoiceId, TrackId, UnitPrice, Quantity FROM InvoiceLine ORDER BY InvoiceLineId`)
	if err != nil {
		return fmt.Errorf("query InvoiceLine: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var l InvoiceLine
		if err := rows.Scan(&l.ID, &l.InvoiceID, &l.TrackID, &l.UnitPrice, &l.Quantity); err != nil {
			return fmt.Errorf("scan InvoiceLine: %w", err)
		}
		s.InvoiceLines = append(s.InvoiceLines, l)
	}
	return rows.Err()
}

func (s *Snapshot) loadTracks(ctx context.Context, db *sql.DB) error {
	rows, err := db.QueryContext(ctx,
		`SELECT TrackId, Name, AlbumId, GenreId FROM Track ORDER BY TrackId`)
	if err != nil {
		return fmt.Errorf("query Track: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var t Track
		var album, genre sql.NullInt64
		if err := rows.Scan(&t.ID, &t.Name, &album, &genre); err != nil {
			return fmt.Errorf("scan Track: %w", err)
		}
		t.AlbumID = album.Int64
		t.GenreID = genre.Int64
		s.Tracks = append(s.Tracks, t)
	}
	return rows.Err()
}

func (s *Snapshot) loadAlbums(ctx context.Context, db *sql.DB) error {
	rows, err := db.QueryContext(ctx,
		`SELECT AlbumId, Title, ArtistId FROM Album ORDER BY AlbumId`)
	if err != nil {
		return fmt.Errorf("query Album: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var a Album
		if err := rows.Scan(&a.ID, &a.Title, &a.ArtistID); err != nil {
			return fmt.Errorf("scan Album: %w", err)
		}
		s.Albums = append(s.Albums, a)
	}
	return rows.Err()
}

func (s *Snapshot) loadArtists(ctx context.Context, db *sql.DB) error {
	rows, err := db.QueryContext(ctx,
		`SELECT ArtistId, Name FROM Artist ORDER BY ArtistId`)
	if err != nil {
		return fmt.Errorf("query Artist: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var a Artist
		var name sql.NullString
		if err := rows.Scan(&a.ID, &name); err != nil {
			return fmt.Errorf("scan Artist: %w", err)
		}
		a.Name = name.String
		s.Artists = append(s.Artists, a)
	}
	return rows.Err()
}

func (s *Snapshot) loadGenres(ctx context.Context, db *sql.DB) error {
	rows, err := db.QueryContext(ctx,
		`SELECT GenreId, Name FROM Genre ORDER BY GenreId`)
	if err != nil {
		return fmt.Errorf("query Genre: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var g Genre
		var name sql.NullString
		if err := rows.Scan(&g.ID, &name); err != nil {
			return fmt.Errorf("scan Genre: %w", err)
		}
		g.Name = name.String
		s.Genres = append(s.Genres, g)
	}
	return rows.Err()
}

func (s *Snapshot) loadEmployees(ctx context.Context, db *sql.DB) error {
	rows, err := db.QueryContext(ctx,
		`SELECT EmployeeId, FirstName, LastName, Title, ReportsTo FROM Employee ORDER BY EmployeeId`)
	if err != nil {
		return fmt.Errorf("query Employee: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var e Employee
		var title sql.NullString
		var reportsTo sql.NullInt64
		if err := rows.Scan(&e.ID, &e.FirstName, &e.LastName, &title, &reportsTo); err != nil {
			return fmt.Errorf("scan Employee: %w", err)
		}
		e.Title = title.String
		e.ReportsTo = reportsTo.Int64
		s.Employees = append(s.Employees, e)
	}
	return rows.Err()
}

// Chinook stores InvoiceDate as TEXT; some drivers hand it back already
// parsed. Accept both.
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02",
}

func coerceTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		for _, layout := range dateLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("unparseable date %q", t)
	case []byte:
		return coerceTime(string(t))
	default:
		return time.Time{}, fmt.Errorf("unexpected date type %T", v)
	}
}
