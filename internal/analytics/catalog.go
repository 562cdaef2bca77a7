package analytics

import "github.com/soundstats-io/soundstats/internal/snapshot"

// UnitsSold is one row of a best-seller ranking: a dimension label (genre,
// artist, or album) and the number of units sold under it.
type UnitsSold struct {
	Label string
	Units int64
}

// TopGenres ranks genres by units sold across all invoice lines,
// descending, at most n rows. Lines whose track or genre does not resolve
// count under Unknown. Ties keep invoice-line scan order.
func TopGenres(s *snapshot.Snapshot, n int) []UnitsSold {
	return topUnits(s, n, func(line snapshot.InvoiceLine) (string, bool) {
		track, ok := s.TrackByID[line.TrackID]
		if !ok {
			return "", false
		}
		genre, ok := s.GenreByID[track.GenreID]
		if !ok {
			return "", false
		}
		return genre.Name, true
	})
}

// TopArtists ranks artists by units sold, descending, at most n rows.
// Lines that do not resolve through track → album → artist count under
// Unknown. Ties keep invoice-line scan order.
func TopArtists(s *snapshot.Snapshot, n int) []UnitsSold {
	return topUnits(s, n, func(line snapshot.InvoiceLine) (string, bool) {
		track, ok := s.TrackByID[line.TrackID]
		if !ok {
			return "", false
		}
		album, ok := s.AlbumByID[track.AlbumID]
		if !ok {
			return "", false
		}
		artist, ok := s.ArtistByID[album.ArtistID]
		if !ok {
			return "", false
		}
		return artist.Name, true
	})
}

// TopAlbums ranks albums by units sold, descending, at most n rows.
// Lines that do not resolve through track → album count under Unknown.
// Ties keep invoice-line scan order.
func TopAlbums(s *snapshot.Snapshot, n int) []UnitsSold {
	return topUnits(s, n, func(line snapshot.InvoiceLine) (string, bool) {
		track, ok := s.TrackByID[line.TrackID]
		if !ok {
			return "", false
		}
		album, ok := s.AlbumByID[track.AlbumID]
		if !ok {
			return "", false
		}
		return album.Title, true
	})
}

func topUnits(s *snapshot.Snapshot, n int, resolve func(snapshot.InvoiceLine) (string, bool)) []UnitsSold {
	acc := newAccumulator()
	for _, line := range s.InvoiceLines {
		label, ok := resolve(line)
		if !ok || label == "" {
			label = UnknownLabel
		}
		acc.add(label, float64(line.Quantity))
	}

	ranked := acc.sorted()
	out := make([]UnitsSold, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, UnitsSold{Label: r.label, Units: int64(r.total)})
	}
	return head(out, n)
}
