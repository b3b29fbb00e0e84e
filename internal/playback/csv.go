package playback

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	ColPlayedAt         = "played_at"
	ColTrackName        = "track_name"
	ColArtistName       = "artist_name"
	ColArtistImageURL   = "artist_image_url"
	ColAlbumName        = "album_name"
	ColDurationMs       = "duration_ms"
	ColAlbumImageURL    = "album_image_url"
	ColFeaturedArtists  = "featured_artists"
	ColAlbumReleaseYear = "album_release_year"
	ColGenres           = "genres"
)

// DecodeStats reports what happened to the rows of a CSV source.
type DecodeStats struct {
	Rows    int
	Valid   int
	Skipped int
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts unix seconds, unix milliseconds and the usual ISO 8601
// layouts. Timestamps without a zone are read in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		// Anything past year 5138 in seconds is really milliseconds.
		if n > 1e11 {
			return time.UnixMilli(n), nil
		}
		return time.Unix(n, 0), nil
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parsing timestamp %q: unrecognised format", s)
}

// DecodeCSV reads play events from a CSV with a header row. Rows whose
// played_at is missing or unparseable, and rows the CSV reader cannot parse,
// are counted as skipped. Only header and read errors are returned.
func DecodeCSV(r io.Reader, loc *time.Location) ([]PlayEvent, DecodeStats, error) {
	var stats DecodeStats

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	// Track titles like `12" Mix` carry bare quotes.
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, stats, nil
	}
	if err != nil {
		return nil, stats, fmt.Errorf("reading header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	if _, ok := cols[ColPlayedAt]; !ok {
		return nil, stats, fmt.Errorf("missing %q column", ColPlayedAt)
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var events []PlayEvent
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			stats.Rows++
			stats.Skipped++
			continue
		}
		if err != nil {
			return events, stats, fmt.Errorf("reading row %d: %w", stats.Rows+1, err)
		}
		if isBlank(record) {
			continue
		}
		stats.Rows++

		playedAt, err := ParseTimestamp(field(record, ColPlayedAt), loc)
		if err != nil {
			stats.Skipped++
			continue
		}

		e := PlayEvent{
			PlayedAt:         playedAt,
			TrackName:        field(record, ColTrackName),
			ArtistName:       field(record, ColArtistName),
			AlbumName:        field(record, ColAlbumName),
			DurationMs:       parseDuration(field(record, ColDurationMs)),
			AlbumImageURL:    field(record, ColAlbumImageURL),
			ArtistImageURL:   field(record, ColArtistImageURL),
			FeaturedArtists:  field(record, ColFeaturedArtists),
			AlbumReleaseYear: field(record, ColAlbumReleaseYear),
			Genres:           field(record, ColGenres),
		}
		events = append(events, e.withDefaults())
		stats.Valid++
	}

	return events, stats, nil
}

func parseDuration(s string) int64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || f < 0 {
		return 0
	}
	return int64(f)
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
