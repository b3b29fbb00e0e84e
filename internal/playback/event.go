package playback

import (
	"strings"
	"time"
)

const (
	UnknownTrack  = "Unknown Track"
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"

	// FallbackDurationMs stands in for a missing duration in duration-based
	// aggregates that cannot tolerate zero-length plays.
	FallbackDurationMs = 180000

	// EngagementFactor approximates listened time net of skips.
	EngagementFactor = 0.95
)

// PlayEvent is one historical playback record.
type PlayEvent struct {
	PlayedAt         time.Time
	TrackName        string
	ArtistName       string
	AlbumName        string
	DurationMs       int64
	AlbumImageURL    string
	ArtistImageURL   string
	FeaturedArtists  string
	AlbumReleaseYear string
	Genres           string
}

// TrackKey identifies a track by name and primary artist.
type TrackKey struct {
	Track  string
	Artist string
}

// AlbumKey identifies an album by name and primary artist.
type AlbumKey struct {
	Album  string
	Artist string
}

func (e PlayEvent) Track() TrackKey {
	return TrackKey{Track: e.TrackName, Artist: e.ArtistName}
}

func (e PlayEvent) Album() AlbumKey {
	return AlbumKey{Album: e.AlbumName, Artist: e.ArtistName}
}

// DurationOrFallback returns the duration, or FallbackDurationMs when it is zero.
func (e PlayEvent) DurationOrFallback() int64 {
	if e.DurationMs <= 0 {
		return FallbackDurationMs
	}
	return e.DurationMs
}

// FeaturedArtistNames splits the comma-separated featured artists, dropping
// blank entries.
func (e PlayEvent) FeaturedArtistNames() []string {
	if e.FeaturedArtists == "" {
		return nil
	}
	var names []string
	for _, name := range strings.Split(e.FeaturedArtists, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// withDefaults fills the text fields the way the loader contract requires.
func (e PlayEvent) withDefaults() PlayEvent {
	if e.TrackName == "" {
		e.TrackName = UnknownTrack
	}
	if e.ArtistName == "" {
		e.ArtistName = UnknownArtist
	}
	if e.AlbumName == "" {
		e.AlbumName = UnknownAlbum
	}
	if e.DurationMs < 0 {
		e.DurationMs = 0
	}
	return e
}

func (e PlayEvent) String() string {
	return e.TrackName + " - " + e.ArtistName + " @ " + e.PlayedAt.Format(time.RFC3339)
}
