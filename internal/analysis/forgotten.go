package analysis

import (
	"sort"
	"time"

	"github.com/ademuri/listening-stats/internal/aggregate"
	"github.com/ademuri/listening-stats/internal/playback"
)

// ForgottenConfig selects entities by when they were first and last played.
// Zero times leave that bound open.
type ForgottenConfig struct {
	LastPlayAfter   time.Time
	LastPlayBefore  time.Time
	FirstPlayAfter  time.Time
	FirstPlayBefore time.Time
	MinArtistPlays  int
	MinAlbumPlays   int
	ResultsPerBand  int
	SortBy          string // "dormancy" or "plays"
}

// DefaultDormancy is how long an entity must go unplayed to count as
// forgotten when no explicit bound is given.
const DefaultDormancy = 90 * 24 * time.Hour

type ForgottenArtist struct {
	Artist        string    `yaml:"artist"`
	Plays         int       `yaml:"plays"`
	FirstPlay     time.Time `yaml:"first_play"`
	LastPlay      time.Time `yaml:"last_play"`
	DaysSinceLast int       `yaml:"days_since_last"`
	Band          string    `yaml:"band"`
}

type ForgottenAlbum struct {
	Artist        string    `yaml:"artist"`
	Album         string    `yaml:"album"`
	Plays         int       `yaml:"plays"`
	FirstPlay     time.Time `yaml:"first_play"`
	LastPlay      time.Time `yaml:"last_play"`
	DaysSinceLast int       `yaml:"days_since_last"`
	Band          string    `yaml:"band"`
}

const (
	BandObsession = "Obsession"
	BandStrong    = "Strong"
	BandModerate  = "Moderate"

	// Artist Thresholds
	ThresholdArtistObsession = 120
	ThresholdArtistStrong    = 50
	ThresholdArtistModerate  = 15

	// Album Thresholds
	ThresholdAlbumObsession = 60
	ThresholdAlbumStrong    = 30
	ThresholdAlbumModerate  = 10
)

// Bands lists the interest bands, strongest first.
var Bands = []string{BandObsession, BandStrong, BandModerate}

var thresholds = map[bool]map[string]int{
	true:  {BandObsession: ThresholdArtistObsession, BandStrong: ThresholdArtistStrong, BandModerate: ThresholdArtistModerate},
	false: {BandObsession: ThresholdAlbumObsession, BandStrong: ThresholdAlbumStrong, BandModerate: ThresholdAlbumModerate},
}

// GetThreshold returns the minimum plays for a given band and type (artist/album).
func GetThreshold(band string, isArtist bool) int {
	return thresholds[isArtist][band]
}

func determineBand(plays int, isArtist bool) string {
	for _, band := range Bands {
		if plays >= GetThreshold(band, isArtist) {
			return band
		}
	}
	return ""
}

// span is the first and last play of one entity.
type span struct {
	first, last time.Time
}

func spans[K comparable](events []playback.PlayEvent, key aggregate.KeyFunc[K]) map[K]span {
	out := make(map[K]span)
	for _, e := range events {
		k := key(e)
		s, ok := out[k]
		if !ok || e.PlayedAt.Before(s.first) {
			s.first = e.PlayedAt
		}
		if !ok || e.PlayedAt.After(s.last) {
			s.last = e.PlayedAt
		}
		out[k] = s
	}
	return out
}

func (cfg ForgottenConfig) matches(s span) bool {
	inside := func(t, after, before time.Time) bool {
		return (after.IsZero() || t.After(after)) && (before.IsZero() || t.Before(before))
	}
	return inside(s.last, cfg.LastPlayAfter, cfg.LastPlayBefore) &&
		inside(s.first, cfg.FirstPlayAfter, cfg.FirstPlayBefore)
}

func daysSince(t, now time.Time) int {
	return int(now.Sub(t).Hours() / 24)
}

// GetForgottenArtists finds heavily played artists whose last play falls in
// the configured window, grouped by interest band.
func GetForgottenArtists(events []playback.PlayEvent, cfg ForgottenConfig, now time.Time) map[string][]ForgottenArtist {
	plays := aggregate.GroupBy(events, aggregate.ByArtist)
	results := make(map[string][]ForgottenArtist)

	for artist, s := range spans(events, aggregate.ByArtist) {
		n := plays.Count(artist)
		if n < cfg.MinArtistPlays || !cfg.matches(s) {
			continue
		}
		band := determineBand(n, true)
		if band == "" {
			continue
		}
		results[band] = append(results[band], ForgottenArtist{
			Artist:        artist,
			Plays:         n,
			FirstPlay:     s.first,
			LastPlay:      s.last,
			DaysSinceLast: daysSince(s.last, now),
			Band:          band,
		})
	}

	for band := range results {
		sortArtists(results[band], cfg.SortBy)
		results[band] = aggregate.Limit(results[band], cfg.ResultsPerBand)
	}
	return results
}

// GetForgottenAlbums is GetForgottenArtists for albums.
func GetForgottenAlbums(events []playback.PlayEvent, cfg ForgottenConfig, now time.Time) map[string][]ForgottenAlbum {
	plays := aggregate.GroupBy(events, aggregate.ByAlbum)
	results := make(map[string][]ForgottenAlbum)

	for album, s := range spans(events, aggregate.ByAlbum) {
		if album.Album == playback.UnknownAlbum {
			continue
		}
		n := plays.Count(album)
		if n < cfg.MinAlbumPlays || !cfg.matches(s) {
			continue
		}
		band := determineBand(n, false)
		if band == "" {
			continue
		}
		results[band] = append(results[band], ForgottenAlbum{
			Artist:        album.Artist,
			Album:         album.Album,
			Plays:         n,
			FirstPlay:     s.first,
			LastPlay:      s.last,
			DaysSinceLast: daysSince(s.last, now),
			Band:          band,
		})
	}

	for band := range results {
		sortAlbums(results[band], cfg.SortBy)
		results[band] = aggregate.Limit(results[band], cfg.ResultsPerBand)
	}
	return results
}

// Map iteration order is random, so both sorts fall back to the name.
func sortArtists(artists []ForgottenArtist, sortBy string) {
	sort.Slice(artists, func(i, j int) bool {
		a, b := artists[i], artists[j]
		if sortBy == "plays" && a.Plays != b.Plays {
			return a.Plays > b.Plays
		}
		// Default to dormancy (longest dormancy first)
		if sortBy != "plays" && !a.LastPlay.Equal(b.LastPlay) {
			return a.LastPlay.Before(b.LastPlay)
		}
		return a.Artist < b.Artist
	})
}

func sortAlbums(albums []ForgottenAlbum, sortBy string) {
	sort.Slice(albums, func(i, j int) bool {
		a, b := albums[i], albums[j]
		if sortBy == "plays" && a.Plays != b.Plays {
			return a.Plays > b.Plays
		}
		if sortBy != "plays" && !a.LastPlay.Equal(b.LastPlay) {
			return a.LastPlay.Before(b.LastPlay)
		}
		if a.Artist != b.Artist {
			return a.Artist < b.Artist
		}
		return a.Album < b.Album
	})
}
