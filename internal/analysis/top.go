package analysis

import (
	"fmt"
	"math"

	"github.com/ademuri/listening-stats/internal/aggregate"
	"github.com/ademuri/listening-stats/internal/compare"
	"github.com/ademuri/listening-stats/internal/playback"
)

// ArtistOrder selects how TopArtists ranks.
type ArtistOrder string

const (
	ByPlays   ArtistOrder = "plays"
	ByMinutes ArtistOrder = "minutes"
)

func ParseArtistOrder(s string) (ArtistOrder, error) {
	switch ArtistOrder(s) {
	case ByPlays, ByMinutes:
		return ArtistOrder(s), nil
	}
	return "", fmt.Errorf("unknown artist order %q (expected plays or minutes)", s)
}

type ArtistEntry struct {
	Rank    int    `yaml:"rank"`
	Name    string `yaml:"name"`
	Plays   int    `yaml:"plays"`
	Minutes int    `yaml:"minutes"`
	Tracks  int    `yaml:"unique_tracks"`
}

// TopArtists ranks artists in the scope's range by plays or listened minutes.
func TopArtists(events []playback.PlayEvent, s Scope, order ArtistOrder, n int) []ArtistEntry {
	g := aggregate.GroupBy(s.Current(events), aggregate.ByArtist,
		aggregate.WithDistinct(aggregate.TrackName), aggregate.WithDuration())

	ranked := g.Ranked()
	if order == ByMinutes {
		ranked = aggregate.RankBy(ranked, func(b aggregate.Bucket[string]) int64 {
			return int64(listenedMinutes(b.DurationMs))
		})
	}

	var out []ArtistEntry
	for i, b := range aggregate.Limit(ranked, n) {
		out = append(out, ArtistEntry{
			Rank:    i + 1,
			Name:    b.Key,
			Plays:   b.Count,
			Minutes: listenedMinutes(b.DurationMs),
			Tracks:  b.Unique(),
		})
	}
	return out
}

type TrackEntry struct {
	Rank     int              `yaml:"rank"`
	Track    string           `yaml:"track"`
	Artist   string           `yaml:"artist"`
	Album    string           `yaml:"album"`
	Plays    int              `yaml:"plays"`
	Movement compare.Movement `yaml:"movement,omitempty"`
	Places   int              `yaml:"places,omitempty"`
}

// TopTracks ranks tracks in the scope's range and compares each rank with the
// previous period's ranking. Movement is empty for the "all" range.
func TopTracks(events []playback.PlayEvent, s Scope, n int) []TrackEntry {
	current := s.Current(events)
	albums := make(map[playback.TrackKey]string)
	for _, e := range current {
		if _, ok := albums[e.Track()]; !ok {
			albums[e.Track()] = e.AlbumName
		}
	}

	var prevRank map[playback.TrackKey]int
	previous, hasPrevious := s.Previous(events)
	if hasPrevious {
		prevRank = make(map[playback.TrackKey]int)
		for i, b := range aggregate.GroupBy(previous, aggregate.ByTrack).Ranked() {
			prevRank[b.Key] = i + 1
		}
	}

	var out []TrackEntry
	for i, b := range aggregate.GroupBy(current, aggregate.ByTrack).Top(n) {
		entry := TrackEntry{
			Rank:   i + 1,
			Track:  b.Key.Track,
			Artist: b.Key.Artist,
			Album:  albums[b.Key],
			Plays:  b.Count,
		}
		if hasPrevious {
			prev, found := prevRank[b.Key]
			entry.Movement, entry.Places = compare.RankMovement(entry.Rank, prev, found)
		}
		out = append(out, entry)
	}
	return out
}

// CloudSize maps a count to a 1-5 display weight relative to the largest.
func CloudSize(count, largest int) int {
	if largest <= 0 {
		return 1
	}
	return max(1, int(math.Ceil(float64(count)/float64(largest)*5)))
}

type AlbumEntry struct {
	Rank     int    `yaml:"rank"`
	Album    string `yaml:"album"`
	Artist   string `yaml:"artist"`
	Plays    int    `yaml:"plays"`
	Tracks   int    `yaml:"unique_tracks"`
	Size     int    `yaml:"size"`
	ImageURL string `yaml:"image_url,omitempty"`

	// Change is nil when the range has no previous period. New marks albums
	// not played in the previous period.
	Change *int `yaml:"change_percent,omitempty"`
	New    bool `yaml:"new,omitempty"`
}

type AlbumGallery struct {
	Albums      []AlbumEntry `yaml:"albums"`
	Plays       int          `yaml:"plays"`
	Change      int          `yaml:"change_percent"`
	HasPrevious bool         `yaml:"has_previous"`
}

// TopAlbums ranks albums in the scope's range, with per-album and overall
// change against the previous period.
func TopAlbums(events []playback.PlayEvent, s Scope, n int) AlbumGallery {
	current := s.Current(events)
	images := make(map[playback.AlbumKey]string)
	for _, e := range current {
		if e.AlbumImageURL != "" {
			images[e.Album()] = e.AlbumImageURL
		}
	}

	gallery := AlbumGallery{Plays: len(current)}
	previous, hasPrevious := s.Previous(events)
	prev := aggregate.GroupBy(previous, aggregate.ByAlbum)
	if hasPrevious {
		gallery.HasPrevious = true
		gallery.Change = compare.PercentChange(float64(len(current)), float64(len(previous)))
	}

	top := aggregate.GroupBy(current, aggregate.ByAlbum, aggregate.WithDistinct(aggregate.TrackName)).Top(n)
	for i, b := range top {
		entry := AlbumEntry{
			Rank:     i + 1,
			Album:    b.Key.Album,
			Artist:   b.Key.Artist,
			Plays:    b.Count,
			Tracks:   b.Unique(),
			Size:     CloudSize(b.Count, top[0].Count),
			ImageURL: images[b.Key],
		}
		if hasPrevious {
			before := prev.Count(b.Key)
			change := compare.PercentChange(float64(b.Count), float64(before))
			entry.Change = &change
			entry.New = before == 0
		}
		gallery.Albums = append(gallery.Albums, entry)
	}
	return gallery
}

type FeaturedEntry struct {
	Name   string `yaml:"name"`
	Plays  int    `yaml:"plays"`
	Tracks int    `yaml:"unique_tracks"`
	Size   int    `yaml:"size"`
}

// FeaturedArtists ranks the secondary artists credited on plays in range.
func FeaturedArtists(events []playback.PlayEvent, s Scope, n int) []FeaturedEntry {
	top := aggregate.GroupByMulti(s.Current(events), aggregate.ByFeatured,
		aggregate.WithDistinct(aggregate.TrackID)).Top(n)

	var out []FeaturedEntry
	for _, b := range top {
		out = append(out, FeaturedEntry{
			Name:   b.Key,
			Plays:  b.Count,
			Tracks: b.Unique(),
			Size:   CloudSize(b.Count, top[0].Count),
		})
	}
	return out
}
