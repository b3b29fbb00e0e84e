package analysis

import (
	"fmt"
	"sort"
	"time"

	"github.com/ademuri/listening-stats/internal/aggregate"
	"github.com/ademuri/listening-stats/internal/compare"
	"github.com/ademuri/listening-stats/internal/playback"
	"github.com/ademuri/listening-stats/internal/timerange"
)

// Years lists the calendar years with plays in loc, most recent first.
func Years(events []playback.PlayEvent, loc *time.Location) []int {
	g := aggregate.GroupBy(events, func(e playback.PlayEvent) int { return e.PlayedAt.In(loc).Year() })
	var years []int
	for _, b := range g.Buckets() {
		years = append(years, b.Key)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

type MonthInMusic struct {
	Month         string        `yaml:"month"`
	Name          string        `yaml:"name"`
	Plays         int           `yaml:"plays"`
	UniqueArtists int           `yaml:"unique_artists"`
	TopArtists    []ArtistEntry `yaml:"top_artists"`
	OtherArtists  []ArtistEntry `yaml:"other_artists,omitempty"`
}

type YearInMusic struct {
	Year   int            `yaml:"year"`
	Years  []int          `yaml:"available_years"`
	Months []MonthInMusic `yaml:"months"`
}

// MonthTopArtists is how many artists lead each month of YearInMusicFor.
const MonthTopArtists = 3

// YearInMusicFor breaks one calendar year down by month. A zero year picks
// the most recent year with plays. The selected range does not apply.
func YearInMusicFor(events []playback.PlayEvent, s Scope, year int) YearInMusic {
	out := YearInMusic{Years: Years(events, s.loc())}
	if year == 0 && len(out.Years) > 0 {
		year = out.Years[0]
	}
	out.Year = year

	var inYear []playback.PlayEvent
	for _, e := range events {
		if e.PlayedAt.In(s.loc()).Year() == year {
			inYear = append(inYear, e)
		}
	}

	byMonth := aggregate.GroupBy(inYear, aggregate.ByMonth(s.loc()))
	months := byMonth.Buckets()
	sort.Slice(months, func(i, j int) bool { return months[i].Key < months[j].Key })

	monthKey := aggregate.ByMonth(s.loc())
	for _, m := range months {
		var plays []playback.PlayEvent
		for _, e := range inYear {
			if monthKey(e) == m.Key {
				plays = append(plays, e)
			}
		}
		month := MonthInMusic{Month: m.Key, Plays: m.Count}
		if t, err := time.Parse("2006-01", m.Key); err == nil {
			month.Name = t.Month().String()
		}

		artists := aggregate.GroupBy(plays, aggregate.ByArtist, aggregate.WithDistinct(aggregate.TrackName), aggregate.WithDuration())
		month.UniqueArtists = artists.Len()
		for i, b := range artists.Ranked() {
			entry := ArtistEntry{Rank: i + 1, Name: b.Key, Plays: b.Count, Minutes: listenedMinutes(b.DurationMs), Tracks: b.Unique()}
			if i < MonthTopArtists {
				month.TopArtists = append(month.TopArtists, entry)
			} else {
				month.OtherArtists = append(month.OtherArtists, entry)
			}
		}
		out.Months = append(out.Months, month)
	}
	return out
}

type RecentPlay struct {
	PlayedAt    time.Time `yaml:"played_at"`
	Ago         string    `yaml:"ago"`
	Track       string    `yaml:"track"`
	Artist      string    `yaml:"artist"`
	Album       string    `yaml:"album"`
	Duration    string    `yaml:"duration"`
	PlaysToday  int       `yaml:"plays_today"`
	ArtistShare int       `yaml:"artist_share_today"`
}

type RecentPlays struct {
	Plays      []RecentPlay `yaml:"plays"`
	TodayPlays int          `yaml:"today_plays"`
}

// RecentPlaysFeed lists the latest limit plays, newest first, with how often
// each track and artist has been played today. Plays after now are ignored.
func RecentPlaysFeed(events []playback.PlayEvent, s Scope, limit int) RecentPlays {
	latest := playback.Sorted(timerange.All.Current(s.Now).Filter(events))
	for i, j := 0, len(latest)-1; i < j; i, j = i+1, j-1 {
		latest[i], latest[j] = latest[j], latest[i]
	}

	today := s.Now.In(s.loc()).Format(aggregate.DateLayout)
	dateKey := aggregate.ByDate(s.loc())
	var todays []playback.PlayEvent
	for _, e := range latest {
		if dateKey(e) == today {
			todays = append(todays, e)
		}
	}
	tracks := aggregate.GroupBy(todays, aggregate.ByTrack)
	artists := aggregate.GroupBy(todays, aggregate.ByArtist)

	out := RecentPlays{TodayPlays: len(todays)}
	for _, e := range aggregate.Limit(latest, limit) {
		out.Plays = append(out.Plays, RecentPlay{
			PlayedAt:    e.PlayedAt.In(s.loc()),
			Ago:         FormatAgo(s.Now.Sub(e.PlayedAt)),
			Track:       e.TrackName,
			Artist:      e.ArtistName,
			Album:       e.AlbumName,
			Duration:    FormatTrackDuration(e.DurationMs),
			PlaysToday:  tracks.Count(e.Track()),
			ArtistShare: compare.Percent(artists.Count(e.ArtistName), len(todays)),
		})
	}
	return out
}

// FormatAgo renders an elapsed time as "Just now", "5m ago", "3h ago" or
// "2d ago".
func FormatAgo(d time.Duration) string {
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	}
	return fmt.Sprintf("%dd ago", int(d.Hours()/24))
}

// FormatTrackDuration renders milliseconds as m:ss.
func FormatTrackDuration(ms int64) string {
	return fmt.Sprintf("%d:%02d", ms/60000, ms%60000/1000)
}
