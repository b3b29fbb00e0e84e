package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/ademuri/listening-stats/internal/aggregate"
	"github.com/ademuri/listening-stats/internal/compare"
	"github.com/ademuri/listening-stats/internal/playback"
)

type DayTotal struct {
	Day   time.Weekday `yaml:"day"`
	Plays int          `yaml:"plays"`
}

type DayOfWeek struct {
	Days     []DayTotal   `yaml:"days"`
	Busiest  time.Weekday `yaml:"busiest"`
	Quietest time.Weekday `yaml:"quietest"`
	Average  int          `yaml:"average"`
	HasData  bool         `yaml:"has_data"`
}

// DayOfWeekBreakdown totals plays in range per weekday, Sunday first. Ties
// for busiest and quietest go to the earlier day.
func DayOfWeekBreakdown(events []playback.PlayEvent, s Scope) DayOfWeek {
	current := s.Current(events)
	totals := aggregate.WeekdayTotals(current, s.loc())

	out := DayOfWeek{HasData: len(current) > 0}
	for d, n := range totals {
		day := time.Weekday(d)
		out.Days = append(out.Days, DayTotal{Day: day, Plays: n})
		if n > totals[out.Busiest] {
			out.Busiest = day
		}
		if n < totals[out.Quietest] {
			out.Quietest = day
		}
	}
	out.Average = int(compare.Round(float64(len(current))/7, 0))
	return out
}

// IsWeekend reports whether d is Saturday or Sunday.
func IsWeekend(d time.Weekday) bool {
	return d == time.Saturday || d == time.Sunday
}

type RadarPeriod struct {
	Name    string `yaml:"name"`
	Weekday int    `yaml:"weekday"`
	Weekend int    `yaml:"weekend"`
}

// radarPeriods are overlapping four-hour spans; each shares its last hour with
// the next span's first.
var radarPeriods = []struct {
	name  string
	hours [4]int
}{
	{"Late Night (12-3AM)", [4]int{0, 1, 2, 3}},
	{"Early Morning (3-6AM)", [4]int{3, 4, 5, 6}},
	{"Morning (6-9AM)", [4]int{6, 7, 8, 9}},
	{"Late Morning (9-12PM)", [4]int{9, 10, 11, 12}},
	{"Afternoon (12-3PM)", [4]int{12, 13, 14, 15}},
	{"Late Afternoon (3-6PM)", [4]int{15, 16, 17, 18}},
	{"Evening (6-9PM)", [4]int{18, 19, 20, 21}},
	{"Night (9PM-12AM)", [4]int{21, 22, 23, 0}},
}

// Segment describes either weekday or weekend listening.
type Segment struct {
	Plays          int           `yaml:"plays"`
	PerDay         float64       `yaml:"plays_per_day"`
	Minutes        int           `yaml:"minutes"`
	MinutesPerPlay float64       `yaml:"minutes_per_play"`
	PeakHour       string        `yaml:"peak_hour"`
	UniqueArtists  int           `yaml:"unique_artists"`
	UniqueTracks   int           `yaml:"unique_tracks"`
	TopArtists     []ArtistEntry `yaml:"top_artists"`
	hourly         [24]int
}

type WeekdayWeekend struct {
	Weekday Segment       `yaml:"weekday"`
	Weekend Segment       `yaml:"weekend"`
	Radar   []RadarPeriod `yaml:"radar"`

	// Difference is how much higher the weekend daily average is, in percent.
	Difference int  `yaml:"difference_percent"`
	HasData    bool `yaml:"has_data"`
}

// WeekdayWeekendComparison contrasts weekday and weekend listening in range.
// Averages per day divide by 5 and 2.
func WeekdayWeekendComparison(events []playback.PlayEvent, s Scope, topN int) WeekdayWeekend {
	current := s.Current(events)
	if len(current) == 0 {
		return WeekdayWeekend{}
	}

	var weekday, weekend []playback.PlayEvent
	for _, e := range current {
		if IsWeekend(e.PlayedAt.In(s.loc()).Weekday()) {
			weekend = append(weekend, e)
		} else {
			weekday = append(weekday, e)
		}
	}

	out := WeekdayWeekend{
		Weekday: segment(weekday, s.loc(), 5, topN),
		Weekend: segment(weekend, s.loc(), 2, topN),
		HasData: true,
	}
	for _, p := range radarPeriods {
		r := RadarPeriod{Name: p.name}
		for _, h := range p.hours {
			r.Weekday += out.Weekday.hourly[h]
			r.Weekend += out.Weekend.hourly[h]
		}
		out.Radar = append(out.Radar, r)
	}
	out.Difference = compare.PercentChange(out.Weekend.PerDay, out.Weekday.PerDay)
	return out
}

func segment(events []playback.PlayEvent, loc *time.Location, days float64, topN int) Segment {
	seg := Segment{
		Plays:  len(events),
		PerDay: compare.Round(float64(len(events))/days, 1),
		hourly: aggregate.Hourly(events, loc),
	}
	minutes := float64(totalDuration(events)) / 60000
	seg.Minutes = int(math.Round(minutes))
	if len(events) > 0 {
		seg.MinutesPerPlay = compare.Round(minutes/float64(len(events)), 1)
		seg.PeakHour = FormatHour(peakHour(seg.hourly))
	}

	artists := aggregate.GroupBy(events, aggregate.ByArtist, aggregate.WithDistinct(aggregate.TrackName), aggregate.WithDuration())
	seg.UniqueArtists = artists.Len()
	seg.UniqueTracks = aggregate.GroupBy(events, aggregate.ByTrack).Len()
	for i, b := range artists.Top(topN) {
		seg.TopArtists = append(seg.TopArtists, ArtistEntry{
			Rank:    i + 1,
			Name:    b.Key,
			Plays:   b.Count,
			Minutes: listenedMinutes(b.DurationMs),
			Tracks:  b.Unique(),
		})
	}
	return seg
}

// peakHour returns the first hour with the highest count.
func peakHour(hourly [24]int) int {
	peak := 0
	for h, n := range hourly {
		if n > hourly[peak] {
			peak = h
		}
	}
	return peak
}

// FormatHour renders an hour of the day as 12AM, 9AM, 12PM, 3PM.
func FormatHour(h int) string {
	switch {
	case h == 0:
		return "12AM"
	case h < 12:
		return fmt.Sprintf("%dAM", h)
	case h == 12:
		return "12PM"
	}
	return fmt.Sprintf("%dPM", h-12)
}
