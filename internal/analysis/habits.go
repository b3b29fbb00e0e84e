package analysis

import (
	"fmt"
	"math"

	"github.com/ademuri/listening-stats/internal/aggregate"
	"github.com/ademuri/listening-stats/internal/compare"
	"github.com/ademuri/listening-stats/internal/playback"
	"github.com/ademuri/listening-stats/internal/stats"
)

type DayActivity struct {
	Date    string `yaml:"date"`
	Plays   int    `yaml:"plays"`
	Minutes int    `yaml:"minutes"`
}

type Consistency struct {
	Score         int           `yaml:"consistency_percent"`
	Variation     int           `yaml:"variation_percent"`
	ActiveDays    int           `yaml:"active_days"`
	TotalDays     int           `yaml:"total_days"`
	CurrentStreak int           `yaml:"current_streak"`
	LongestStreak int           `yaml:"longest_streak"`
	AveragePerDay float64       `yaml:"average_per_day"`
	StdDev        float64       `yaml:"std_dev"`
	Recent        []DayActivity `yaml:"recent"`
	HasData       bool          `yaml:"has_data"`
}

// HeatmapDays is the number of days in the consistency heatmap (seven weeks).
const HeatmapDays = 49

// ConsistencyVariance measures how evenly plays in range spread across days.
// Recent lists the last HeatmapDays calendar days up to now, oldest first,
// including days without plays.
func ConsistencyVariance(events []playback.PlayEvent, s Scope) Consistency {
	current := s.Current(events)
	c := stats.MeasureConsistency(current, s.loc())
	out := Consistency{
		Score:         int(math.Round(c.Percent)),
		Variation:     int(math.Round(c.Daily.CV)),
		ActiveDays:    c.ActiveDays,
		TotalDays:     c.TotalDays,
		CurrentStreak: stats.CurrentStreak(current, s.Now, s.loc()),
		LongestStreak: stats.LongestStreak(current, s.loc()),
		AveragePerDay: compare.Round(c.Daily.Mean, 1),
		StdDev:        compare.Round(c.Daily.StdDev, 1),
		HasData:       c.Valid,
	}

	byDate := make(map[string]stats.DayCount)
	for _, d := range stats.Daily(current, s.loc()) {
		byDate[d.Date] = d
	}
	today := s.Now.In(s.loc())
	for i := HeatmapDays - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format(aggregate.DateLayout)
		d := byDate[date]
		out.Recent = append(out.Recent, DayActivity{
			Date:    date,
			Plays:   d.Count,
			Minutes: int(math.Round(float64(d.DurationMs) / 60000)),
		})
	}
	return out
}

type Velocity struct {
	Daily    []stats.DayCount `yaml:"daily"`
	Average  float64          `yaml:"average"`
	Max      int              `yaml:"max"`
	Min      int              `yaml:"min"`
	Last7    float64          `yaml:"last_7_average"`
	Prev7    float64          `yaml:"previous_7_average"`
	Trend    int              `yaml:"trend_percent"`
	LowZone  float64          `yaml:"low_zone"`
	HighZone float64          `yaml:"high_zone"`
	HasData  bool             `yaml:"has_data"`
}

// ListeningVelocity tracks daily plays in range and the week-over-week trend.
func ListeningVelocity(events []playback.PlayEvent, s Scope) Velocity {
	v := stats.MeasureVelocity(s.Current(events), s.loc())
	return Velocity{
		Daily:    v.Daily,
		Average:  compare.Round(v.Average, 1),
		Max:      v.Max,
		Min:      v.Min,
		Last7:    compare.Round(v.Last7, 1),
		Prev7:    compare.Round(v.Prev7, 1),
		Trend:    v.Trend,
		LowZone:  compare.Round(v.LowZone, 1),
		HighZone: compare.Round(v.HighZone, 1),
		HasData:  v.Valid,
	}
}

// RepeatMode selects what counts as a repeat.
type RepeatMode string

const (
	RepeatSongs   RepeatMode = "songs"
	RepeatArtists RepeatMode = "artists"
)

func ParseRepeatMode(s string) (RepeatMode, error) {
	switch RepeatMode(s) {
	case RepeatSongs, RepeatArtists:
		return RepeatMode(s), nil
	}
	return "", fmt.Errorf("unknown repeat mode %q (expected songs or artists)", s)
}

type RepeatEntry struct {
	Name   string `yaml:"name"`
	Artist string `yaml:"artist,omitempty"`
	Plays  int    `yaml:"plays"`
}

type RepeatRatio struct {
	Mode        RepeatMode    `yaml:"mode"`
	Plays       int           `yaml:"plays"`
	Unique      int           `yaml:"unique"`
	RepeatPlays int           `yaml:"repeat_plays"`
	Ratio       int           `yaml:"repeat_percent"`
	Exploration int           `yaml:"exploration_percent"`
	Familiarity int           `yaml:"familiarity_percent"`
	TopRepeats  []RepeatEntry `yaml:"top_repeats"`
	HasData     bool          `yaml:"has_data"`
}

// TopRepeatsShown is how many repeated entries RepeatRatioFor lists.
const TopRepeatsShown = 5

// RepeatRatioFor measures how much of the listening in range went to songs
// or artists already played. Exploration is the share of entries played once.
func RepeatRatioFor(events []playback.PlayEvent, s Scope, mode RepeatMode) RepeatRatio {
	current := s.Current(events)
	out := RepeatRatio{Mode: mode, Plays: len(current), HasData: len(current) > 0}

	var ranked []RepeatEntry
	singles := 0
	if mode == RepeatArtists {
		for _, b := range aggregate.GroupBy(current, aggregate.ByArtist).Ranked() {
			ranked = append(ranked, RepeatEntry{Name: b.Key, Plays: b.Count})
		}
	} else {
		for _, b := range aggregate.GroupBy(current, aggregate.ByTrack).Ranked() {
			ranked = append(ranked, RepeatEntry{Name: b.Key.Track, Artist: b.Key.Artist, Plays: b.Count})
		}
	}

	out.Unique = len(ranked)
	out.RepeatPlays = out.Plays - out.Unique
	out.Ratio = compare.Percent(out.RepeatPlays, out.Plays)
	for _, r := range ranked {
		if r.Plays == 1 {
			singles++
		} else if len(out.TopRepeats) < TopRepeatsShown {
			out.TopRepeats = append(out.TopRepeats, r)
		}
	}
	out.Exploration = compare.Percent(singles, out.Unique)
	if out.HasData {
		out.Familiarity = 100 - out.Exploration
	}
	return out
}
