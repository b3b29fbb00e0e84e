package stats

import (
	"math"
	"time"

	"github.com/ademuri/listening-stats/internal/aggregate"
	"github.com/ademuri/listening-stats/internal/compare"
	"github.com/ademuri/listening-stats/internal/playback"
)

// DayCount is the number of plays on one calendar date.
type DayCount struct {
	Date       string `yaml:"date"`
	Count      int    `yaml:"count"`
	DurationMs int64  `yaml:"-"`
}

// Daily returns the per-date play counts of events in loc, ordered by date.
// Only dates with plays are included. Durations use the fallback for plays
// without one.
func Daily(events []playback.PlayEvent, loc *time.Location) []DayCount {
	g := aggregate.GroupBy(playback.Sorted(events), aggregate.ByDate(loc), aggregate.WithFallbackDuration())
	out := make([]DayCount, 0, g.Len())
	for _, b := range g.Buckets() {
		out = append(out, DayCount{Date: b.Key, Count: b.Count, DurationMs: b.DurationMs})
	}
	return out
}

func counts(days []DayCount) []float64 {
	out := make([]float64, len(days))
	for i, d := range days {
		out[i] = float64(d.Count)
	}
	return out
}

// civil maps t to midnight UTC of its calendar date in loc, so whole-day
// arithmetic ignores DST shifts.
func civil(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween counts calendar days from a to b in loc.
func DaysBetween(a, b time.Time, loc *time.Location) int {
	return int(math.Round(civil(b, loc).Sub(civil(a, loc)).Hours() / 24))
}

// Consistency measures how regularly plays happen over the observed span.
type Consistency struct {
	ActiveDays int
	TotalDays  int

	// Percent is ActiveDays / TotalDays * 100, in [0, 100].
	Percent float64

	// Daily holds the summary of per-day counts over active days.
	Daily Summary
	Valid bool
}

// MeasureConsistency computes the consistency score and the variation of the
// daily counts. The span runs from the first to the last date with plays,
// inclusive.
func MeasureConsistency(events []playback.PlayEvent, loc *time.Location) Consistency {
	if len(events) == 0 {
		return Consistency{}
	}
	days := Daily(events, loc)
	sorted := playback.Sorted(events)
	total := DaysBetween(sorted[0].PlayedAt, sorted[len(sorted)-1].PlayedAt, loc) + 1

	return Consistency{
		ActiveDays: len(days),
		TotalDays:  total,
		Percent:    math.Min(100, float64(len(days))/float64(total)*100),
		Daily:      Describe(counts(days)),
		Valid:      true,
	}
}

// CurrentStreak counts consecutive days with plays, walking back from the
// calendar date of now. It is 0 when there were no plays today.
func CurrentStreak(events []playback.PlayEvent, now time.Time, loc *time.Location) int {
	active := make(map[string]bool)
	for _, d := range Daily(events, loc) {
		active[d.Date] = true
	}
	streak := 0
	day := now.In(loc)
	for active[day.Format(aggregate.DateLayout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// LongestStreak is the longest run of consecutive active days.
func LongestStreak(events []playback.PlayEvent, loc *time.Location) int {
	days := Daily(events, loc)
	longest, run := 0, 0
	var prev time.Time
	for i, d := range days {
		t, _ := time.Parse(aggregate.DateLayout, d.Date)
		if i > 0 && t.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
		prev = t
	}
	return longest
}

// Velocity summarises daily play counts and their recent trend.
type Velocity struct {
	Daily   []DayCount
	Average float64
	Max     int
	Min     int

	// Last7 and Prev7 average the last seven active days and the seven
	// before them.
	Last7 float64
	Prev7 float64
	Trend int

	// LowZone and HighZone bound "normal" days around the average.
	LowZone  float64
	HighZone float64
	Valid    bool
}

// MeasureVelocity computes daily velocity statistics over active days.
func MeasureVelocity(events []playback.PlayEvent, loc *time.Location) Velocity {
	days := Daily(events, loc)
	if len(days) == 0 {
		return Velocity{}
	}
	s := Describe(counts(days))

	last := days[max(0, len(days)-7):]
	prev := days[max(0, len(days)-14):max(0, len(days)-7)]
	v := Velocity{
		Daily:    days,
		Average:  s.Mean,
		Max:      int(s.Max),
		Min:      int(s.Min),
		Last7:    Describe(counts(last)).Mean,
		Prev7:    Describe(counts(prev)).Mean,
		LowZone:  s.Mean * 0.7,
		HighZone: s.Mean * 1.3,
		Valid:    true,
	}
	v.Trend = compare.PercentChange(v.Last7, v.Prev7)
	return v
}
