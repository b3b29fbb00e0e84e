package aggregate

import (
	"time"

	"github.com/ademuri/listening-stats/internal/playback"
)

// Period is a part of the day.
type Period string

const (
	Morning   Period = "Morning"
	Afternoon Period = "Afternoon"
	Evening   Period = "Evening"
	Night     Period = "Night"
)

// Periods lists the parts of the day starting with Morning.
func Periods() []Period {
	return []Period{Morning, Afternoon, Evening, Night}
}

// PeriodOf returns the part of the day for an hour. Night wraps midnight.
func PeriodOf(hour int) Period {
	switch {
	case hour >= 6 && hour < 12:
		return Morning
	case hour >= 12 && hour < 18:
		return Afternoon
	case hour >= 18 && hour < 22:
		return Evening
	}
	return Night
}

// Hours returns the display range of a period, e.g. "6:00 - 12:00".
func (p Period) Hours() string {
	switch p {
	case Morning:
		return "6:00 - 12:00"
	case Afternoon:
		return "12:00 - 18:00"
	case Evening:
		return "18:00 - 22:00"
	}
	return "22:00 - 6:00"
}

func ByPeriod(loc *time.Location) KeyFunc[Period] {
	return func(e playback.PlayEvent) Period { return PeriodOf(e.PlayedAt.In(loc).Hour()) }
}

// Hourly counts events per hour of the day.
func Hourly(events []playback.PlayEvent, loc *time.Location) [24]int {
	var out [24]int
	for _, b := range GroupBy(events, ByHour(loc)).Buckets() {
		out[b.Key] = b.Count
	}
	return out
}

// WeekdayTotals counts events per weekday, indexed by time.Weekday. The counts
// always sum to len(events).
func WeekdayTotals(events []playback.PlayEvent, loc *time.Location) [7]int {
	var out [7]int
	for _, b := range GroupBy(events, ByWeekday(loc)).Buckets() {
		out[b.Key] = b.Count
	}
	return out
}

type dayHour struct {
	day  time.Weekday
	hour int
}

// Heatmap counts events per weekday and hour.
func Heatmap(events []playback.PlayEvent, loc *time.Location) [7][24]int {
	var out [7][24]int
	g := GroupBy(events, func(e playback.PlayEvent) dayHour {
		t := e.PlayedAt.In(loc)
		return dayHour{t.Weekday(), t.Hour()}
	})
	for _, b := range g.Buckets() {
		out[b.Key.day][b.Key.hour] = b.Count
	}
	return out
}

// Cell addresses one weekday/slot pair of a Rhythm grid.
type Cell struct {
	Day  time.Weekday `yaml:"day"`
	Slot int          `yaml:"slot"`
}

// SlotLabel formats the slot start, e.g. "14:30".
func (c Cell) SlotLabel() string {
	return SlotLabel(c.Slot)
}

func SlotLabel(slot int) string {
	return time.Date(0, 1, 1, slot/2, (slot%2)*30, 0, 0, time.UTC).Format("15:04")
}

// Rhythm is a weekday by half-hour grid.
type Rhythm struct {
	Counts [7][SlotsPerDay]int

	// Occurrences is the number of distinct dates that had at least one play
	// in the cell.
	Occurrences [7][SlotsPerDay]int

	Peak      Cell
	PeakCount int
	HasPeak   bool
}

// RhythmGrid builds the weekday by half-hour grid. The peak is the first
// cell with the highest count, scanning Sunday first.
func RhythmGrid(events []playback.PlayEvent, loc *time.Location) Rhythm {
	var r Rhythm
	g := GroupBy(events, func(e playback.PlayEvent) Cell {
		t := e.PlayedAt.In(loc)
		return Cell{t.Weekday(), Slot(t)}
	}, WithDistinct(DistinctDate(loc)))

	for _, b := range g.Buckets() {
		r.Counts[b.Key.Day][b.Key.Slot] = b.Count
		r.Occurrences[b.Key.Day][b.Key.Slot] = b.Unique()
	}
	for d := range r.Counts {
		for s, c := range r.Counts[d] {
			if c > r.PeakCount {
				r.Peak = Cell{time.Weekday(d), s}
				r.PeakCount = c
				r.HasPeak = true
			}
		}
	}
	return r
}

// LengthBucket counts tracks by duration in [MinSec, MaxSec). A zero MaxSec
// means no upper bound.
type LengthBucket struct {
	Label  string `yaml:"label"`
	MinSec int64  `yaml:"-"`
	MaxSec int64  `yaml:"-"`
	Count  int    `yaml:"count"`
}

// TrackLengthEdges are the track duration buckets.
func TrackLengthEdges() []LengthBucket {
	return []LengthBucket{
		{Label: "<2 min", MinSec: 0, MaxSec: 120},
		{Label: "2-3 min", MinSec: 120, MaxSec: 180},
		{Label: "3-4 min", MinSec: 180, MaxSec: 240},
		{Label: "4-5 min", MinSec: 240, MaxSec: 300},
		{Label: "5-6 min", MinSec: 300, MaxSec: 360},
		{Label: ">6 min", MinSec: 360},
	}
}

// TrackLengths counts each play into the duration buckets. Plays without a
// duration are ignored.
func TrackLengths(events []playback.PlayEvent) []LengthBucket {
	buckets := TrackLengthEdges()
	for _, e := range events {
		if e.DurationMs <= 0 {
			continue
		}
		sec := e.DurationMs / 1000
		for i := range buckets {
			if sec >= buckets[i].MinSec && (buckets[i].MaxSec == 0 || sec < buckets[i].MaxSec) {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}
