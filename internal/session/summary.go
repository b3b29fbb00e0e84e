package session

import (
	"math"
	"time"

	"github.com/ademuri/listening-stats/internal/aggregate"
	"github.com/ademuri/listening-stats/internal/playback"
	"github.com/ademuri/listening-stats/internal/stats"
)

// LengthBucket counts sessions whose duration falls in [Min, Max). A zero Max
// means no upper bound.
type LengthBucket struct {
	Label string        `yaml:"label"`
	Min   time.Duration `yaml:"-"`
	Max   time.Duration `yaml:"-"`
	Count int           `yaml:"count"`
}

func (b LengthBucket) contains(d time.Duration) bool {
	return d >= b.Min && (b.Max == 0 || d < b.Max)
}

// LengthEdges are the buckets of the session length analysis.
func LengthEdges() []LengthBucket {
	return []LengthBucket{
		{Label: "<15m", Min: 0, Max: 15 * time.Minute},
		{Label: "15-30m", Min: 15 * time.Minute, Max: 30 * time.Minute},
		{Label: "30-60m", Min: 30 * time.Minute, Max: time.Hour},
		{Label: "1-2h", Min: time.Hour, Max: 2 * time.Hour},
		{Label: "2-4h", Min: 2 * time.Hour, Max: 4 * time.Hour},
		{Label: ">4h", Min: 4 * time.Hour},
	}
}

// DeepDiveEdges are the coarser buckets used next to marathon detection.
func DeepDiveEdges() []LengthBucket {
	return []LengthBucket{
		{Label: "<15min", Min: 0, Max: 15 * time.Minute},
		{Label: "15-30min", Min: 15 * time.Minute, Max: 30 * time.Minute},
		{Label: "30-60min", Min: 30 * time.Minute, Max: time.Hour},
		{Label: "1-2hrs", Min: time.Hour, Max: 2 * time.Hour},
		{Label: "2hrs+", Min: 2 * time.Hour},
	}
}

// Histogram counts sessions into a fresh copy of edges.
func Histogram(sessions []Session, edges []LengthBucket) []LengthBucket {
	buckets := make([]LengthBucket, len(edges))
	copy(buckets, edges)
	for _, s := range sessions {
		d := s.Duration()
		for i := range buckets {
			if buckets[i].contains(d) {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}

// Summary describes a set of sessions. Averages are only meaningful when
// Count > 0.
type Summary struct {
	Count          int
	Average        time.Duration
	Median         time.Duration
	Longest        Session
	MarathonCount  int
	PeakStartHour  int
	HasPeakHour    bool
	TopMarathoner  string
	MarathonTracks int
}

// Summarize computes session statistics in loc (used for start hours).
func Summarize(sessions []Session, loc *time.Location) Summary {
	sum := Summary{Count: len(sessions)}
	if len(sessions) == 0 {
		return sum
	}

	durations := make([]float64, len(sessions))
	var marathonEvents []playback.PlayEvent
	for i, s := range sessions {
		durations[i] = float64(s.DurationMs)
		if s.DurationMs > sum.Longest.DurationMs || i == 0 {
			sum.Longest = s
		}
		if s.IsMarathon() {
			sum.MarathonCount++
			marathonEvents = append(marathonEvents, s.Events...)
		}
	}

	d := stats.Describe(durations)
	sum.Average = msDuration(d.Mean)
	sum.Median = msDuration(d.Median)

	starts := aggregate.GroupBy(sessionStarts(sessions), aggregate.ByHour(loc)).Ranked()
	if len(starts) > 0 {
		sum.PeakStartHour = starts[0].Key
		sum.HasPeakHour = true
	}

	if top := aggregate.GroupBy(marathonEvents, aggregate.ByArtist).Ranked(); len(top) > 0 {
		sum.TopMarathoner = top[0].Key
		sum.MarathonTracks = len(marathonEvents)
	}

	return sum
}

// sessionStarts returns one synthetic event per session so the hour grouping
// can be reused on start times.
func sessionStarts(sessions []Session) []playback.PlayEvent {
	out := make([]playback.PlayEvent, len(sessions))
	for i, s := range sessions {
		out[i] = s.Events[0]
	}
	return out
}

func msDuration(ms float64) time.Duration {
	return time.Duration(math.Round(ms)) * time.Millisecond
}
