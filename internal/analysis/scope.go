package analysis

import (
	"math"
	"time"

	"github.com/ademuri/listening-stats/internal/playback"
	"github.com/ademuri/listening-stats/internal/timerange"
)

// Scope carries the parameters shared by every view: the selected range, the
// reference time and the zone used for calendar bucketing.
type Scope struct {
	Range    timerange.Range
	Now      time.Time
	Location *time.Location
}

func (s Scope) rng() timerange.Range {
	if s.Range == "" {
		return timerange.DefaultRange
	}
	return s.Range
}

func (s Scope) loc() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

// Current returns the events in the selected range.
func (s Scope) Current(events []playback.PlayEvent) []playback.PlayEvent {
	return timerange.Filter(events, s.rng(), s.Now)
}

// Previous returns the events of the equal-length period before the selected
// range. ok is false for the "all" range.
func (s Scope) Previous(events []playback.PlayEvent) ([]playback.PlayEvent, bool) {
	return timerange.FilterPrevious(events, s.rng(), s.Now)
}

func (s Scope) Label() string {
	return s.rng().Label()
}

// totalDuration sums DurationMs.
func totalDuration(events []playback.PlayEvent) int64 {
	var ms int64
	for _, e := range events {
		ms += e.DurationMs
	}
	return ms
}

// listenedMinutes applies the engagement factor to a duration and rounds to
// whole minutes.
func listenedMinutes(ms int64) int {
	return int(math.Round(float64(ms) * playback.EngagementFactor / 60000))
}

func uniqueArtists(events []playback.PlayEvent) int {
	seen := make(map[string]struct{})
	for _, e := range events {
		seen[e.ArtistName] = struct{}{}
	}
	return len(seen)
}
