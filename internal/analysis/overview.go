package analysis

import (
	"math"

	"github.com/ademuri/listening-stats/internal/compare"
	"github.com/ademuri/listening-stats/internal/playback"
)

// Overview is the headline summary of a range.
type Overview struct {
	Period        string `yaml:"period"`
	Plays         int    `yaml:"plays"`
	Hours         int    `yaml:"hours"`
	Minutes       int    `yaml:"minutes"`
	UniqueArtists int    `yaml:"unique_artists"`
	Diversity     int    `yaml:"diversity_score"`

	// Change is nil when the range has no previous period.
	Change *OverviewChange `yaml:"change,omitempty"`
}

// OverviewChange holds percent changes against the previous period.
type OverviewChange struct {
	Time      int `yaml:"time"`
	Plays     int `yaml:"plays"`
	Artists   int `yaml:"artists"`
	Diversity int `yaml:"diversity"`
}

// ListeningOverview summarises plays, listening time and diversity for the
// scope's range.
func ListeningOverview(events []playback.PlayEvent, s Scope) Overview {
	current := s.Current(events)
	listened := float64(totalDuration(current)) * playback.EngagementFactor
	o := Overview{
		Period:        s.Label(),
		Plays:         len(current),
		Hours:         int(listened / 3600000),
		Minutes:       int(math.Round(math.Mod(listened, 3600000) / 60000)),
		UniqueArtists: uniqueArtists(current),
	}
	o.Diversity = compare.DiversityScore(o.UniqueArtists, o.Plays)
	if o.Minutes == 60 {
		o.Hours++
		o.Minutes = 0
	}

	previous, ok := s.Previous(events)
	if !ok {
		return o
	}
	prevListened := float64(totalDuration(previous)) * playback.EngagementFactor
	prevArtists := uniqueArtists(previous)
	o.Change = &OverviewChange{
		Time:      compare.PercentChange(listened, prevListened),
		Plays:     compare.PercentChange(float64(o.Plays), float64(len(previous))),
		Artists:   compare.PercentChange(float64(o.UniqueArtists), float64(prevArtists)),
		Diversity: compare.PercentChange(float64(o.Diversity), float64(compare.DiversityScore(prevArtists, len(previous)))),
	}
	return o
}
