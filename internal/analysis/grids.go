package analysis

import (
	"github.com/ademuri/listening-stats/internal/aggregate"
	"github.com/ademuri/listening-stats/internal/playback"
)

// Heatmap counts plays by weekday (Sunday first) and hour.
type Heatmap struct {
	Cells [7][24]int `yaml:"cells,flow"`
	Max   int        `yaml:"max"`
}

// ListeningHeatmap builds the weekday by hour grid for the scope's range.
func ListeningHeatmap(events []playback.PlayEvent, s Scope) Heatmap {
	h := Heatmap{Cells: aggregate.Heatmap(s.Current(events), s.loc())}
	for _, row := range h.Cells {
		for _, n := range row {
			h.Max = max(h.Max, n)
		}
	}
	return h
}

type Rhythm struct {
	Counts      [7][aggregate.SlotsPerDay]int `yaml:"counts,flow"`
	Occurrences [7][aggregate.SlotsPerDay]int `yaml:"occurrences,flow"`
	Peak        *RhythmPeak                   `yaml:"peak,omitempty"`
}

type RhythmPeak struct {
	Day   string `yaml:"day"`
	Time  string `yaml:"time"`
	Plays int    `yaml:"plays"`

	// Days is the number of distinct dates with plays in the peak slot.
	Days int `yaml:"days"`
}

// ListeningRhythm builds the weekday by half-hour grid for the scope's range.
func ListeningRhythm(events []playback.PlayEvent, s Scope) Rhythm {
	grid := aggregate.RhythmGrid(s.Current(events), s.loc())
	r := Rhythm{Counts: grid.Counts, Occurrences: grid.Occurrences}
	if grid.HasPeak {
		r.Peak = &RhythmPeak{
			Day:   grid.Peak.Day.String(),
			Time:  grid.Peak.SlotLabel(),
			Plays: grid.PeakCount,
			Days:  grid.Occurrences[grid.Peak.Day][grid.Peak.Slot],
		}
	}
	return r
}
