package analysis

import (
	"fmt"

	"github.com/ademuri/listening-stats/internal/aggregate"
	"github.com/ademuri/listening-stats/internal/compare"
	"github.com/ademuri/listening-stats/internal/playback"
)

type PeriodShare struct {
	Period   aggregate.Period `yaml:"period"`
	Hours    string           `yaml:"hours"`
	Plays    int              `yaml:"plays"`
	Unique   int              `yaml:"unique_tracks"`
	// Previous, Change and Percent are nil when the range has no previous
	// period.
	Previous *int `yaml:"previous,omitempty"`
	Change   *int `yaml:"change,omitempty"`
	Percent  *int `yaml:"change_percent,omitempty"`
}

type TimeOfDay struct {
	Periods     []PeriodShare `yaml:"periods"`
	Insight     string        `yaml:"insight"`
	HasPrevious bool          `yaml:"has_previous"`
}

const noTimeOfDayData = "Insufficient data for temporal pattern analysis in selected period"

// TimeOfDayDistribution splits plays in range across the four parts of the
// day and describes the most notable shift against the previous period.
func TimeOfDayDistribution(events []playback.PlayEvent, s Scope) TimeOfDay {
	current := s.Current(events)
	previous, hasPrevious := s.Previous(events)

	cur := aggregate.GroupBy(current, aggregate.ByPeriod(s.loc()), aggregate.WithDistinct(aggregate.TrackID))
	prev := aggregate.GroupBy(previous, aggregate.ByPeriod(s.loc()))

	out := TimeOfDay{HasPrevious: hasPrevious}
	for _, p := range aggregate.Periods() {
		b, _ := cur.Get(p)
		share := PeriodShare{
			Period: p,
			Hours:  p.Hours(),
			Plays:  b.Count,
			Unique: b.Unique(),
		}
		if hasPrevious {
			before := prev.Count(p)
			change := b.Count - before
			percent := compare.PercentChange(float64(b.Count), float64(before))
			share.Previous, share.Change, share.Percent = &before, &change, &percent
		}
		out.Periods = append(out.Periods, share)
	}
	out.Insight = timeOfDayInsight(out.Periods, len(current), hasPrevious)
	return out
}

func timeOfDayInsight(periods []PeriodShare, total int, hasPrevious bool) string {
	if total == 0 {
		return noTimeOfDayData
	}

	active, varied := periods[0], periods[0]
	for _, p := range periods[1:] {
		if p.Plays > active.Plays {
			active = p
		}
		if p.Unique > varied.Unique {
			varied = p
		}
	}

	if hasPrevious {
		increase, decrease := periods[0], periods[0]
		for _, p := range periods[1:] {
			if *p.Change > *increase.Change {
				increase = p
			}
			if *p.Change < *decrease.Change {
				decrease = p
			}
		}
		switch {
		case *increase.Change > 10 && *increase.Percent > 20:
			return fmt.Sprintf("%s period demonstrates strongest growth with +%d track increase (+%d%%) versus previous period baseline",
				increase.Period, *increase.Change, *increase.Percent)
		case *decrease.Change < -10 && *decrease.Percent < -20:
			return fmt.Sprintf("%s period shows significant volume reduction with %d track decrease (%d%%) versus previous period baseline",
				decrease.Period, *decrease.Change, *decrease.Percent)
		}
	}

	switch {
	case varied.Unique == active.Unique:
		return fmt.Sprintf("%s period exhibits highest engagement density with %d total tracks (%d unique content items)",
			active.Period, active.Plays, active.Unique)
	}
	return fmt.Sprintf("%s period accounts for %d%% of total listening activity (%d tracks), establishing dominant temporal pattern",
		active.Period, compare.Percent(active.Plays, total), active.Plays)
}
