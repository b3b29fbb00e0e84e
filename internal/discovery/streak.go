package discovery

import (
	"time"

	"github.com/ademuri/listening-stats/internal/aggregate"
	"github.com/ademuri/listening-stats/internal/playback"
	"github.com/ademuri/listening-stats/internal/timerange"
)

// StreakPeriods is how many weeks or months a reign streak looks back.
const StreakPeriods = 12

// WeeklyPeriods returns n seven-day windows ending at now, most recent first:
// [now-(k+1)*7d, now-k*7d).
func WeeklyPeriods(now time.Time, n int) []timerange.Window {
	out := make([]timerange.Window, n)
	for k := range out {
		end := now.Add(-time.Duration(k) * 7 * timerange.Day)
		out[k] = timerange.Between(end.Add(-7*timerange.Day), end)
	}
	// The current week includes now itself.
	if n > 0 {
		out[0].EndInclusive = true
	}
	return out
}

// MonthlyPeriods returns n calendar months in loc, most recent first. The
// first is the month containing now, up to and including now.
func MonthlyPeriods(now time.Time, n int, loc *time.Location) []timerange.Window {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	out := make([]timerange.Window, n)
	for k := range out {
		from := start.AddDate(0, -k, 0)
		to := start.AddDate(0, -k+1, 0)
		out[k] = timerange.Between(from, to)
	}
	if n > 0 {
		out[0] = timerange.Window{Start: start, End: now, EndInclusive: true}
	}
	return out
}

// Reign is the leader of each period and how long the current leader has
// held on.
type Reign[K comparable] struct {
	// Leaders holds each period's top entity, most recent first. Found is
	// false for periods without plays.
	Leaders []Leader[K]

	// Streak counts consecutive periods from the most recent one led by the
	// same entity. It is 0 when the most recent period has no leader.
	Streak int
}

type Leader[K comparable] struct {
	Key   K
	Count int
	Found bool
}

// Current returns the most recent period's leader.
func (r Reign[K]) Current() (Leader[K], bool) {
	if len(r.Leaders) == 0 || !r.Leaders[0].Found {
		return Leader[K]{}, false
	}
	return r.Leaders[0], true
}

// ReignStreak finds the top entity of each period and measures the streak.
// A period with no plays has no leader and ends the streak.
func ReignStreak[K comparable](events []playback.PlayEvent, key aggregate.KeyFunc[K], periods []timerange.Window) Reign[K] {
	var r Reign[K]
	for _, p := range periods {
		var l Leader[K]
		if top := aggregate.GroupBy(p.Filter(events), key).Top(1); len(top) > 0 {
			l = Leader[K]{Key: top[0].Key, Count: top[0].Count, Found: true}
		}
		r.Leaders = append(r.Leaders, l)
	}

	current, ok := r.Current()
	if !ok {
		return r
	}
	for _, l := range r.Leaders {
		if !l.Found || l.Key != current.Key {
			break
		}
		r.Streak++
	}
	return r
}

// NewPerWeek counts, for each of the last weeks weeks (most recent first),
// the entities played that week but in none of the older weeks of the
// lookback. The oldest week counts all of its entities.
func NewPerWeek[K comparable](events []playback.PlayEvent, key aggregate.KeyFunc[K], now time.Time, weeks int) []int {
	sets := make([]map[K]struct{}, weeks)
	for i := range sets {
		sets[i] = make(map[K]struct{})
	}
	for _, e := range events {
		idx := aggregate.WeeksBefore(e.PlayedAt, now)
		if idx < 0 || idx >= weeks {
			continue
		}
		sets[idx][key(e)] = struct{}{}
	}

	out := make([]int, weeks)
	for i, set := range sets {
		for k := range set {
			heard := false
			for j := i + 1; j < weeks; j++ {
				if _, ok := sets[j][k]; ok {
					heard = true
					break
				}
			}
			if !heard {
				out[i]++
			}
		}
	}
	return out
}
