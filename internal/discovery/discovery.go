// Package discovery tracks when each artist or track was first played, and
// which artist held the top spot over consecutive periods.
package discovery

import (
	"sort"
	"time"

	"github.com/ademuri/listening-stats/internal/aggregate"
	"github.com/ademuri/listening-stats/internal/compare"
	"github.com/ademuri/listening-stats/internal/playback"
)

// Record is the first play of an entity.
type Record[K comparable] struct {
	Key       K
	FirstSeen time.Time
}

// FirstSeen returns one record per distinct key holding its earliest play,
// oldest first. Pass the full history, not a filtered window.
func FirstSeen[K comparable](events []playback.PlayEvent, key aggregate.KeyFunc[K]) []Record[K] {
	first := make(map[K]time.Time)
	var order []K
	for _, e := range events {
		k := key(e)
		seen, ok := first[k]
		if !ok {
			order = append(order, k)
		}
		if !ok || e.PlayedAt.Before(seen) {
			first[k] = e.PlayedAt
		}
	}

	records := make([]Record[K], len(order))
	for i, k := range order {
		records[i] = Record[K]{Key: k, FirstSeen: first[k]}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].FirstSeen.Before(records[j].FirstSeen)
	})
	return records
}

// SeenBy returns the records first seen at or before t. records must be
// ordered by FirstSeen, as FirstSeen returns them.
func SeenBy[K comparable](records []Record[K], t time.Time) []Record[K] {
	n := sort.Search(len(records), func(i int) bool {
		return records[i].FirstSeen.After(t)
	})
	return records[:n]
}

// DiscoveredBy counts the entities first seen at or before t.
func DiscoveredBy[K comparable](records []Record[K], t time.Time) int {
	return len(DiscoveredSet(records, t))
}

// DiscoveredSet returns the keys first seen at or before t.
func DiscoveredSet[K comparable](records []Record[K], t time.Time) map[K]struct{} {
	out := make(map[K]struct{})
	for _, r := range records {
		if !r.FirstSeen.After(t) {
			out[r.Key] = struct{}{}
		}
	}
	return out
}

// MonthCount is the number of discoveries in one calendar month.
type MonthCount struct {
	Month string `yaml:"month"`
	Count int    `yaml:"count"`
}

// DefaultTimelineMonths is how many months the discovery timeline shows.
const DefaultTimelineMonths = 6

// Timeline buckets first-seen times by month in loc and returns the last
// months months that had discoveries, oldest first.
func Timeline[K comparable](records []Record[K], loc *time.Location, months int) []MonthCount {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.FirstSeen.In(loc).Format("2006-01")]++
	}
	out := make([]MonthCount, 0, len(counts))
	for m, c := range counts {
		out = append(out, MonthCount{Month: m, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	if months > 0 && len(out) > months {
		out = out[len(out)-months:]
	}
	return out
}

// Trend compares discoveries in the last 30 days with the 30 days before.
type Trend struct {
	Recent   int `yaml:"recent"`
	Previous int `yaml:"previous"`
	Percent  int `yaml:"percent"`
}

const trendWindow = 30 * 24 * time.Hour

// RecentTrend counts first plays in [now-30d, now] and [now-60d, now-30d).
func RecentTrend[K comparable](records []Record[K], now time.Time) Trend {
	var t Trend
	for _, r := range records {
		age := now.Sub(r.FirstSeen)
		switch {
		case age < 0:
			// after now
		case age <= trendWindow:
			t.Recent++
		case age <= 2*trendWindow:
			t.Previous++
		}
	}
	t.Percent = compare.PercentChange(float64(t.Recent), float64(t.Previous))
	return t
}

// DailyRate is discoveries per day since the first record, counting at least
// one day.
func DailyRate[K comparable](records []Record[K], now time.Time) float64 {
	if len(records) == 0 {
		return 0
	}
	days := now.Sub(records[0].FirstSeen).Hours() / 24
	return float64(len(records)) / max(days, 1)
}
