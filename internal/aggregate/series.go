package aggregate

import (
	"time"

	"github.com/ademuri/listening-stats/internal/playback"
)

const week = 7 * 24 * time.Hour

// WeeksBefore returns how many whole weeks t lies before now. It is negative
// for times after now.
func WeeksBefore(t, now time.Time) int {
	d := now.Sub(t)
	if d < 0 {
		return -1
	}
	return int(d / week)
}

// Weekly counts the plays of each of keys per week over the last weeks weeks.
// Series are oldest first, so the last element is the current week.
func Weekly[K comparable](events []playback.PlayEvent, key KeyFunc[K], keys []K, now time.Time, weeks int) map[K][]int {
	series := make(map[K][]int, len(keys))
	for _, k := range keys {
		series[k] = make([]int, weeks)
	}
	for _, e := range events {
		s, ok := series[key(e)]
		if !ok {
			continue
		}
		idx := WeeksBefore(e.PlayedAt, now)
		if idx < 0 || idx >= weeks {
			continue
		}
		s[weeks-1-idx]++
	}
	return series
}
