// Package timerange narrows play events to one of the supported lookback
// windows and computes the equal-length previous window for comparisons.
package timerange

import (
	"errors"
	"fmt"
	"time"

	"github.com/ademuri/listening-stats/internal/playback"
)

// Range is a named lookback window.
type Range string

const (
	Week     Range = "7d"
	Month    Range = "1m"
	Quarter  Range = "3m"
	HalfYear Range = "6m"
	Year     Range = "1y"
	All      Range = "all"

	DefaultRange = Month
)

const Day = 24 * time.Hour

var ErrUnknownRange = errors.New("unknown time range")

var rangeDays = map[Range]int{
	Week:     7,
	Month:    30,
	Quarter:  90,
	HalfYear: 180,
	Year:     365,
}

var rangeLabels = map[Range]string{
	Week:     "Last 7 Days",
	Month:    "Last Month",
	Quarter:  "3 Months",
	HalfYear: "6 Months",
	Year:     "1 Year",
	All:      "All Time",
}

// Ranges lists every supported token, shortest first.
func Ranges() []Range {
	return []Range{Week, Month, Quarter, HalfYear, Year, All}
}

// Parse validates a range token.
func Parse(token string) (Range, error) {
	r := Range(token)
	if _, ok := rangeLabels[r]; !ok {
		return "", fmt.Errorf("%w: %q (expected one of 7d, 1m, 3m, 6m, 1y, all)", ErrUnknownRange, token)
	}
	return r, nil
}

// Days returns the window length in days. ok is false for All.
func (r Range) Days() (days int, ok bool) {
	days, ok = rangeDays[r]
	return
}

func (r Range) Bounded() bool {
	_, ok := rangeDays[r]
	return ok
}

func (r Range) Duration() time.Duration {
	days, _ := r.Days()
	return time.Duration(days) * Day
}

func (r Range) Label() string {
	if l, ok := rangeLabels[r]; ok {
		return l
	}
	return string(r)
}

// Window is a span of time. The lower bound is always inclusive; the upper
// bound is inclusive for current windows and exclusive for previous ones.
// A zero Start means unbounded below.
type Window struct {
	Start        time.Time
	End          time.Time
	EndInclusive bool
}

func (w Window) Contains(t time.Time) bool {
	if !w.Start.IsZero() && t.Before(w.Start) {
		return false
	}
	if w.EndInclusive {
		return !t.After(w.End)
	}
	return t.Before(w.End)
}

// Filter returns the events inside w, preserving order.
func (w Window) Filter(events []playback.PlayEvent) []playback.PlayEvent {
	out := make([]playback.PlayEvent, 0, len(events))
	for _, e := range events {
		if w.Contains(e.PlayedAt) {
			out = append(out, e)
		}
	}
	return out
}

// Current returns [now - days, now].
func (r Range) Current(now time.Time) Window {
	w := Window{End: now, EndInclusive: true}
	if r.Bounded() {
		w.Start = now.Add(-r.Duration())
	}
	return w
}

// Previous returns [now - 2*days, now - days). ok is false for All, which has
// no previous period.
func (r Range) Previous(now time.Time) (Window, bool) {
	if !r.Bounded() {
		return Window{}, false
	}
	d := r.Duration()
	return Window{Start: now.Add(-2 * d), End: now.Add(-d)}, true
}

// Filter narrows events to the current window of r.
func Filter(events []playback.PlayEvent, r Range, now time.Time) []playback.PlayEvent {
	return r.Current(now).Filter(events)
}

// FilterPrevious narrows events to the previous window of r. It returns nil
// and false for All.
func FilterPrevious(events []playback.PlayEvent, r Range, now time.Time) ([]playback.PlayEvent, bool) {
	w, ok := r.Previous(now)
	if !ok {
		return nil, false
	}
	return w.Filter(events), true
}

// Last returns the window covering the d before now, inclusive of now.
func Last(d time.Duration, now time.Time) Window {
	return Window{Start: now.Add(-d), End: now, EndInclusive: true}
}

// Between returns the half-open window [start, end).
func Between(start, end time.Time) Window {
	return Window{Start: start, End: end}
}
