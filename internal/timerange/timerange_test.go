package timerange

import (
	"errors"
	"testing"
	"time"

	"github.com/ademuri/listening-stats/internal/playback"
)

var now = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

func at(d time.Duration) playback.PlayEvent {
	return playback.PlayEvent{PlayedAt: now.Add(-d), TrackName: "t", ArtistName: "a"}
}

func TestParse(t *testing.T) {
	for _, token := range []string{"7d", "1m", "3m", "6m", "1y", "all"} {
		r, err := Parse(token)
		if err != nil {
			t.Errorf("Parse(%q): %v", token, err)
		}
		if string(r) != token {
			t.Errorf("Parse(%q) = %q", token, r)
		}
	}

	_, err := Parse("2w")
	if !errors.Is(err, ErrUnknownRange) {
		t.Errorf("Parse(2w) error = %v, want ErrUnknownRange", err)
	}
}

func TestDays(t *testing.T) {
	want := map[Range]int{Week: 7, Month: 30, Quarter: 90, HalfYear: 180, Year: 365}
	for r, days := range want {
		got, ok := r.Days()
		if !ok || got != days {
			t.Errorf("%s.Days() = %d, %v; want %d", r, got, ok, days)
		}
	}
	if _, ok := All.Days(); ok {
		t.Errorf("All should be unbounded")
	}
}

func TestFilterBounds(t *testing.T) {
	events := []playback.PlayEvent{
		at(0),                   // exactly now: included
		at(-time.Second),        // in the future: excluded
		at(7 * Day),             // exactly on the lower bound: included
		at(7*Day + time.Second), // just outside
		at(10 * Day),            // previous period
		at(14 * Day),            // previous period lower bound: included
		at(15 * Day),            // outside both
	}

	current := Filter(events, Week, now)
	if len(current) != 2 {
		t.Errorf("expected 2 current events, got %d", len(current))
	}
	w := Week.Current(now)
	for _, e := range current {
		if !w.Contains(e.PlayedAt) {
			t.Errorf("event %v outside window", e.PlayedAt)
		}
	}

	previous, ok := FilterPrevious(events, Week, now)
	if !ok {
		t.Fatalf("expected a previous period for 7d")
	}
	// Upper bound of previous period (exactly 7 days ago) is exclusive.
	if len(previous) != 3 {
		t.Errorf("expected 3 previous events, got %d", len(previous))
	}
	for _, e := range previous {
		if e.PlayedAt.Equal(now.Add(-7 * Day)) {
			t.Errorf("previous period must exclude its upper bound")
		}
	}
}

func TestFilterAll(t *testing.T) {
	events := []playback.PlayEvent{at(1000 * Day), at(Day), at(-Day)}
	got := Filter(events, All, now)
	if len(got) != 2 {
		t.Errorf("All should keep everything up to now, got %d", len(got))
	}
	if _, ok := FilterPrevious(events, All, now); ok {
		t.Errorf("All has no previous period")
	}
}

func TestFilterNeverGrows(t *testing.T) {
	events := []playback.PlayEvent{at(Day), at(40 * Day), at(400 * Day)}
	for _, r := range Ranges() {
		if got := Filter(events, r, now); len(got) > len(events) {
			t.Errorf("%s: filtered %d > %d", r, len(got), len(events))
		}
	}
	if got := Filter(nil, Month, now); len(got) != 0 {
		t.Errorf("expected empty result for empty input")
	}
}
