package playback

import (
	"slices"
	"sort"
	"time"
)

// Store holds the valid play events of one session in ascending PlayedAt
// order. It is populated once and never mutated afterwards.
type Store struct {
	events []PlayEvent
}

// NewStore copies the valid events (those with a non-zero PlayedAt), applies
// the text defaults and sorts them ascending. Ties keep input order.
func NewStore(events []PlayEvent) *Store {
	valid := make([]PlayEvent, 0, len(events))
	for _, e := range events {
		if e.PlayedAt.IsZero() {
			continue
		}
		valid = append(valid, e.withDefaults())
	}
	SortByTime(valid)
	return &Store{events: valid}
}

// Events returns a copy of the stored events, oldest first.
func (s *Store) Events() []PlayEvent {
	if s == nil {
		return nil
	}
	return slices.Clone(s.events)
}

func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.events)
}

// Span returns the first and last PlayedAt. ok is false for an empty store.
func (s *Store) Span() (first, last time.Time, ok bool) {
	if s.Len() == 0 {
		return time.Time{}, time.Time{}, false
	}
	return s.events[0].PlayedAt, s.events[len(s.events)-1].PlayedAt, true
}

// SortByTime sorts events ascending by PlayedAt in place, keeping the input
// order of equal timestamps.
func SortByTime(events []PlayEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].PlayedAt.Before(events[j].PlayedAt)
	})
}

// Sorted returns an ascending copy of events.
func Sorted(events []PlayEvent) []PlayEvent {
	out := slices.Clone(events)
	SortByTime(out)
	return out
}
