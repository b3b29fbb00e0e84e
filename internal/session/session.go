// Package session reconstructs listening sessions from play events using a
// fixed inactivity gap.
package session

import (
	"sort"
	"time"

	"github.com/ademuri/listening-stats/internal/playback"
)

const (
	// Gap is the largest silence allowed between two plays of one session.
	Gap = 20 * time.Minute

	// MarathonThreshold is the summed duration above which a session is a
	// marathon.
	MarathonThreshold = 2 * time.Hour
)

// Session is a maximal run of plays with no gap longer than Gap.
type Session struct {
	Start   time.Time
	End     time.Time
	Events  []playback.PlayEvent
	Artists map[string]struct{}

	// DurationMs is the sum of member DurationMs.
	DurationMs int64
}

func (s Session) Duration() time.Duration {
	return time.Duration(s.DurationMs) * time.Millisecond
}

func (s Session) IsMarathon() bool {
	return s.Duration() > MarathonThreshold
}

// ArtistNames returns the distinct artists of the session, sorted.
func (s Session) ArtistNames() []string {
	names := make([]string, 0, len(s.Artists))
	for name := range s.Artists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Segment groups events into sessions. Input order does not matter: events
// are sorted by PlayedAt first. An empty input yields no sessions.
func Segment(events []playback.PlayEvent) []Session {
	if len(events) == 0 {
		return nil
	}
	sorted := playback.Sorted(events)

	var sessions []Session
	current := open(sorted[0])
	for i := 1; i < len(sorted); i++ {
		e := sorted[i]
		if e.PlayedAt.Sub(sorted[i-1].PlayedAt) > Gap {
			sessions = append(sessions, current)
			current = open(e)
			continue
		}
		current.add(e)
	}
	return append(sessions, current)
}

func open(e playback.PlayEvent) Session {
	s := Session{
		Start:   e.PlayedAt,
		Artists: make(map[string]struct{}),
	}
	s.add(e)
	return s
}

func (s *Session) add(e playback.PlayEvent) {
	s.Events = append(s.Events, e)
	s.End = e.PlayedAt
	s.DurationMs += e.DurationMs
	if e.ArtistName != "" {
		s.Artists[e.ArtistName] = struct{}{}
	}
}
