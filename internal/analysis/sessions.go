package analysis

import (
	"math"
	"time"

	"github.com/ademuri/listening-stats/internal/aggregate"
	"github.com/ademuri/listening-stats/internal/compare"
	"github.com/ademuri/listening-stats/internal/playback"
	"github.com/ademuri/listening-stats/internal/session"
	"github.com/ademuri/listening-stats/internal/stats"
)

func minutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}

type LongestSession struct {
	Start   time.Time `yaml:"start"`
	Minutes int       `yaml:"minutes"`
	Plays   int       `yaml:"plays"`
	Artists []string  `yaml:"artists"`
}

type DeepDive struct {
	Sessions       int                    `yaml:"sessions"`
	Marathons      int                    `yaml:"marathons"`
	AverageMinutes int                    `yaml:"average_minutes"`
	Longest        *LongestSession        `yaml:"longest,omitempty"`
	PeakStartHour  string                 `yaml:"peak_start_hour,omitempty"`
	TopMarathoner  string                 `yaml:"top_marathon_artist,omitempty"`
	Buckets        []session.LengthBucket `yaml:"buckets"`
}

// DeepDiveSessions reconstructs sessions in range and highlights marathons.
func DeepDiveSessions(events []playback.PlayEvent, s Scope) DeepDive {
	sessions := session.Segment(s.Current(events))
	sum := session.Summarize(sessions, s.loc())

	out := DeepDive{
		Sessions:       sum.Count,
		Marathons:      sum.MarathonCount,
		AverageMinutes: minutes(sum.Average),
		TopMarathoner:  sum.TopMarathoner,
		Buckets:        session.Histogram(sessions, session.DeepDiveEdges()),
	}
	if sum.Count > 0 {
		out.Longest = &LongestSession{
			Start:   sum.Longest.Start.In(s.loc()),
			Minutes: minutes(sum.Longest.Duration()),
			Plays:   len(sum.Longest.Events),
			Artists: sum.Longest.ArtistNames(),
		}
	}
	if sum.HasPeakHour {
		out.PeakStartHour = FormatHour(sum.PeakStartHour)
	}
	return out
}

type SessionLengths struct {
	Sessions       int                    `yaml:"sessions"`
	AverageMinutes int                    `yaml:"average_minutes"`
	MedianMinutes  int                    `yaml:"median_minutes"`
	TotalMinutes   int                    `yaml:"total_minutes"`
	Buckets        []session.LengthBucket `yaml:"buckets"`
}

// SessionLengthAnalysis buckets sessions in range by length.
func SessionLengthAnalysis(events []playback.PlayEvent, s Scope) SessionLengths {
	sessions := session.Segment(s.Current(events))
	sum := session.Summarize(sessions, s.loc())

	var total time.Duration
	for _, ss := range sessions {
		total += ss.Duration()
	}
	return SessionLengths{
		Sessions:       sum.Count,
		AverageMinutes: minutes(sum.Average),
		MedianMinutes:  minutes(sum.Median),
		TotalMinutes:   minutes(total),
		Buckets:        session.Histogram(sessions, session.LengthEdges()),
	}
}

type Trait struct {
	Name        string `yaml:"name"`
	Score       int    `yaml:"score"`
	Description string `yaml:"description"`
}

type Personality struct {
	Session     Trait `yaml:"session"`
	Consistency Trait `yaml:"consistency"`
	Weekend     Trait `yaml:"weekend"`
	TimeOfDay   Trait `yaml:"time_of_day"`
	HasData     bool  `yaml:"has_data"`
}

// ListeningPersonality scores four listening traits in range.
func ListeningPersonality(events []playback.PlayEvent, s Scope) Personality {
	current := s.Current(events)
	if len(current) == 0 {
		return Personality{}
	}
	loc := s.loc()
	p := Personality{HasData: true}

	avg := session.Summarize(session.Segment(current), loc).Average.Minutes()
	p.Session = Trait{Name: "Quick Sessions", Description: "You listen in short, focused bursts"}
	if avg > 45 {
		p.Session = Trait{Name: "Marathon Listener", Description: "You prefer long, immersive listening sessions"}
	}
	p.Session.Score = int(math.Round(math.Min(100, avg/60*100)))

	c := stats.MeasureConsistency(current, loc)
	p.Consistency = Trait{Name: "Spontaneous Explorer", Description: "Your listening habits are spontaneous"}
	if c.Percent > 70 {
		p.Consistency = Trait{Name: "Routine Creature", Description: "You listen regularly and consistently"}
	}
	p.Consistency.Score = int(math.Round(c.Percent))

	days := aggregate.WeekdayTotals(current, loc)
	weekendScore := compare.Percent(days[time.Saturday]+days[time.Sunday], len(current))
	p.Weekend = Trait{Name: "Weekday Grinder", Description: "You listen more during the week"}
	if weekendScore > 40 {
		p.Weekend = Trait{Name: "Weekend Warrior", Description: "Weekends are your prime listening time"}
	}
	p.Weekend.Score = weekendScore

	periods := aggregate.GroupBy(current, aggregate.ByPeriod(loc))
	lateNight, morning := periods.Count(aggregate.Night), periods.Count(aggregate.Morning)
	p.TimeOfDay = Trait{Name: "Morning Person", Description: "You prefer listening in the morning"}
	if lateNight > morning {
		p.TimeOfDay = Trait{Name: "Night Owl", Description: "Your peak listening is late night"}
	}
	p.TimeOfDay.Score = compare.Percent(lateNight, len(current))
	return p
}
