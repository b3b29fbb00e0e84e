package analysis

import (
	"fmt"

	"github.com/ademuri/listening-stats/internal/aggregate"
	"github.com/ademuri/listening-stats/internal/compare"
	"github.com/ademuri/listening-stats/internal/discovery"
	"github.com/ademuri/listening-stats/internal/playback"
	"github.com/ademuri/listening-stats/internal/timerange"
)

// DiscoveryMode selects the entity whose first plays are tracked.
type DiscoveryMode string

const (
	DiscoverArtists DiscoveryMode = "artists"
	DiscoverTracks  DiscoveryMode = "tracks"
)

func ParseDiscoveryMode(s string) (DiscoveryMode, error) {
	switch DiscoveryMode(s) {
	case DiscoverArtists, DiscoverTracks:
		return DiscoveryMode(s), nil
	}
	return "", fmt.Errorf("unknown discovery mode %q (expected artists or tracks)", s)
}

// MinDiscoveryHistoryDays is the history needed before rates are meaningful.
const MinDiscoveryHistoryDays = 30

type DiscoveryRate struct {
	Mode          DiscoveryMode          `yaml:"mode"`
	Total         int                    `yaml:"total"`
	InRange       int                    `yaml:"in_range"`
	DailyRate     float64                `yaml:"daily_rate"`
	Trend         discovery.Trend        `yaml:"last_30_days"`
	Timeline      []discovery.MonthCount `yaml:"timeline"`
	HistoryDays   int                    `yaml:"history_days"`
	HasEnoughData bool                   `yaml:"has_enough_data"`
}

// DiscoveryRateFor measures how quickly new artists or tracks enter the
// listening history. First plays are taken from the full history; InRange
// counts those that fall inside the scope's range.
func DiscoveryRateFor(events []playback.PlayEvent, s Scope, mode DiscoveryMode) DiscoveryRate {
	if mode == DiscoverTracks {
		return discoveryRate(discovery.FirstSeen(events, aggregate.ByTrack), s, mode)
	}
	return discoveryRate(discovery.FirstSeen(events, aggregate.ByArtist), s, DiscoverArtists)
}

func discoveryRate[K comparable](records []discovery.Record[K], s Scope, mode DiscoveryMode) DiscoveryRate {
	records = discovery.SeenBy(records, s.Now)
	out := DiscoveryRate{
		Mode:     mode,
		Total:    len(records),
		Trend:    discovery.RecentTrend(records, s.Now),
		Timeline: discovery.Timeline(records, s.loc(), discovery.DefaultTimelineMonths),
	}
	if len(records) == 0 {
		return out
	}

	w := s.rng().Current(s.Now)
	for _, r := range records {
		if w.Contains(r.FirstSeen) {
			out.InRange++
		}
	}
	out.DailyRate = compare.Round(discovery.DailyRate(records, s.Now), 2)
	out.HistoryDays = int(s.Now.Sub(records[0].FirstSeen) / timerange.Day)
	out.HasEnoughData = out.HistoryDays >= MinDiscoveryHistoryDays
	return out
}

type TopArtist struct {
	Name  string `yaml:"name"`
	Plays int    `yaml:"plays"`
}

func (t TopArtist) String() string {
	if t.Name == "" {
		return "N/A"
	}
	return fmt.Sprintf("%s (%d)", t.Name, t.Plays)
}

type ArtistCards struct {
	TopThisWeek   TopArtist `yaml:"top_this_week"`
	TopThisMonth  TopArtist `yaml:"top_this_month"`
	WeekStreak    int       `yaml:"week_streak"`
	MonthStreak   int       `yaml:"month_streak"`
	AvgNewPerWeek int       `yaml:"avg_new_artists_per_week"`
	Diversity     int       `yaml:"diversity_score"`
}

// NewArtistWeeks is how many weeks the new-artist average covers.
const NewArtistWeeks = 4

// ArtistStatsCards summarises who has been on top recently. It always looks
// at the weeks and months before the scope's reference time, regardless of
// the selected range.
func ArtistStatsCards(events []playback.PlayEvent, s Scope) ArtistCards {
	week := timerange.Last(7*timerange.Day, s.Now).Filter(events)
	month := timerange.Last(30*timerange.Day, s.Now).Filter(events)

	var out ArtistCards
	if top := aggregate.GroupBy(week, aggregate.ByArtist).Top(1); len(top) > 0 {
		out.TopThisWeek = TopArtist{Name: top[0].Key, Plays: top[0].Count}
	}
	if top := aggregate.GroupBy(month, aggregate.ByArtist).Top(1); len(top) > 0 {
		out.TopThisMonth = TopArtist{Name: top[0].Key, Plays: top[0].Count}
	}

	out.WeekStreak = discovery.ReignStreak(events, aggregate.ByArtist,
		discovery.WeeklyPeriods(s.Now, discovery.StreakPeriods)).Streak
	out.MonthStreak = discovery.ReignStreak(events, aggregate.ByArtist,
		discovery.MonthlyPeriods(s.Now, discovery.StreakPeriods, s.loc())).Streak

	sum := 0
	for _, n := range discovery.NewPerWeek(events, aggregate.ByArtist, s.Now, NewArtistWeeks) {
		sum += n
	}
	out.AvgNewPerWeek = int(compare.Round(float64(sum)/NewArtistWeeks, 0))
	out.Diversity = compare.DiversityScore(uniqueArtists(month), len(month))
	return out
}
