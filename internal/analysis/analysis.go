// Package analysis turns the play history into the derived data behind each
// dashboard view. Every view is a pure function of the events and a Scope.
package analysis

import (
	"time"

	"github.com/ademuri/listening-stats/internal/aggregate"
	"github.com/ademuri/listening-stats/internal/playback"
)

// ReportOptions are the view parameters used by GenerateReport.
type ReportOptions struct {
	TopN int
}

// GenerateReport runs every view over the store for one scope.
func GenerateReport(store *playback.Store, s Scope, opts ReportOptions) *Report {
	events := store.Events()
	if s.Now.IsZero() {
		s.Now = time.Now()
	}
	n := opts.TopN
	if n <= 0 {
		n = 10
	}

	report := &Report{}

	// 1. Metadata
	report.Metadata = ReportMetadata{
		GeneratedDate: time.Now().Format("2006-01-02"),
		ReferenceTime: s.Now.In(s.loc()).Format(time.RFC3339),
		Timezone:      s.loc().String(),
		Range:         string(s.rng()),
		Period:        s.Label(),
		TotalPlays:    len(events),
		TotalArtists:  uniqueArtists(events),
	}
	if first, last, ok := store.Span(); ok {
		report.Metadata.FirstPlay = first.In(s.loc()).Format(aggregate.DateLayout)
		report.Metadata.LastPlay = last.In(s.loc()).Format(aggregate.DateLayout)
	}

	// 2. Rankings
	report.Overview = ListeningOverview(events, s)
	report.ArtistCards = ArtistStatsCards(events, s)
	report.TopArtists = TopArtists(events, s, ByPlays, n)
	report.TopTracks = TopTracks(events, s, n)
	report.TopAlbums = TopAlbums(events, s, n)
	report.Featured = FeaturedArtists(events, s, n)
	report.Discovery = DiscoveryRateFor(events, s, DiscoverArtists)

	// 3. Sessions
	report.Sessions = DeepDiveSessions(events, s)
	report.SessionLengths = SessionLengthAnalysis(events, s)
	report.Personality = ListeningPersonality(events, s)

	// 4. Patterns
	report.Patterns = Patterns{
		TimeOfDay:      TimeOfDayDistribution(events, s),
		DayOfWeek:      DayOfWeekBreakdown(events, s),
		WeekdayWeekend: WeekdayWeekendComparison(events, s, 3),
		Rhythm:         ListeningRhythm(events, s).Peak,
		TrackLengths:   TrackLengthDistribution(events, s),
	}

	// 5. Habits
	report.Habits = Habits{
		Consistency: ConsistencyVariance(events, s),
		Velocity:    ListeningVelocity(events, s),
		SongRepeats: RepeatRatioFor(events, s, RepeatSongs),
		Artists:     RepeatRatioFor(events, s, RepeatArtists),
	}

	report.Metadata.ListeningStyle = listeningStyle(report)
	return report
}

// listeningStyle labels the history by how concentrated it is. A low repeat
// share with high diversity reads as exploration.
func listeningStyle(r *Report) string {
	if r.Overview.Plays == 0 {
		return "no-data"
	}
	if r.Habits.SongRepeats.Ratio >= 50 {
		return "repeat-oriented"
	}
	if r.Overview.Diversity >= 30 {
		return "exploratory"
	}
	return "artist-focused"
}
