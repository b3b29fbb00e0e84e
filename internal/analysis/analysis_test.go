package analysis

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ademuri/listening-stats/internal/compare"
	"github.com/ademuri/listening-stats/internal/playback"
	"github.com/ademuri/listening-stats/internal/timerange"
	"gopkg.in/yaml.v3"
)

// now is a Sunday.
var now = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

var monthScope = Scope{Range: timerange.Month, Now: now, Location: time.UTC}

func ago(d time.Duration, track, artist string, durationMs int64) playback.PlayEvent {
	return playback.PlayEvent{
		PlayedAt:   now.Add(-d),
		TrackName:  track,
		ArtistName: artist,
		AlbumName:  artist + " album",
		DurationMs: durationMs,
	}
}

func on(month time.Month, date, hour int, track, artist string, durationMs int64) playback.PlayEvent {
	return playback.PlayEvent{
		PlayedAt:   time.Date(2024, month, date, hour, 0, 0, 0, time.UTC),
		TrackName:  track,
		ArtistName: artist,
		AlbumName:  artist + " album",
		DurationMs: durationMs,
	}
}

const day = 24 * time.Hour

func TestListeningOverview(t *testing.T) {
	events := []playback.PlayEvent{
		ago(40*day, "old", "X", 3600000),
		ago(35*day, "old", "X", 3600000),
		ago(3*day, "a", "X", 3600000),
		ago(2*day, "b", "X", 3600000),
		ago(2*day+time.Hour, "c", "X", 3600000),
		ago(time.Hour, "d", "Y", 1200000),
	}
	o := ListeningOverview(events, monthScope)

	if o.Plays != 4 || o.UniqueArtists != 2 || o.Diversity != 50 {
		t.Errorf("plays %d artists %d diversity %d", o.Plays, o.UniqueArtists, o.Diversity)
	}
	if o.Hours != 3 || o.Minutes != 10 {
		t.Errorf("listening time = %dh %dm, want 3h 10m", o.Hours, o.Minutes)
	}
	if o.Change == nil {
		t.Fatalf("expected a comparison with the previous period")
	}
	want := OverviewChange{Time: 67, Plays: 100, Artists: 100, Diversity: 0}
	if *o.Change != want {
		t.Errorf("Change = %+v, want %+v", *o.Change, want)
	}
}

func TestListeningOverviewAllTime(t *testing.T) {
	s := monthScope
	s.Range = timerange.All
	o := ListeningOverview([]playback.PlayEvent{ago(400*day, "a", "X", 0)}, s)
	if o.Plays != 1 || o.Change != nil {
		t.Errorf("all-time overview = %+v", o)
	}
}

func TestListeningOverviewEmpty(t *testing.T) {
	o := ListeningOverview(nil, monthScope)
	if o.Plays != 0 || o.Diversity != 0 || o.Change == nil || *o.Change != (OverviewChange{}) {
		t.Errorf("empty overview = %+v", o)
	}
}

func TestTopArtistsOrder(t *testing.T) {
	events := []playback.PlayEvent{
		ago(3*day, "a1", "A", 60000),
		ago(2*day, "a2", "A", 60000),
		ago(day, "a1", "A", 60000),
		ago(time.Hour, "b1", "B", 3600000),
	}

	byPlays := TopArtists(events, monthScope, ByPlays, 10)
	if len(byPlays) != 2 || byPlays[0].Name != "A" || byPlays[0].Plays != 3 || byPlays[0].Tracks != 2 {
		t.Errorf("by plays = %+v", byPlays)
	}
	if byPlays[0].Minutes != 3 {
		t.Errorf("A minutes = %d, want 3", byPlays[0].Minutes)
	}

	byMinutes := TopArtists(events, monthScope, ByMinutes, 1)
	if len(byMinutes) != 1 || byMinutes[0].Name != "B" || byMinutes[0].Minutes != 57 {
		t.Errorf("by minutes = %+v", byMinutes)
	}

	if _, err := ParseArtistOrder("loudness"); err == nil {
		t.Errorf("expected error for unknown order")
	}
}

func TestTopTracksMovement(t *testing.T) {
	events := []playback.PlayEvent{
		// Previous period: T2 leads.
		ago(40*day, "T2", "A", 0),
		ago(39*day, "T2", "A", 0),
		ago(38*day, "T2", "A", 0),
		ago(37*day, "T1", "A", 0),
		// Current period.
		ago(5*day, "T1", "A", 0),
		ago(4*day, "T1", "A", 0),
		ago(3*day, "T1", "A", 0),
		ago(2*day, "T2", "A", 0),
		ago(2*day, "T2", "A", 0),
		ago(day, "T3", "A", 0),
	}
	tracks := TopTracks(events, monthScope, 10)
	if len(tracks) != 3 {
		t.Fatalf("expected 3 tracks, got %d", len(tracks))
	}
	want := []struct {
		track    string
		movement compare.Movement
		places   int
	}{
		{"T1", compare.MovementUp, 1},
		{"T2", compare.MovementDown, -1},
		{"T3", compare.MovementNew, 0},
	}
	for i, w := range want {
		got := tracks[i]
		if got.Track != w.track || got.Movement != w.movement || got.Places != w.places {
			t.Errorf("tracks[%d] = %+v, want %s %s %d", i, got, w.track, w.movement, w.places)
		}
	}
	if tracks[0].Album != "A album" {
		t.Errorf("album = %q", tracks[0].Album)
	}
}

func TestTopAlbums(t *testing.T) {
	events := []playback.PlayEvent{
		ago(40*day, "a1", "A", 0),
		ago(3*day, "a1", "A", 0),
		ago(2*day, "a2", "A", 0),
		ago(2*day, "a1", "A", 0),
		ago(day, "b1", "B", 0),
	}
	g := TopAlbums(events, monthScope, 10)
	if !g.HasPrevious || g.Plays != 4 || g.Change != 300 {
		t.Errorf("gallery = %+v", g)
	}
	if len(g.Albums) != 2 {
		t.Fatalf("expected 2 albums, got %d", len(g.Albums))
	}

	a, b := g.Albums[0], g.Albums[1]
	if a.Album != "A album" || a.Plays != 3 || a.Tracks != 2 || a.Size != 5 || a.New {
		t.Errorf("album A = %+v", a)
	}
	if a.Change == nil || *a.Change != 200 {
		t.Errorf("album A change = %v", a.Change)
	}
	if b.Size != 2 || !b.New || b.Change == nil || *b.Change != 100 {
		t.Errorf("album B = %+v", b)
	}
}

func TestFeaturedArtists(t *testing.T) {
	e1 := ago(3*day, "x", "A", 0)
	e1.FeaturedArtists = "F1, F2"
	e2 := ago(2*day, "y", "A", 0)
	e2.FeaturedArtists = "F1,F2"
	e3 := ago(day, "z", "A", 0)
	e3.FeaturedArtists = "F2"

	got := FeaturedArtists([]playback.PlayEvent{e1, e2, e3}, monthScope, 10)
	if len(got) != 2 {
		t.Fatalf("expected 2 featured artists, got %+v", got)
	}
	if got[0].Name != "F2" || got[0].Plays != 3 || got[0].Tracks != 3 || got[0].Size != 5 {
		t.Errorf("F2 = %+v", got[0])
	}
	if got[1].Name != "F1" || got[1].Size != 4 {
		t.Errorf("F1 = %+v", got[1])
	}
}

func TestCloudSize(t *testing.T) {
	tests := []struct{ count, largest, want int }{
		{10, 10, 5},
		{1, 10, 1},
		{0, 10, 1},
		{3, 10, 2},
		{5, 0, 1},
	}
	for _, tt := range tests {
		if got := CloudSize(tt.count, tt.largest); got != tt.want {
			t.Errorf("CloudSize(%d, %d) = %d, want %d", tt.count, tt.largest, got, tt.want)
		}
	}
}

func TestArtistTrends(t *testing.T) {
	events := []playback.PlayEvent{
		ago(20*day, "a", "A", 0),
		ago(13*day, "a", "A", 0),
		ago(6*day, "a", "A", 0),
		ago(5*day, "a", "A", 0),
		ago(day, "b", "B", 0),
		ago(60*day, "c", "C", 0),
	}
	trends := ArtistTrendsFor(events, monthScope, 5, 4, 2)
	if len(trends.Weeks) != 4 || trends.Weeks[3] != "W4" {
		t.Errorf("weeks = %v", trends.Weeks)
	}
	if len(trends.Series) != 2 || trends.Series[0].Artist != "A" {
		t.Fatalf("series = %+v", trends.Series)
	}
	a := trends.Series[0]
	wantWeekly := []int{0, 1, 1, 2}
	wantAverage := []float64{0, 0.5, 1, 1.5}
	for i := range wantWeekly {
		if a.Weekly[i] != wantWeekly[i] || a.MovingAverage[i] != wantAverage[i] {
			t.Errorf("week %d: %d / %v, want %d / %v", i, a.Weekly[i], a.MovingAverage[i], wantWeekly[i], wantAverage[i])
		}
	}
}

func TestTrackLengthDistribution(t *testing.T) {
	events := []playback.PlayEvent{
		ago(day, "a", "A", 100000),
		ago(day, "b", "A", 200000),
		ago(day, "c", "A", 300000),
		ago(day, "d", "A", 0),
	}
	got := TrackLengthDistribution(events, monthScope)
	if !got.HasData || got.AverageSec != 200 || got.MedianSec != 200 || got.ShortestSec != 100 || got.LongestSec != 300 {
		t.Errorf("track lengths = %+v", got)
	}
	if empty := TrackLengthDistribution(nil, monthScope); empty.HasData || len(empty.Buckets) != 6 {
		t.Errorf("empty = %+v", empty)
	}
}

func TestTimeOfDayNoData(t *testing.T) {
	got := TimeOfDayDistribution(nil, monthScope)
	if got.Insight != "Insufficient data for temporal pattern analysis in selected period" {
		t.Errorf("insight = %q", got.Insight)
	}
	if len(got.Periods) != 4 {
		t.Errorf("expected 4 periods, got %d", len(got.Periods))
	}
}

func TestTimeOfDayGrowth(t *testing.T) {
	var events []playback.PlayEvent
	for i := 0; i < 5; i++ {
		events = append(events, on(time.May, 20, 8, "old", "A", 0))
	}
	for i := 0; i < 20; i++ {
		events = append(events, on(time.June, 20, 8, "new", "A", 0))
	}
	got := TimeOfDayDistribution(events, monthScope)

	if !got.HasPrevious {
		t.Fatalf("expected a comparison with the previous period")
	}
	morning := got.Periods[0]
	if morning.Plays != 20 || *morning.Previous != 5 || *morning.Change != 15 || *morning.Percent != 300 || morning.Unique != 1 {
		t.Errorf("morning = %+v", morning)
	}
	want := "Morning period demonstrates strongest growth with +15 track increase (+300%) versus previous period baseline"
	if got.Insight != want {
		t.Errorf("insight = %q, want %q", got.Insight, want)
	}
}

func TestTimeOfDayAllTime(t *testing.T) {
	var events []playback.PlayEvent
	for i := 0; i < 30; i++ {
		events = append(events, on(time.June, 20, 8, "song", "A", 0))
	}
	s := monthScope
	s.Range = timerange.All
	got := TimeOfDayDistribution(events, s)

	if got.HasPrevious {
		t.Errorf("all-time range should have no previous period")
	}
	for _, p := range got.Periods {
		if p.Previous != nil || p.Change != nil || p.Percent != nil {
			t.Errorf("%s has a comparison: %+v", p.Period, p)
		}
	}
	if got.Periods[0].Plays != 30 {
		t.Errorf("morning plays = %d, want 30", got.Periods[0].Plays)
	}
	if strings.Contains(got.Insight, "previous period") {
		t.Errorf("insight compares with a previous period: %q", got.Insight)
	}
	want := "Morning period exhibits highest engagement density with 30 total tracks (1 unique content items)"
	if got.Insight != want {
		t.Errorf("insight = %q, want %q", got.Insight, want)
	}
}

// weekEvents are one Monday play and one play on each day of the weekend,
// all at 10AM.
var weekEvents = []playback.PlayEvent{
	on(time.June, 24, 10, "a", "A", 120000),
	on(time.June, 29, 10, "b", "B", 180000),
	on(time.June, 30, 10, "c", "B", 240000),
}

func TestDayOfWeekBreakdown(t *testing.T) {
	got := DayOfWeekBreakdown(weekEvents, monthScope)
	if !got.HasData || len(got.Days) != 7 {
		t.Fatalf("breakdown = %+v", got)
	}
	if got.Days[time.Sunday].Plays != 1 || got.Days[time.Monday].Plays != 1 || got.Days[time.Saturday].Plays != 1 {
		t.Errorf("days = %+v", got.Days)
	}
	// Ties go to the earlier day.
	if got.Busiest != time.Sunday || got.Quietest != time.Tuesday {
		t.Errorf("busiest %v quietest %v", got.Busiest, got.Quietest)
	}
	if got.Average != 0 {
		t.Errorf("average = %d, want 0", got.Average)
	}
}

func TestWeekdayWeekendComparison(t *testing.T) {
	got := WeekdayWeekendComparison(weekEvents, monthScope, 3)
	if !got.HasData {
		t.Fatalf("expected data")
	}
	if got.Weekday.PerDay != 0.2 || got.Weekend.PerDay != 1 {
		t.Errorf("per day = %v / %v", got.Weekday.PerDay, got.Weekend.PerDay)
	}
	if got.Difference != 400 {
		t.Errorf("difference = %d, want 400", got.Difference)
	}
	if len(got.Radar) != 8 {
		t.Fatalf("expected 8 radar periods, got %d", len(got.Radar))
	}
	if r := got.Radar[3]; r.Weekday != 1 || r.Weekend != 2 {
		t.Errorf("late morning radar = %+v", r)
	}
	if got.Weekend.PeakHour != "10AM" || got.Weekend.Minutes != 7 || got.Weekend.MinutesPerPlay != 3.5 {
		t.Errorf("weekend = %+v", got.Weekend)
	}
	if len(got.Weekend.TopArtists) != 1 || got.Weekend.TopArtists[0].Name != "B" {
		t.Errorf("weekend top artists = %+v", got.Weekend.TopArtists)
	}

	if empty := WeekdayWeekendComparison(nil, monthScope, 3); empty.HasData {
		t.Errorf("expected no data")
	}
}

func TestFormatHour(t *testing.T) {
	tests := map[int]string{0: "12AM", 9: "9AM", 12: "12PM", 15: "3PM", 23: "11PM"}
	for h, want := range tests {
		if got := FormatHour(h); got != want {
			t.Errorf("FormatHour(%d) = %q, want %q", h, got, want)
		}
	}
}

func TestRepeatRatio(t *testing.T) {
	events := []playback.PlayEvent{
		ago(5*day, "a", "A", 0),
		ago(4*day, "a", "A", 0),
		ago(3*day, "a", "A", 0),
		ago(2*day, "b", "A", 0),
		ago(day, "c", "B", 0),
	}
	songs := RepeatRatioFor(events, monthScope, RepeatSongs)
	if songs.Unique != 3 || songs.RepeatPlays != 2 || songs.Ratio != 40 || songs.Exploration != 67 || songs.Familiarity != 33 {
		t.Errorf("songs = %+v", songs)
	}
	if len(songs.TopRepeats) != 1 || songs.TopRepeats[0].Name != "a" || songs.TopRepeats[0].Plays != 3 {
		t.Errorf("top repeats = %+v", songs.TopRepeats)
	}

	artists := RepeatRatioFor(events, monthScope, RepeatArtists)
	if artists.Unique != 2 || artists.Ratio != 60 || artists.Exploration != 50 {
		t.Errorf("artists = %+v", artists)
	}

	if empty := RepeatRatioFor(nil, monthScope, RepeatSongs); empty.HasData || empty.Familiarity != 0 {
		t.Errorf("empty = %+v", empty)
	}
}

func TestConsistencyRecentDays(t *testing.T) {
	got := ConsistencyVariance(weekEvents, monthScope)
	if len(got.Recent) != HeatmapDays {
		t.Fatalf("expected %d days, got %d", HeatmapDays, len(got.Recent))
	}
	first, last := got.Recent[0], got.Recent[HeatmapDays-1]
	if first.Date != "2024-05-13" || last.Date != "2024-06-30" || last.Plays != 1 || last.Minutes != 4 {
		t.Errorf("recent spans %+v to %+v", first, last)
	}
	if got.ActiveDays != 3 || got.TotalDays != 7 || got.CurrentStreak != 2 || got.LongestStreak != 2 {
		t.Errorf("consistency = %+v", got)
	}
}

func TestDiscoveryRate(t *testing.T) {
	events := []playback.PlayEvent{
		ago(100*day, "a", "A", 0),
		ago(50*day, "a", "A", 0),
		ago(10*day, "b", "B", 0),
		// After the reference time.
		ago(-20*day, "c", "C", 0),
	}
	got := DiscoveryRateFor(events, monthScope, DiscoverArtists)
	if got.Total != 2 || got.InRange != 1 || got.HistoryDays != 100 || !got.HasEnoughData {
		t.Errorf("discovery = %+v", got)
	}
	var timelineTotal int
	for _, m := range got.Timeline {
		if m.Month > "2024-06" {
			t.Errorf("timeline includes %s, after the reference time", m.Month)
		}
		timelineTotal += m.Count
	}
	if timelineTotal != got.Total {
		t.Errorf("timeline counts %d discoveries, total is %d", timelineTotal, got.Total)
	}
	if got.Trend.Recent != 1 || got.Trend.Previous != 0 || got.Trend.Percent != 100 {
		t.Errorf("trend = %+v", got.Trend)
	}
	if got.DailyRate != 0.02 {
		t.Errorf("daily rate = %v", got.DailyRate)
	}

	tracks := DiscoveryRateFor(events, monthScope, DiscoverTracks)
	if tracks.Mode != DiscoverTracks || tracks.Total != 2 {
		t.Errorf("tracks = %+v", tracks)
	}

	if _, err := ParseDiscoveryMode("albums"); err == nil {
		t.Errorf("expected error for unknown mode")
	}
}

func TestArtistStatsCards(t *testing.T) {
	events := []playback.PlayEvent{
		ago(15*day, "a", "A", 0),
		ago(10*day, "a", "A", 0),
		ago(3*day, "b", "B", 0),
		ago(2*day, "a", "A", 0),
		ago(day, "a", "A", 0),
	}
	got := ArtistStatsCards(events, monthScope)
	if got.TopThisWeek.String() != "A (2)" || got.TopThisMonth.String() != "A (4)" {
		t.Errorf("top = %v / %v", got.TopThisWeek, got.TopThisMonth)
	}
	if got.WeekStreak != 3 || got.MonthStreak != 1 {
		t.Errorf("streaks = %d weeks, %d months", got.WeekStreak, got.MonthStreak)
	}
	if got.AvgNewPerWeek != 1 || got.Diversity != 40 {
		t.Errorf("cards = %+v", got)
	}
	if (TopArtist{}).String() != "N/A" {
		t.Errorf("empty top artist should render N/A")
	}
}

func TestYearInMusic(t *testing.T) {
	events := []playback.PlayEvent{
		{PlayedAt: time.Date(2023, time.December, 31, 23, 0, 0, 0, time.UTC), TrackName: "x", ArtistName: "Z"},
		on(time.January, 5, 10, "a", "A", 0),
		on(time.January, 6, 10, "a", "A", 0),
		on(time.January, 7, 10, "b", "B", 0),
		on(time.January, 8, 10, "c", "C", 0),
		on(time.January, 9, 10, "d", "D", 0),
		on(time.March, 1, 10, "b", "B", 0),
	}
	got := YearInMusicFor(events, monthScope, 0)
	if got.Year != 2024 || len(got.Years) != 2 || got.Years[0] != 2024 || got.Years[1] != 2023 {
		t.Errorf("years = %d %v", got.Year, got.Years)
	}
	if len(got.Months) != 2 {
		t.Fatalf("expected 2 months, got %+v", got.Months)
	}
	jan := got.Months[0]
	if jan.Month != "2024-01" || jan.Name != "January" || jan.Plays != 5 || jan.UniqueArtists != 4 {
		t.Errorf("january = %+v", jan)
	}
	if len(jan.TopArtists) != MonthTopArtists || jan.TopArtists[0].Name != "A" || len(jan.OtherArtists) != 1 {
		t.Errorf("january artists = %+v / %+v", jan.TopArtists, jan.OtherArtists)
	}
	if got.Months[1].Name != "March" {
		t.Errorf("second month = %+v", got.Months[1])
	}

	if last := YearInMusicFor(events, monthScope, 2023); len(last.Months) != 1 || last.Months[0].Plays != 1 {
		t.Errorf("2023 = %+v", last)
	}
}

func TestRecentPlaysFeed(t *testing.T) {
	events := []playback.PlayEvent{
		ago(26*time.Hour, "T", "A", 215000),
		ago(2*time.Hour, "T", "A", 215000),
		ago(30*time.Second, "T", "A", 215000),
		ago(-time.Hour, "future", "B", 0),
	}
	got := RecentPlaysFeed(events, monthScope, 10)
	if got.TodayPlays != 2 || len(got.Plays) != 3 {
		t.Fatalf("feed = %+v", got)
	}
	wantAgo := []string{"Just now", "2h ago", "1d ago"}
	for i, w := range wantAgo {
		if got.Plays[i].Ago != w {
			t.Errorf("plays[%d].Ago = %q, want %q", i, got.Plays[i].Ago, w)
		}
	}
	if p := got.Plays[0]; p.PlaysToday != 2 || p.ArtistShare != 100 || p.Duration != "3:35" {
		t.Errorf("latest = %+v", p)
	}

	if limited := RecentPlaysFeed(events, monthScope, 1); len(limited.Plays) != 1 {
		t.Errorf("limit ignored: %d plays", len(limited.Plays))
	}
}

func TestFormatAgo(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{10 * time.Second, "Just now"},
		{5 * time.Minute, "5m ago"},
		{3*time.Hour + 59*time.Minute, "3h ago"},
		{49 * time.Hour, "2d ago"},
	}
	for _, tt := range tests {
		if got := FormatAgo(tt.d); got != tt.want {
			t.Errorf("FormatAgo(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestDeepDiveSessions(t *testing.T) {
	start := time.Date(2024, time.June, 20, 8, 0, 0, 0, time.UTC)
	events := []playback.PlayEvent{
		{PlayedAt: start, TrackName: "1", ArtistName: "Long", DurationMs: 3600000},
		{PlayedAt: start.Add(10 * time.Minute), TrackName: "2", ArtistName: "Long", DurationMs: 3600000},
		{PlayedAt: start.Add(20 * time.Minute), TrackName: "3", ArtistName: "Other", DurationMs: 3600000},
		{PlayedAt: start.Add(5 * 24 * time.Hour), TrackName: "4", ArtistName: "Short", DurationMs: 300000},
	}
	got := DeepDiveSessions(events, monthScope)
	if got.Sessions != 2 || got.Marathons != 1 || got.TopMarathoner != "Long" {
		t.Errorf("deep dive = %+v", got)
	}
	if got.Longest == nil || got.Longest.Minutes != 180 || got.Longest.Plays != 3 {
		t.Fatalf("longest = %+v", got.Longest)
	}
	if len(got.Longest.Artists) != 2 || got.Longest.Artists[0] != "Long" {
		t.Errorf("longest artists = %v", got.Longest.Artists)
	}

	lengths := SessionLengthAnalysis(events, monthScope)
	if lengths.Sessions != 2 || lengths.TotalMinutes != 185 {
		t.Errorf("lengths = %+v", lengths)
	}

	if empty := DeepDiveSessions(nil, monthScope); empty.Sessions != 0 || empty.Longest != nil {
		t.Errorf("empty = %+v", empty)
	}
}

func TestListeningPersonality(t *testing.T) {
	events := []playback.PlayEvent{
		on(time.June, 24, 8, "a", "A", 0),
		on(time.June, 29, 23, "b", "A", 0),
		{PlayedAt: time.Date(2024, time.June, 29, 23, 10, 0, 0, time.UTC), TrackName: "c", ArtistName: "A"},
	}
	got := ListeningPersonality(events, monthScope)
	if !got.HasData {
		t.Fatalf("expected data")
	}
	if got.Weekend.Name != "Weekend Warrior" || got.Weekend.Score != 67 {
		t.Errorf("weekend = %+v", got.Weekend)
	}
	if got.TimeOfDay.Name != "Night Owl" || got.TimeOfDay.Score != 67 {
		t.Errorf("time of day = %+v", got.TimeOfDay)
	}
	if got.Consistency.Name != "Spontaneous Explorer" || got.Consistency.Score != 33 {
		t.Errorf("consistency = %+v", got.Consistency)
	}
	if got.Session.Name != "Quick Sessions" {
		t.Errorf("session = %+v", got.Session)
	}
}

func TestGenerateReport(t *testing.T) {
	store := playback.NewStore(weekEvents)
	report := GenerateReport(store, monthScope, ReportOptions{TopN: 5})

	if report.Metadata.TotalPlays != 3 || report.Metadata.TotalArtists != 2 {
		t.Errorf("metadata = %+v", report.Metadata)
	}
	if report.Metadata.FirstPlay != "2024-06-24" || report.Metadata.LastPlay != "2024-06-30" {
		t.Errorf("span = %s to %s", report.Metadata.FirstPlay, report.Metadata.LastPlay)
	}
	if report.Metadata.Period != "Last Month" || report.Metadata.Range != "1m" {
		t.Errorf("period = %q range = %q", report.Metadata.Period, report.Metadata.Range)
	}
	if report.Metadata.ListeningStyle != "exploratory" {
		t.Errorf("style = %q", report.Metadata.ListeningStyle)
	}
	if len(report.TopArtists) != 2 || report.TopArtists[0].Name != "B" {
		t.Errorf("top artists = %+v", report.TopArtists)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(buf.String(), "listening_style: exploratory") {
		t.Errorf("encoded report missing style:\n%s", buf.String())
	}
}

func TestGenerateReportEmpty(t *testing.T) {
	report := GenerateReport(playback.NewStore(nil), monthScope, ReportOptions{})
	if report.Metadata.ListeningStyle != "no-data" || report.Metadata.FirstPlay != "" {
		t.Errorf("metadata = %+v", report.Metadata)
	}
}
