/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/ademuri/listening-stats/internal/analysis"
	"github.com/ademuri/listening-stats/internal/playback"
	"github.com/spf13/cobra"
)

var timeOfDayCmd = &cobra.Command{
	Use:   "time-of-day",
	Short: "Splits plays across morning, afternoon, evening and night",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyser(cmd.OutOrStdout(), TimeOfDayAnalyzer{})
	},
}

var weekdayCmd = &cobra.Command{
	Use:   "weekday",
	Short: "Compares listening across days of the week",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyser(cmd.OutOrStdout(), WeekdayAnalyzer{AnalyserConfig{NumToReturn: 3}})
	},
}

var rhythmCmd = &cobra.Command{
	Use:   "rhythm",
	Short: "Finds the half-hour of the week you listen most",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyser(cmd.OutOrStdout(), RhythmAnalyzer{})
	},
}

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Counts plays by weekday and hour",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyser(cmd.OutOrStdout(), HeatmapAnalyzer{})
	},
}

var trackLengthsCmd = &cobra.Command{
	Use:   "track-lengths",
	Short: "Buckets plays by track duration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyser(cmd.OutOrStdout(), TrackLengthsAnalyzer{})
	},
}

var trendsWeeks, trendsWindow int
var trendsCmd = &cobra.Command{
	Use:   "trends",
	Short: "Follows the weekly plays of your top artists",
	Long:  `Weeks are counted back from the reference time and ignore --range.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !slices.Contains(analysis.TrendWindows, trendsWindow) {
			return fmt.Errorf("window must be one of %v", analysis.TrendWindows)
		}
		if trendsWeeks < 1 {
			return fmt.Errorf("weeks must be positive")
		}
		return runAnalyser(cmd.OutOrStdout(), TrendsAnalyzer{
			Config: AnalyserConfig{NumToReturn: numToReturn()},
			Weeks:  trendsWeeks,
			Window: trendsWindow,
		})
	},
}

func init() {
	rootCmd.AddCommand(timeOfDayCmd)
	rootCmd.AddCommand(weekdayCmd)
	rootCmd.AddCommand(rhythmCmd)
	rootCmd.AddCommand(heatmapCmd)
	rootCmd.AddCommand(trackLengthsCmd)
	rootCmd.AddCommand(trendsCmd)

	trendsCmd.Flags().IntVar(&trendsWeeks, "weeks", 12, "number of weeks to follow")
	trendsCmd.Flags().IntVar(&trendsWindow, "window", 4, "moving average window in weeks")
}

type TimeOfDayAnalyzer struct{}

func (TimeOfDayAnalyzer) GetName() string {
	return "Time of day"
}

func (TimeOfDayAnalyzer) GetResults(store *playback.Store, scope analysis.Scope) (a Analysis, err error) {
	t := analysis.TimeOfDayDistribution(store.Events(), scope)
	a.results = [][]string{{"Period", "Hours", "Plays", "Unique"}}
	if t.HasPrevious {
		a.results[0] = append(a.results[0], "Previous", "Change")
	}
	for _, p := range t.Periods {
		row := []string{string(p.Period), p.Hours, itoa(p.Plays), itoa(p.Unique)}
		if t.HasPrevious {
			row = append(row, itoa(*p.Previous), formatChange(*p.Percent))
		}
		a.results = append(a.results, row)
	}
	a.summary = t.Insight
	return
}

type WeekdayAnalyzer struct {
	Config AnalyserConfig
}

func (w WeekdayAnalyzer) GetName() string {
	return "Weekdays"
}

func (w WeekdayAnalyzer) GetResults(store *playback.Store, scope analysis.Scope) (a Analysis, err error) {
	events := store.Events()
	days := analysis.DayOfWeekBreakdown(events, scope)
	if !days.HasData {
		return a, ErrSkipReport
	}
	split := analysis.WeekdayWeekendComparison(events, scope, w.Config.NumToReturn)

	var rows [][]string
	for _, d := range days.Days {
		rows = append(rows, []string{d.Day.String(), itoa(d.Plays)})
	}

	segRows := [][]string{
		{"Plays", itoa(split.Weekday.Plays), itoa(split.Weekend.Plays)},
		{"Plays per day", fmt.Sprintf("%.1f", split.Weekday.PerDay), fmt.Sprintf("%.1f", split.Weekend.PerDay)},
		{"Minutes", itoa(split.Weekday.Minutes), itoa(split.Weekend.Minutes)},
		{"Minutes per play", fmt.Sprintf("%.1f", split.Weekday.MinutesPerPlay), fmt.Sprintf("%.1f", split.Weekend.MinutesPerPlay)},
		{"Peak hour", split.Weekday.PeakHour, split.Weekend.PeakHour},
		{"Unique artists", itoa(split.Weekday.UniqueArtists), itoa(split.Weekend.UniqueArtists)},
		{"Unique tracks", itoa(split.Weekday.UniqueTracks), itoa(split.Weekend.UniqueTracks)},
		{"Top artists", artistNames(split.Weekday.TopArtists), artistNames(split.Weekend.TopArtists)},
	}

	var b strings.Builder
	b.WriteString(renderTable([]string{"Day", "Plays"}, rows))
	fmt.Fprintf(&b, "Busiest %s, quietest %s, %d plays on an average day\n",
		days.Busiest, days.Quietest, days.Average)
	b.WriteString(renderTable([]string{"", "Weekday", "Weekend"}, segRows))
	fmt.Fprintf(&b, "Weekend days average %s plays compared with weekdays (%s)\n",
		formatChange(split.Difference), periodSummary(scope))
	a.BodyOverride = b.String()
	return
}

func artistNames(entries []analysis.ArtistEntry) string {
	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return strings.Join(names, ", ")
}

type RhythmAnalyzer struct{}

func (RhythmAnalyzer) GetName() string {
	return "Rhythm"
}

func (RhythmAnalyzer) GetResults(store *playback.Store, scope analysis.Scope) (a Analysis, err error) {
	r := analysis.ListeningRhythm(store.Events(), scope)
	if r.Peak == nil {
		return a, ErrSkipReport
	}
	a.summary = fmt.Sprintf("You listen most on %s at %s: %d plays across %d days (%s)",
		r.Peak.Day, r.Peak.Time, r.Peak.Plays, r.Peak.Days, periodSummary(scope))
	return
}

type HeatmapAnalyzer struct{}

func (HeatmapAnalyzer) GetName() string {
	return "Heatmap"
}

func (HeatmapAnalyzer) GetResults(store *playback.Store, scope analysis.Scope) (a Analysis, err error) {
	h := analysis.ListeningHeatmap(store.Events(), scope)
	if h.Max == 0 {
		return a, ErrSkipReport
	}

	header := []string{"Day"}
	for hour := 0; hour < 24; hour++ {
		header = append(header, itoa(hour))
	}
	a.results = [][]string{header}
	for d, hours := range h.Cells {
		row := []string{time.Weekday(d).String()[:3]}
		for _, n := range hours {
			row = append(row, itoa(n))
		}
		a.results = append(a.results, row)
	}
	a.summary = fmt.Sprintf("Busiest hour has %d plays (%s)", h.Max, periodSummary(scope))
	return
}

type TrackLengthsAnalyzer struct{}

func (TrackLengthsAnalyzer) GetName() string {
	return "Track lengths"
}

func (TrackLengthsAnalyzer) GetResults(store *playback.Store, scope analysis.Scope) (a Analysis, err error) {
	t := analysis.TrackLengthDistribution(store.Events(), scope)
	if !t.HasData {
		return a, ErrSkipReport
	}
	a.results = [][]string{{"Length", "Plays"}}
	for _, b := range t.Buckets {
		a.results = append(a.results, []string{b.Label, itoa(b.Count)})
	}
	a.summary = fmt.Sprintf("Average %s, median %s, shortest %s, longest %s",
		formatSeconds(t.AverageSec), formatSeconds(t.MedianSec), formatSeconds(t.ShortestSec), formatSeconds(t.LongestSec))
	return
}

func formatSeconds(sec int) string {
	return analysis.FormatTrackDuration(int64(sec) * 1000)
}

type TrendsAnalyzer struct {
	Config AnalyserConfig
	Weeks  int
	Window int
}

func (t TrendsAnalyzer) GetName() string {
	return "Artist trends"
}

func (t TrendsAnalyzer) GetResults(store *playback.Store, scope analysis.Scope) (a Analysis, err error) {
	trends := analysis.ArtistTrendsFor(store.Events(), scope, t.Config.NumToReturn, t.Weeks, t.Window)
	if len(trends.Series) == 0 {
		return a, ErrSkipReport
	}

	a.results = [][]string{append([]string{"Artist"}, trends.Weeks...)}
	for _, s := range trends.Series {
		row := []string{s.Artist}
		for i, n := range s.Weekly {
			row = append(row, fmt.Sprintf("%d (%.1f)", n, s.MovingAverage[i]))
		}
		a.results = append(a.results, row)
	}
	a.summary = fmt.Sprintf("Weekly plays with a %d week moving average in brackets", trends.Window)
	return
}
