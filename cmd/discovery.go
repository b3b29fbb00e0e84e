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
	"strings"

	"github.com/ademuri/listening-stats/internal/analysis"
	"github.com/ademuri/listening-stats/internal/playback"
	"github.com/spf13/cobra"
)

var discoveryMode string
var discoveryCmd = &cobra.Command{
	Use:   "discovery",
	Short: "Measures how quickly new artists or tracks enter your history",
	Long:  `First plays are found across the whole history; the range selects which of them are counted as recent.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := analysis.ParseDiscoveryMode(discoveryMode)
		if err != nil {
			return err
		}
		return runAnalyser(cmd.OutOrStdout(), DiscoveryAnalyzer{Mode: mode})
	},
}

var streaksCmd = &cobra.Command{
	Use:   "streaks",
	Short: "Shows recent top artists and how long they have stayed on top",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyser(cmd.OutOrStdout(), StreaksAnalyzer{})
	},
}

func init() {
	rootCmd.AddCommand(discoveryCmd)
	rootCmd.AddCommand(streaksCmd)

	discoveryCmd.Flags().StringVar(&discoveryMode, "mode", string(analysis.DiscoverArtists), "'artists' or 'tracks'")
}

type DiscoveryAnalyzer struct {
	Mode analysis.DiscoveryMode
}

func (d DiscoveryAnalyzer) GetName() string {
	return "Discovery"
}

func (d DiscoveryAnalyzer) GetResults(store *playback.Store, scope analysis.Scope) (a Analysis, err error) {
	mode := d.Mode
	if mode == "" {
		mode = analysis.DiscoverArtists
	}
	rate := analysis.DiscoveryRateFor(store.Events(), scope, mode)
	if rate.Total == 0 {
		return a, ErrSkipReport
	}

	a.results = [][]string{{"Month", "New " + string(rate.Mode)}}
	for _, m := range rate.Timeline {
		a.results = append(a.results, []string{m.Month, itoa(m.Count)})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d %s discovered in total, %d in range (%s)\n",
		rate.Total, rate.Mode, rate.InRange, periodSummary(scope))
	fmt.Fprintf(&b, "Last 30 days: %d, previous 30 days: %d (%s)\n",
		rate.Trend.Recent, rate.Trend.Previous, formatChange(rate.Trend.Percent))
	if rate.HasEnoughData {
		fmt.Fprintf(&b, "%.2f new %s per day over %d days", rate.DailyRate, rate.Mode, rate.HistoryDays)
	} else {
		fmt.Fprintf(&b, "Only %d days of history, need %d for a daily rate",
			rate.HistoryDays, analysis.MinDiscoveryHistoryDays)
	}
	a.summary = b.String()
	return
}

type StreaksAnalyzer struct{}

func (StreaksAnalyzer) GetName() string {
	return "Artist streaks"
}

func (StreaksAnalyzer) GetResults(store *playback.Store, scope analysis.Scope) (a Analysis, err error) {
	cards := analysis.ArtistStatsCards(store.Events(), scope)
	a.results = [][]string{
		{"Stat", "Value"},
		{"Top artist this week", cards.TopThisWeek.String()},
		{"Top artist this month", cards.TopThisMonth.String()},
		{"Weeks on top", itoa(cards.WeekStreak)},
		{"Months on top", itoa(cards.MonthStreak)},
		{"New artists per week", itoa(cards.AvgNewPerWeek)},
		{"Diversity (30 days)", fmt.Sprintf("%d%%", cards.Diversity)},
	}
	return
}
