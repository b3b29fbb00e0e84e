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

var yearCmd = &cobra.Command{
	Use:   "year [yyyy]",
	Short: "Breaks one calendar year down by month",
	Long:  `Defaults to the most recent year with plays. The range flag does not apply.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year := 0
		if len(args) == 1 {
			date, err := parseSingleDatestring(args[0])
			if err != nil {
				return err
			}
			if !date.Year {
				return fmt.Errorf("Expected a year like 2024, got %q", args[0])
			}
			year = date.Date.Year()
		}
		return runAnalyser(cmd.OutOrStdout(), YearAnalyzer{Year: year})
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Lists your latest plays",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyser(cmd.OutOrStdout(), RecentAnalyzer{AnalyserConfig{NumToReturn: numToReturn()}})
	},
}

func init() {
	rootCmd.AddCommand(yearCmd)
	rootCmd.AddCommand(recentCmd)
}

type YearAnalyzer struct {
	Year int
}

func (y YearAnalyzer) GetName() string {
	return "Year in music"
}

func (y YearAnalyzer) GetResults(store *playback.Store, scope analysis.Scope) (a Analysis, err error) {
	year := analysis.YearInMusicFor(store.Events(), scope, y.Year)
	if len(year.Months) == 0 {
		return a, ErrSkipReport
	}

	a.results = [][]string{{"Month", "Plays", "Artists", "Top artists"}}
	for _, m := range year.Months {
		var top []string
		for _, artist := range m.TopArtists {
			top = append(top, fmt.Sprintf("%s (%d)", artist.Name, artist.Plays))
		}
		a.results = append(a.results, []string{m.Name, itoa(m.Plays), itoa(m.UniqueArtists), strings.Join(top, ", ")})
	}

	var years []string
	for _, yr := range year.Years {
		years = append(years, itoa(yr))
	}
	a.summary = fmt.Sprintf("%d (years with plays: %s)", year.Year, strings.Join(years, ", "))
	return
}

type RecentAnalyzer struct {
	Config AnalyserConfig
}

func (r RecentAnalyzer) GetName() string {
	return "Recent plays"
}

func (r RecentAnalyzer) GetResults(store *playback.Store, scope analysis.Scope) (a Analysis, err error) {
	feed := analysis.RecentPlaysFeed(store.Events(), scope, r.Config.NumToReturn)
	if len(feed.Plays) == 0 {
		return a, ErrSkipReport
	}

	a.results = [][]string{{"When", "Track", "Artist", "Album", "Length", "Today"}}
	for _, p := range feed.Plays {
		a.results = append(a.results, []string{
			p.Ago, p.Track, p.Artist, p.Album, p.Duration, itoa(p.PlaysToday),
		})
	}
	a.summary = fmt.Sprintf("%d plays today", feed.TodayPlays)
	return
}
