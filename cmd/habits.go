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

	"github.com/ademuri/listening-stats/internal/analysis"
	"github.com/ademuri/listening-stats/internal/playback"
	"github.com/spf13/cobra"
)

var consistencyCmd = &cobra.Command{
	Use:   "consistency",
	Short: "Shows how evenly your plays spread across days, plus streaks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyser(cmd.OutOrStdout(), ConsistencyAnalyzer{})
	},
}

var velocityCmd = &cobra.Command{
	Use:   "velocity",
	Short: "Tracks plays per day and the week-over-week trend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyser(cmd.OutOrStdout(), VelocityAnalyzer{})
	},
}

var repeatMode string
var repeatCmd = &cobra.Command{
	Use:   "repeat",
	Short: "Measures how much of your listening went to songs or artists already played",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := analysis.ParseRepeatMode(repeatMode)
		if err != nil {
			return err
		}
		return runAnalyser(cmd.OutOrStdout(), RepeatAnalyzer{Mode: mode})
	},
}

func init() {
	rootCmd.AddCommand(consistencyCmd)
	rootCmd.AddCommand(velocityCmd)
	rootCmd.AddCommand(repeatCmd)

	repeatCmd.Flags().StringVar(&repeatMode, "mode", string(analysis.RepeatSongs), "'songs' or 'artists'")
}

type ConsistencyAnalyzer struct{}

func (ConsistencyAnalyzer) GetName() string {
	return "Consistency"
}

func (ConsistencyAnalyzer) GetResults(store *playback.Store, scope analysis.Scope) (a Analysis, err error) {
	c := analysis.ConsistencyVariance(store.Events(), scope)
	if !c.HasData {
		return a, ErrSkipReport
	}

	a.results = [][]string{{"Date", "Plays", "Minutes"}}
	for _, d := range c.Recent {
		if d.Plays == 0 {
			continue
		}
		a.results = append(a.results, []string{d.Date, itoa(d.Plays), itoa(d.Minutes)})
	}
	a.summary = fmt.Sprintf(
		"Consistency %d%% (variation %d%%), active on %d of %d days\n"+
			"%.1f plays per day, std dev %.1f\n"+
			"Current streak %d days, longest %d days",
		c.Score, c.Variation, c.ActiveDays, c.TotalDays,
		c.AveragePerDay, c.StdDev,
		c.CurrentStreak, c.LongestStreak)
	return
}

type VelocityAnalyzer struct{}

func (VelocityAnalyzer) GetName() string {
	return "Velocity"
}

func (VelocityAnalyzer) GetResults(store *playback.Store, scope analysis.Scope) (a Analysis, err error) {
	v := analysis.ListeningVelocity(store.Events(), scope)
	if !v.HasData {
		return a, ErrSkipReport
	}

	a.results = [][]string{{"Date", "Plays"}}
	for _, d := range v.Daily {
		a.results = append(a.results, []string{d.Date, itoa(d.Count)})
	}
	a.summary = fmt.Sprintf(
		"Average %.1f plays per day (min %d, max %d, typical %.1f to %.1f)\n"+
			"Last 7 days %.1f per day vs %.1f the week before (%s)",
		v.Average, v.Min, v.Max, v.LowZone, v.HighZone,
		v.Last7, v.Prev7, formatChange(v.Trend))
	return
}

type RepeatAnalyzer struct {
	Mode analysis.RepeatMode
}

func (r RepeatAnalyzer) GetName() string {
	return "Repeat ratio"
}

func (r RepeatAnalyzer) GetResults(store *playback.Store, scope analysis.Scope) (a Analysis, err error) {
	mode := r.Mode
	if mode == "" {
		mode = analysis.RepeatSongs
	}
	ratio := analysis.RepeatRatioFor(store.Events(), scope, mode)
	if !ratio.HasData {
		return a, ErrSkipReport
	}

	if mode == analysis.RepeatArtists {
		a.results = [][]string{{"Artist", "Plays"}}
		for _, e := range ratio.TopRepeats {
			a.results = append(a.results, []string{e.Name, itoa(e.Plays)})
		}
	} else {
		a.results = [][]string{{"Track", "Artist", "Plays"}}
		for _, e := range ratio.TopRepeats {
			a.results = append(a.results, []string{e.Name, e.Artist, itoa(e.Plays)})
		}
	}
	a.summary = fmt.Sprintf(
		"%d plays of %d unique %s: %d%% repeats, %d%% exploration, %d%% familiarity",
		ratio.Plays, ratio.Unique, mode, ratio.Ratio, ratio.Exploration, ratio.Familiarity)
	return
}
