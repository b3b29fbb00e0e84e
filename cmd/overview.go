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

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Shows plays, listening time and diversity for the selected range",
	Long:  `Each figure is compared with the equal-length period before the selected range.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyser(cmd.OutOrStdout(), OverviewAnalyzer{})
	},
}

func init() {
	rootCmd.AddCommand(overviewCmd)
}

type OverviewAnalyzer struct{}

func (OverviewAnalyzer) GetName() string {
	return "Overview"
}

func (OverviewAnalyzer) GetResults(store *playback.Store, scope analysis.Scope) (Analysis, error) {
	o := analysis.ListeningOverview(store.Events(), scope)

	var a Analysis
	a.results = [][]string{{"Metric", "Value", "Change"}}
	rows := [][]string{
		{"Plays", itoa(o.Plays)},
		{"Listening time", fmt.Sprintf("%dh %dm", o.Hours, o.Minutes)},
		{"Unique artists", itoa(o.UniqueArtists)},
		{"Diversity score", fmt.Sprintf("%d%%", o.Diversity)},
	}
	var changes []int
	if o.Change != nil {
		changes = []int{o.Change.Plays, o.Change.Time, o.Change.Artists, o.Change.Diversity}
	}
	for i, row := range rows {
		change := ""
		if changes != nil {
			change = formatChange(changes[i])
		}
		a.results = append(a.results, append(row, change))
	}
	a.summary = periodSummary(scope)
	return a, nil
}
