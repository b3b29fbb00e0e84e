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

var topTracksCmd = &cobra.Command{
	Use:   "top-tracks",
	Short: "Gets the top tracks of the selected range",
	Long:  `Shows how each track's rank moved compared with the previous period.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyser(cmd.OutOrStdout(), TopTracksAnalyzer{AnalyserConfig{NumToReturn: numToReturn()}})
	},
}

func init() {
	rootCmd.AddCommand(topTracksCmd)
}

type TopTracksAnalyzer struct {
	Config AnalyserConfig
}

func (t TopTracksAnalyzer) GetName() string {
	return "Top tracks"
}

func (t TopTracksAnalyzer) GetResults(store *playback.Store, scope analysis.Scope) (a Analysis, err error) {
	tracks := analysis.TopTracks(store.Events(), scope, t.Config.NumToReturn)

	a.results = [][]string{{"Rank", "Track", "Artist", "Plays", "Move"}}
	for _, track := range tracks {
		a.results = append(a.results, []string{
			itoa(track.Rank), track.Track, track.Artist, itoa(track.Plays), formatMovement(track.Movement, track.Places),
		})
	}
	a.summary = fmt.Sprintf("Showing %d tracks (%s)", len(tracks), periodSummary(scope))
	return
}
