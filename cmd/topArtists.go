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

var topArtistsOrder string
var topArtistsMin int64
var topArtistsCmd = &cobra.Command{
	Use:   "top-artists",
	Short: "Gets the top artists of the selected range",
	Long:  `Ranks artists by plays, or by estimated minutes listened with --by minutes.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := analysis.ParseArtistOrder(topArtistsOrder)
		if err != nil {
			return err
		}
		config := AnalyserConfig{numToReturn(), topArtistsMin}
		return runAnalyser(cmd.OutOrStdout(), TopArtistsAnalyzer{Order: order}.SetConfig(config))
	},
}

func init() {
	rootCmd.AddCommand(topArtistsCmd)

	topArtistsCmd.Flags().StringVar(&topArtistsOrder, "by", string(analysis.ByPlays), "rank by 'plays' or 'minutes'")
	topArtistsCmd.Flags().Int64Var(&topArtistsMin, "min", 0, "only show artists with more plays than this")
}

type TopArtistsAnalyzer struct {
	Config AnalyserConfig
	Order  analysis.ArtistOrder
}

func (t TopArtistsAnalyzer) SetConfig(config AnalyserConfig) TopArtistsAnalyzer {
	t.Config = config
	return t
}

func (t TopArtistsAnalyzer) GetName() string {
	return "Top artists"
}

func (t TopArtistsAnalyzer) GetResults(store *playback.Store, scope analysis.Scope) (a Analysis, err error) {
	order := t.Order
	if order == "" {
		order = analysis.ByPlays
	}
	// Rank everything so the summary counts all artists in range.
	artists := analysis.TopArtists(store.Events(), scope, order, 0)

	numListens := 0
	a.results = [][]string{{"Rank", "Artist", "Plays", "Minutes", "Tracks"}}
	shown := 0
	for _, artist := range artists {
		numListens += artist.Plays
		if t.Config.FilterThreshold != 0 && int64(artist.Plays) <= t.Config.FilterThreshold {
			continue
		}
		if t.Config.NumToReturn != 0 && shown >= t.Config.NumToReturn {
			continue
		}
		shown++
		a.results = append(a.results, []string{
			itoa(artist.Rank), artist.Name, itoa(artist.Plays), itoa(artist.Minutes), itoa(artist.Tracks),
		})
	}

	a.summary = fmt.Sprintf("Found %d artists and %d plays (%s)",
		len(artists), numListens, periodSummary(scope))
	return
}
