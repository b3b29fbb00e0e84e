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

var topAlbumsCmd = &cobra.Command{
	Use:   "top-albums",
	Short: "Gets the top albums of the selected range",
	Long:  `Each album is compared with its plays in the equal-length period before the selected range.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyser(cmd.OutOrStdout(), TopAlbumsAnalyzer{AnalyserConfig{NumToReturn: numToReturn()}})
	},
}

func init() {
	rootCmd.AddCommand(topAlbumsCmd)
}

type TopAlbumsAnalyzer struct {
	Config AnalyserConfig
}

func (t TopAlbumsAnalyzer) GetName() string {
	return "Top albums"
}

func (t TopAlbumsAnalyzer) GetResults(store *playback.Store, scope analysis.Scope) (a Analysis, err error) {
	gallery := analysis.TopAlbums(store.Events(), scope, t.Config.NumToReturn)

	a.results = [][]string{{"Rank", "Album", "Artist", "Plays", "Tracks", "Change"}}
	for _, album := range gallery.Albums {
		change := ""
		switch {
		case album.New:
			change = "NEW"
		case album.Change != nil:
			change = formatChange(*album.Change)
		}
		a.results = append(a.results, []string{
			itoa(album.Rank), album.Album, album.Artist, itoa(album.Plays), itoa(album.Tracks), change,
		})
	}

	a.summary = fmt.Sprintf("Found %d plays (%s)", gallery.Plays, periodSummary(scope))
	if gallery.HasPrevious {
		a.summary = fmt.Sprintf("Found %d plays, %s on the previous period (%s)",
			gallery.Plays, formatChange(gallery.Change), periodSummary(scope))
	}
	return
}
