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
	"strings"

	"github.com/ademuri/listening-stats/internal/analysis"
	"github.com/ademuri/listening-stats/internal/playback"
	"github.com/spf13/cobra"
)

var featuredCmd = &cobra.Command{
	Use:   "featured",
	Short: "Ranks the artists credited as featured on your plays",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyser(cmd.OutOrStdout(), FeaturedAnalyzer{AnalyserConfig{NumToReturn: numToReturn()}})
	},
}

func init() {
	rootCmd.AddCommand(featuredCmd)
}

type FeaturedAnalyzer struct {
	Config AnalyserConfig
}

func (f FeaturedAnalyzer) GetName() string {
	return "Featured artists"
}

func (f FeaturedAnalyzer) GetResults(store *playback.Store, scope analysis.Scope) (a Analysis, err error) {
	featured := analysis.FeaturedArtists(store.Events(), scope, f.Config.NumToReturn)
	if len(featured) == 0 {
		return a, ErrSkipReport
	}

	a.results = [][]string{{"Artist", "Plays", "Tracks", "Weight"}}
	for _, artist := range featured {
		a.results = append(a.results, []string{
			artist.Name, itoa(artist.Plays), itoa(artist.Tracks), strings.Repeat("*", artist.Size),
		})
	}
	a.summary = periodSummary(scope)
	return
}
