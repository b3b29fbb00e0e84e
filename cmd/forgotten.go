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
	"time"

	"github.com/ademuri/listening-stats/internal/analysis"
	"github.com/ademuri/listening-stats/internal/playback"
	"github.com/spf13/cobra"
)

// forgottenBounds are the date flags, resolved against the reference time
// once the scope is known.
type forgottenBounds struct {
	LastPlayAfter   string
	LastPlayBefore  string
	FirstPlayAfter  string
	FirstPlayBefore string
}

var forgottenConfig analysis.ForgottenConfig
var forgottenFlags forgottenBounds

var forgottenCmd = &cobra.Command{
	Use:   "forgotten",
	Short: "Surfaces artists and albums heavily played in the past but not recently",
	Long: `Identifies music that has fallen out of rotation based on dormancy and historical play counts.
The whole history is searched regardless of --range. Dates look like 'yyyy', 'yyyy-mm',
'yyyy-mm-dd' or an age like '90d'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if forgottenConfig.SortBy != "dormancy" && forgottenConfig.SortBy != "plays" {
			return fmt.Errorf("sort must be 'dormancy' or 'plays', got %q", forgottenConfig.SortBy)
		}
		return runAnalyser(cmd.OutOrStdout(), ForgottenAnalyzer{Config: forgottenConfig, Bounds: forgottenFlags})
	},
}

func init() {
	rootCmd.AddCommand(forgottenCmd)

	forgottenCmd.Flags().IntVar(&forgottenConfig.MinArtistPlays, "min-artist", 10, "Minimum plays for artist inclusion")
	forgottenCmd.Flags().IntVar(&forgottenConfig.MinAlbumPlays, "min-album", 5, "Minimum plays for album inclusion")
	forgottenCmd.Flags().IntVar(&forgottenConfig.ResultsPerBand, "results", 10, "Max results shown per interest band")
	forgottenCmd.Flags().StringVar(&forgottenConfig.SortBy, "sort", "dormancy", "Sort order: 'dormancy' or 'plays'")
	forgottenCmd.Flags().StringVar(&forgottenFlags.LastPlayAfter, "last_play_after", "", "Only include entities last played after this date")
	forgottenCmd.Flags().StringVar(&forgottenFlags.LastPlayBefore, "last_play_before", "90d", "Only include entities last played before this date")
	forgottenCmd.Flags().StringVar(&forgottenFlags.FirstPlayAfter, "first_play_after", "", "Only include entities first played after this date")
	forgottenCmd.Flags().StringVar(&forgottenFlags.FirstPlayBefore, "first_play_before", "", "Only include entities first played before this date")
}

type ForgottenAnalyzer struct {
	Config analysis.ForgottenConfig
	Bounds forgottenBounds
}

func (f ForgottenAnalyzer) GetName() string {
	return "Forgotten"
}

func (f ForgottenAnalyzer) resolve(scope analysis.Scope) (analysis.ForgottenConfig, error) {
	cfg := f.Config
	for _, b := range []struct {
		name  string
		value string
		dest  *time.Time
	}{
		{"last_play_after", f.Bounds.LastPlayAfter, &cfg.LastPlayAfter},
		{"last_play_before", f.Bounds.LastPlayBefore, &cfg.LastPlayBefore},
		{"first_play_after", f.Bounds.FirstPlayAfter, &cfg.FirstPlayAfter},
		{"first_play_before", f.Bounds.FirstPlayBefore, &cfg.FirstPlayBefore},
	} {
		t, err := parseDateOrAge(b.value, scope.Now, scope.Location)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s: %w", b.name, err)
		}
		*b.dest = t
	}
	return cfg, nil
}

func (f ForgottenAnalyzer) GetResults(store *playback.Store, scope analysis.Scope) (a Analysis, err error) {
	cfg, err := f.resolve(scope)
	if err != nil {
		return a, err
	}
	events := store.Events()
	artists := analysis.GetForgottenArtists(events, cfg, scope.Now)
	albums := analysis.GetForgottenAlbums(events, cfg, scope.Now)
	if len(artists) == 0 && len(albums) == 0 {
		return a, ErrSkipReport
	}

	var sb strings.Builder
	sb.WriteString("## Forgotten Artists\n")
	for _, band := range analysis.Bands {
		sb.WriteString(formatArtistBand(artists, band))
	}
	sb.WriteString("\n## Forgotten Albums\n")
	for _, band := range analysis.Bands {
		sb.WriteString(formatAlbumBand(albums, band))
	}

	a.BodyOverride = sb.String()
	return a, nil
}

func formatArtistBand(results map[string][]analysis.ForgottenArtist, band string) string {
	items, ok := results[band]
	if !ok || len(items) == 0 {
		return ""
	}

	var rows [][]string
	for _, a := range items {
		rows = append(rows, []string{
			a.Artist,
			itoa(a.Plays),
			a.LastPlay.Format(dateFormat),
			itoa(a.DaysSinceLast),
		})
	}
	return fmt.Sprintf("\n### %s Interest (%d+ plays)\n", band, analysis.GetThreshold(band, true)) +
		renderTable([]string{"Artist", "Plays", "Last Play", "Days"}, rows)
}

func formatAlbumBand(results map[string][]analysis.ForgottenAlbum, band string) string {
	items, ok := results[band]
	if !ok || len(items) == 0 {
		return ""
	}

	var rows [][]string
	for _, a := range items {
		rows = append(rows, []string{
			a.Artist,
			a.Album,
			itoa(a.Plays),
			a.LastPlay.Format(dateFormat),
			itoa(a.DaysSinceLast),
		})
	}
	return fmt.Sprintf("\n### %s Interest (%d+ plays)\n", band, analysis.GetThreshold(band, false)) +
		renderTable([]string{"Artist", "Album", "Plays", "Last Play", "Days"}, rows)
}
