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
	"github.com/ademuri/listening-stats/internal/session"
	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Reconstructs listening sessions and buckets them by length",
	Long: `A session is a run of plays with no more than 20 minutes between the starts of
consecutive plays. Sessions whose plays add up to more than two hours are marathons.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyser(cmd.OutOrStdout(), SessionsAnalyzer{})
	},
}

var personalityCmd = &cobra.Command{
	Use:   "personality",
	Short: "Scores four listening traits for the selected range",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyser(cmd.OutOrStdout(), PersonalityAnalyzer{})
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(personalityCmd)
}

type SessionsAnalyzer struct{}

func (SessionsAnalyzer) GetName() string {
	return "Sessions"
}

func bucketRows(buckets []session.LengthBucket) [][]string {
	var rows [][]string
	for _, b := range buckets {
		rows = append(rows, []string{b.Label, itoa(b.Count)})
	}
	return rows
}

func (SessionsAnalyzer) GetResults(store *playback.Store, scope analysis.Scope) (a Analysis, err error) {
	events := store.Events()
	dive := analysis.DeepDiveSessions(events, scope)
	if dive.Sessions == 0 {
		return a, ErrSkipReport
	}
	lengths := analysis.SessionLengthAnalysis(events, scope)

	var b strings.Builder
	fmt.Fprintf(&b, "%d sessions, %d marathons (%s)\n", dive.Sessions, dive.Marathons, periodSummary(scope))
	fmt.Fprintf(&b, "Average %s, median %s, total %s\n",
		formatMinutes(lengths.AverageMinutes), formatMinutes(lengths.MedianMinutes), formatMinutes(lengths.TotalMinutes))
	if l := dive.Longest; l != nil {
		fmt.Fprintf(&b, "Longest: %s on %s, %d plays of %s\n",
			formatMinutes(l.Minutes), l.Start.Format("2006-01-02 15:04"), l.Plays, strings.Join(l.Artists, ", "))
	}
	if dive.PeakStartHour != "" {
		fmt.Fprintf(&b, "Sessions most often start at %s\n", dive.PeakStartHour)
	}
	if dive.TopMarathoner != "" {
		fmt.Fprintf(&b, "Most played in marathons: %s\n", dive.TopMarathoner)
	}
	b.WriteString(renderTable([]string{"Deep dive", "Sessions"}, bucketRows(dive.Buckets)))
	b.WriteString(renderTable([]string{"Length", "Sessions"}, bucketRows(lengths.Buckets)))
	a.BodyOverride = b.String()
	return
}

type PersonalityAnalyzer struct{}

func (PersonalityAnalyzer) GetName() string {
	return "Listening personality"
}

func (PersonalityAnalyzer) GetResults(store *playback.Store, scope analysis.Scope) (a Analysis, err error) {
	p := analysis.ListeningPersonality(store.Events(), scope)
	if !p.HasData {
		return a, ErrSkipReport
	}
	a.results = [][]string{{"Trait", "Score", "Description"}}
	for _, t := range []analysis.Trait{p.Session, p.Consistency, p.Weekend, p.TimeOfDay} {
		a.results = append(a.results, []string{t.Name, itoa(t.Score), t.Description})
	}
	a.summary = periodSummary(scope)
	return
}
