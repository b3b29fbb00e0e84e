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
	"testing"
	"time"

	"github.com/ademuri/listening-stats/internal/analysis"
	"github.com/ademuri/listening-stats/internal/playback"
	"github.com/ademuri/listening-stats/internal/timerange"
)

func artistPlays(now time.Time, counts map[string]int) *playback.Store {
	var events []playback.PlayEvent
	for artist, n := range counts {
		for i := 0; i < n; i++ {
			events = append(events, playback.PlayEvent{
				PlayedAt:   now.Add(-time.Duration(i+1) * time.Hour),
				TrackName:  "Track",
				ArtistName: artist,
				DurationMs: 60000,
			})
		}
	}
	return playback.NewStore(events)
}

func TestTopArtistsAnalyzer(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	scope := analysis.Scope{Range: timerange.Month, Now: now, Location: time.UTC}
	store := artistPlays(now, map[string]int{"A": 3, "B": 2, "C": 1})

	res, err := TopArtistsAnalyzer{}.SetConfig(AnalyserConfig{NumToReturn: 2}).GetResults(store, scope)
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if len(res.results) != 3 {
		t.Fatalf("Expected a header and 2 rows, got %v", res.results)
	}
	if res.results[1][1] != "A" || res.results[1][2] != "3" || res.results[2][1] != "B" {
		t.Errorf("Unexpected ranking: %v", res.results)
	}
	if !strings.HasPrefix(res.summary, "Found 3 artists and 6 plays") {
		t.Errorf("Unexpected summary %q", res.summary)
	}
}

func TestTopArtistsAnalyzerFilterThreshold(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	scope := analysis.Scope{Range: timerange.Month, Now: now, Location: time.UTC}
	store := artistPlays(now, map[string]int{"A": 3, "B": 2, "C": 1})

	res, err := TopArtistsAnalyzer{}.SetConfig(AnalyserConfig{FilterThreshold: 1}).GetResults(store, scope)
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if len(res.results) != 3 {
		t.Fatalf("Expected C to be filtered out, got %v", res.results)
	}
	for _, row := range res.results[1:] {
		if row[1] == "C" {
			t.Errorf("C has one play and should be filtered: %v", res.results)
		}
	}
}

func TestTopArtistsAnalyzerByMinutes(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	scope := analysis.Scope{Range: timerange.Month, Now: now, Location: time.UTC}
	events := []playback.PlayEvent{
		{PlayedAt: now.Add(-time.Hour), TrackName: "Short", ArtistName: "A", DurationMs: 60000},
		{PlayedAt: now.Add(-2 * time.Hour), TrackName: "Short", ArtistName: "A", DurationMs: 60000},
		{PlayedAt: now.Add(-3 * time.Hour), TrackName: "Long", ArtistName: "B", DurationMs: 600000},
	}

	res, err := TopArtistsAnalyzer{Order: analysis.ByMinutes}.GetResults(playback.NewStore(events), scope)
	if err != nil {
		t.Fatalf("GetResults: %v", err)
	}
	if res.results[1][1] != "B" {
		t.Errorf("Expected B first by minutes, got %v", res.results)
	}
}
