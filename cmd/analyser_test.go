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
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ademuri/listening-stats/internal/analysis"
	"github.com/ademuri/listening-stats/internal/playback"
)

func TestAnalysisString(t *testing.T) {
	a := Analysis{
		results: [][]string{{"Artist", "Plays"}, {"Boards of Canada", "12"}},
		summary: "Found 1 artists",
	}
	out := a.String()
	if !strings.Contains(out, "Boards of Canada") || !strings.Contains(out, "12") {
		t.Errorf("Table is missing its row: %s", out)
	}
	if !strings.HasSuffix(out, "Found 1 artists\n") {
		t.Errorf("Summary should follow the table: %s", out)
	}
}

func TestAnalysisStringHeaderOnly(t *testing.T) {
	a := Analysis{results: [][]string{{"Artist", "Plays"}}, summary: "Nothing"}
	if got := a.String(); got != "Nothing\n" {
		t.Errorf("Expected only the summary, got %q", got)
	}
}

func TestAnalysisBodyOverride(t *testing.T) {
	a := Analysis{
		results:      [][]string{{"Artist"}, {"ignored"}},
		summary:      "ignored",
		BodyOverride: "custom body",
	}
	if got := a.String(); got != "custom body" {
		t.Errorf("Expected the override, got %q", got)
	}
}

type skippingAnalyser struct{}

func (skippingAnalyser) GetName() string { return "Skipper" }

func (skippingAnalyser) GetResults(*playback.Store, analysis.Scope) (Analysis, error) {
	return Analysis{}, ErrSkipReport
}

type failingAnalyser struct{}

func (failingAnalyser) GetName() string { return "Failer" }

func (failingAnalyser) GetResults(*playback.Store, analysis.Scope) (Analysis, error) {
	return Analysis{}, errors.New("boom")
}

// setFlag sets a persistent flag for the duration of the test.
func setFlag(t *testing.T, name, value string) {
	t.Helper()
	f := rootCmd.PersistentFlags().Lookup(name)
	old := f.Value.String()
	if err := f.Value.Set(value); err != nil {
		t.Fatalf("setting --%s: %v", name, err)
	}
	t.Cleanup(func() { f.Value.Set(old) })
}

func TestRunAnalyser(t *testing.T) {
	setFlag(t, "range", "1m")
	setFlag(t, "timezone", "UTC")

	var out bytes.Buffer
	if err := runAnalyser(&out, skippingAnalyser{}); err != nil {
		t.Fatalf("runAnalyser: %v", err)
	}
	if got := out.String(); got != "Skipper: nothing to report\n" {
		t.Errorf("Unexpected output %q", got)
	}

	err := runAnalyser(&out, failingAnalyser{})
	if err == nil || err.Error() != "Failer: boom" {
		t.Errorf("Expected a wrapped error, got %v", err)
	}
}

func TestRunAnalyserInvalidRange(t *testing.T) {
	setFlag(t, "range", "2w")

	err := runAnalyser(&bytes.Buffer{}, skippingAnalyser{})
	if err == nil || !strings.Contains(err.Error(), "unknown time range") {
		t.Errorf("Expected an unknown range error, got %v", err)
	}
}
