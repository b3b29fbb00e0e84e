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
	"fmt"
	"io"

	"github.com/ademuri/listening-stats/internal/analysis"
	"github.com/ademuri/listening-stats/internal/playback"
	"github.com/olekukonko/tablewriter"
)

// ErrSkipReport is returned by an Analyser that has nothing worth printing.
var ErrSkipReport = errors.New("nothing to report")

type Analysis struct {
	results      [][]string
	summary      string
	BodyOverride string
}

type AnalyserConfig struct {
	// Number of results to return, default is all results.
	NumToReturn int

	// Only return results with more plays than this. Default is all results.
	FilterThreshold int64
}

type Analyser interface {
	GetResults(store *playback.Store, scope analysis.Scope) (Analysis, error)

	GetName() string
}

func (a Analysis) String() string {
	if a.BodyOverride != "" {
		return a.BodyOverride
	}
	out := new(bytes.Buffer)
	if len(a.results) > 1 {
		table := tablewriter.NewWriter(out)
		table.Header(a.results[0])
		for _, row := range a.results[1:] {
			if err := table.Append(row); err != nil {
				return fmt.Sprintf("Error rendering table: %v", err)
			}
		}
		if err := table.Render(); err != nil {
			return fmt.Sprintf("Error rendering table: %v", err)
		}
	}
	if a.summary != "" {
		fmt.Fprintf(out, "%s\n", a.summary)
	}
	return out.String()
}

// runAnalyser loads the configured history and prints one analysis.
func runAnalyser(out io.Writer, a Analyser) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	res, err := a.GetResults(env.store, env.scope)
	if errors.Is(err, ErrSkipReport) {
		fmt.Fprintf(out, "%s: nothing to report\n", a.GetName())
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w", a.GetName(), err)
	}
	fmt.Fprint(out, res)
	return nil
}

// renderTable is Analysis.String for views that print several tables.
func renderTable(header []string, rows [][]string) string {
	return Analysis{results: append([][]string{header}, rows...)}.String()
}
