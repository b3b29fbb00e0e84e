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
	"io"

	"github.com/ademuri/listening-stats/internal/analysis"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generates a comprehensive listening report",
	Long:  `Runs every view over the selected range and prints the result as YAML.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(out io.Writer) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	report := analysis.GenerateReport(env.store, env.scope, analysis.ReportOptions{TopN: numToReturn()})

	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return encoder.Close()
}
