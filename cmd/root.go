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
	"os"
	"strings"

	"github.com/ademuri/listening-stats/internal/logging"
	"github.com/ademuri/listening-stats/internal/timerange"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string
var sources []string
var timezone string
var asOf string
var rangeToken string
var number int
var logLevel string
var logFormat string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "listening-stats",
	Short: "Analyses a listening history exported as CSV",
	Long: `Loads one or more play history CSVs (local files or http(s) URLs) and
prints statistics about them: top artists and tracks, sessions, discovery,
habits and listening patterns.

Most commands look at one time range, selected with --range (` + rangeTokens() + `),
ending at --as_of (default: now).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Init(logging.Config{
			Level:  viper.GetString("log_level"),
			Format: viper.GetString("log_format"),
		})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default is $HOME/.listening-stats.yaml)")

	rootCmd.PersistentFlags().StringSliceVarP(
		&sources, "source", "s", nil, "play history CSV: a file path or http(s) URL (repeatable)")
	viper.BindPFlag("source", rootCmd.PersistentFlags().Lookup("source"))

	rootCmd.PersistentFlags().StringVar(
		&timezone, "timezone", "", "IANA time zone for calendar bucketing (default is the local zone)")
	viper.BindPFlag("timezone", rootCmd.PersistentFlags().Lookup("timezone"))

	rootCmd.PersistentFlags().StringVar(
		&asOf, "as_of", "", "reference date, as 'yyyy', 'yyyy-mm' or 'yyyy-mm-dd' (default is now)")
	viper.BindPFlag("as_of", rootCmd.PersistentFlags().Lookup("as_of"))

	rootCmd.PersistentFlags().StringVarP(
		&rangeToken, "range", "r", string(timerange.DefaultRange), "time range: "+rangeTokens())
	viper.BindPFlag("range", rootCmd.PersistentFlags().Lookup("range"))

	rootCmd.PersistentFlags().IntVarP(
		&number, "number", "n", 10, "number of results to return")
	viper.BindPFlag("number", rootCmd.PersistentFlags().Lookup("number"))

	rootCmd.PersistentFlags().StringVar(&logLevel, "log_level", "info", "log level: debug, info, warn, error")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log_level"))

	rootCmd.PersistentFlags().StringVar(&logFormat, "log_format", "console", "log format: console or json")
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log_format"))
}

func rangeTokens() string {
	var tokens []string
	for _, r := range timerange.Ranges() {
		tokens = append(tokens, string(r))
	}
	return strings.Join(tokens, ", ")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		// Search config in home directory with name ".listening-stats" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".listening-stats")
	}

	// LISTENING_STATS_SOURCE, LISTENING_STATS_RANGE, ...
	viper.SetEnvPrefix("listening_stats")
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		logging.Debug().Str("file", viper.ConfigFileUsed()).Msg("using config file")
	}

	// See https://github.com/spf13/viper/pull/852
	rootCmd.Flags().VisitAll(func(f *pflag.Flag) {
		if viper.IsSet(f.Name) && viper.GetString(f.Name) != "" {
			rootCmd.Flags().Set(f.Name, viper.GetString(f.Name))
		}
	})
}
