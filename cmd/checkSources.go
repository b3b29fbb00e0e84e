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
	"fmt"

	"time"

	"github.com/ademuri/listening-stats/internal/analysis"
	"github.com/ademuri/listening-stats/internal/playback"
	"github.com/ademuri/listening-stats/internal/timerange"
	"github.com/spf13/cobra"
)

var daysToCheck int

var checkSourcesCmd = &cobra.Command{
	Use:   "check-sources",
	Short: "Checks for gaps in play history",
	Long: `Counts plays over a number of days (default 14) before the reference time to detect a
history export that stopped covering work hours (Mon-Fri 9-5), off hours or weekends.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if daysToCheck < 1 {
			return fmt.Errorf("days must be positive")
		}
		return runAnalyser(cmd.OutOrStdout(), CheckSourcesAnalyzer{Days: daysToCheck})
	},
}

func init() {
	rootCmd.AddCommand(checkSourcesCmd)
	checkSourcesCmd.Flags().IntVarP(&daysToCheck, "days", "D", 14, "Number of days to check back")
}

type CheckSourcesAnalyzer struct {
	Days int
}

func (c CheckSourcesAnalyzer) GetName() string {
	return "Source check"
}

// sourceDay splits one calendar day's plays into work hours and the rest.
type sourceDay struct {
	Date       time.Time
	WorkHours  int // Mon-Fri 09:00 - 17:00
	OtherHours int
}

func isWorkHour(t time.Time) bool {
	hour := t.Hour()
	return !analysis.IsWeekend(t.Weekday()) && hour >= 9 && hour < 17
}

// countSourceDays returns one entry per calendar day from days before now's
// date through now's date, oldest first.
func countSourceDays(events []playback.PlayEvent, days int, now time.Time, loc *time.Location) []sourceDay {
	now = now.In(loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	start := todayStart.AddDate(0, 0, -days)

	var out []sourceDay
	index := make(map[string]int)
	for d := start; !d.After(now); d = d.AddDate(0, 0, 1) {
		index[d.Format(dateFormat)] = len(out)
		out = append(out, sourceDay{Date: d})
	}

	for _, e := range timerange.Between(start, now.Add(time.Nanosecond)).Filter(events) {
		t := e.PlayedAt.In(loc)
		i, ok := index[t.Format(dateFormat)]
		if !ok {
			continue
		}
		if isWorkHour(t) {
			out[i].WorkHours++
		} else {
			out[i].OtherHours++
		}
	}
	return out
}

// gapStreaks counts trailing days without plays: weekdays without work-hour
// plays, any day without off-hour plays, and weekend days without any plays.
func gapStreaks(days []sourceDay) (work, other, weekend int) {
	for i := len(days) - 1; i >= 0; i-- {
		if days[i].OtherHours != 0 {
			break
		}
		other++
	}

	for i := len(days) - 1; i >= 0; i-- {
		if analysis.IsWeekend(days[i].Date.Weekday()) {
			continue
		}
		if days[i].WorkHours != 0 {
			break
		}
		work++
	}

	for i := len(days) - 1; i >= 0; i-- {
		if !analysis.IsWeekend(days[i].Date.Weekday()) {
			continue
		}
		if days[i].OtherHours+days[i].WorkHours != 0 {
			break
		}
		weekend++
	}
	return
}

func (c CheckSourcesAnalyzer) GetResults(store *playback.Store, scope analysis.Scope) (Analysis, error) {
	loc := scope.Location
	if loc == nil {
		loc = time.Local
	}
	days := countSourceDays(store.Events(), c.Days, scope.Now, loc)
	workStreak, otherStreak, weekendStreak := gapStreaks(days)

	if workStreak <= 3 && otherStreak <= 3 && weekendStreak < 4 {
		return Analysis{}, ErrSkipReport
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Source check (Timezone: %s)\n", loc.String())
	fmt.Fprintln(&buf, "Work Hours: Mon-Fri, 09:00 - 17:00")
	fmt.Fprintln(&buf)

	if workStreak > 3 {
		fmt.Fprintf(&buf, "Potential work source gap: no plays during work hours for the last %d working days.\n", workStreak)
	}
	if weekendStreak >= 4 {
		fmt.Fprintf(&buf, "Potential weekend source gap: no plays during weekends for the last %d weekend days.\n", weekendStreak)
	}
	if otherStreak > 3 {
		fmt.Fprintf(&buf, "Potential off-hours source gap: no plays outside work hours for the last %d days.\n", otherStreak)
	}
	fmt.Fprintln(&buf)

	var rows [][]string
	for _, d := range days {
		rows = append(rows, []string{
			d.Date.Format(dateFormat),
			d.Date.Weekday().String()[:3],
			itoa(d.WorkHours),
			itoa(d.OtherHours),
		})
	}
	buf.WriteString(renderTable([]string{"Date", "Day", "Work Hours (9-5)", "Other Hours"}, rows))

	return Analysis{BodyOverride: buf.String()}, nil
}
