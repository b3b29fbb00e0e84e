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
	"strconv"
	"time"

	"github.com/ademuri/listening-stats/internal/analysis"
	"github.com/ademuri/listening-stats/internal/compare"
)

const dateFormat = "2006-01-02"

// formatChange renders a percent change with its sign, e.g. +67% or -40%.
func formatChange(pct int) string {
	if pct > 0 {
		return fmt.Sprintf("+%d%%", pct)
	}
	return fmt.Sprintf("%d%%", pct)
}

func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

func formatMovement(m compare.Movement, places int) string {
	switch m {
	case "":
		return ""
	case compare.MovementUp:
		return fmt.Sprintf("%s %d", m.Symbol(), places)
	case compare.MovementDown:
		return fmt.Sprintf("%s %d", m.Symbol(), -places)
	}
	return m.Symbol()
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// periodSummary describes the scope, e.g. "Last Month, ending 2024-06-30".
func periodSummary(scope analysis.Scope) string {
	end := scope.Now
	if end.IsZero() {
		end = time.Now()
	}
	if scope.Location != nil {
		end = end.In(scope.Location)
	}
	return fmt.Sprintf("%s, ending %s", scope.Label(), end.Format(dateFormat))
}
