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
	"regexp"
	"strconv"
	"time"
)

// ParsedDate is a date string with the precision it was written in.
type ParsedDate struct {
	Date  time.Time
	Year  bool
	Month bool
	Day   bool
}

func getImplicitDateRange(ds string) (start time.Time, end time.Time, err error) {
	date, err := parseSingleDatestring(ds)
	if err != nil {
		return
	}

	start = date.Date
	switch {
	case date.Year:
		end = start.AddDate(1, 0, 0)

	case date.Month:
		end = start.AddDate(0, 1, 0)

	case date.Day:
		end = start.AddDate(0, 0, 1)

	default:
		err = fmt.Errorf("Invalid format: %q", ds)
	}

	return
}

func parseSingleDatestring(ds string) (date ParsedDate, err error) {
	matched, err := regexp.Match(`^\d{4}$`, []byte(ds))
	if err != nil {
		err = fmt.Errorf("Parsing datestring as year: %w", err)
		return
	}
	if matched {
		date.Date, err = time.Parse("2006", ds)
		if err != nil {
			err = fmt.Errorf("Parsing datestring as year: %w", err)
			return
		}
		date.Year = true
		return
	}

	matched, err = regexp.Match(`^\d{4}-\d{2}$`, []byte(ds))
	if err != nil {
		err = fmt.Errorf("Parsing datestring as month: %w", err)
		return
	}
	if matched {
		date.Date, err = time.Parse("2006-01", ds)
		if err != nil {
			err = fmt.Errorf("Parsing datestring as month: %w", err)
			return
		}
		date.Month = true
		return
	}

	matched, err = regexp.Match(`^\d{4}-\d{2}-\d{2}$`, []byte(ds))
	if err != nil {
		err = fmt.Errorf("Parsing datestring as day: %w", err)
		return
	}
	if matched {
		date.Date, err = time.Parse("2006-01-02", ds)
		if err != nil {
			err = fmt.Errorf("Parsing datestring as day: %w", err)
			return
		}
		date.Day = true
		return
	}

	err = fmt.Errorf("Invalid format: %q", ds)
	return
}

// inLocation moves a parsed UTC calendar date to the same wall time in loc.
func inLocation(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

// parseReferenceTime resolves --as_of. An empty string means now; otherwise
// the result is the last instant of the named year, month or day in loc.
func parseReferenceTime(ds string, now time.Time, loc *time.Location) (time.Time, error) {
	if ds == "" {
		return now.In(loc), nil
	}
	_, end, err := getImplicitDateRange(ds)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid as_of: %w", err)
	}
	return inLocation(end, loc).Add(-time.Nanosecond), nil
}

var agePattern = regexp.MustCompile(`^(\d+)([dwmy])$`)

// parseDateOrAge accepts a date string or an age like "90d", "12w", "6m" or
// "2y", which is that long before now. An empty string is the zero time.
func parseDateOrAge(s string, now time.Time, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if m := agePattern.FindStringSubmatch(s); m != nil {
		amount, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("Parsing age %q: %w", s, err)
		}
		switch m[2] {
		case "d":
			return now.AddDate(0, 0, -amount), nil
		case "w":
			return now.AddDate(0, 0, -amount*7), nil
		case "m":
			return now.AddDate(0, -amount, 0), nil
		}
		return now.AddDate(-amount, 0, 0), nil
	}
	pd, err := parseSingleDatestring(s)
	if err != nil {
		return time.Time{}, err
	}
	return inLocation(pd.Date, loc), nil
}
