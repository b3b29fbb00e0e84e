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
	"context"
	"fmt"
	"time"

	"github.com/ademuri/listening-stats/internal/analysis"
	"github.com/ademuri/listening-stats/internal/loader"
	"github.com/ademuri/listening-stats/internal/playback"
	"github.com/ademuri/listening-stats/internal/timerange"
	"github.com/spf13/viper"
)

// environment is what every command needs: the loaded history and the
// scope selected by the persistent flags.
type environment struct {
	store *playback.Store
	scope analysis.Scope
}

// now is the reference time when --as_of is empty.
var now = time.Now

func loadScope() (analysis.Scope, error) {
	loc := time.Local
	if tz := viper.GetString("timezone"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			return analysis.Scope{}, fmt.Errorf("loading timezone %q: %w", tz, err)
		}
		loc = l
	}

	r, err := timerange.Parse(viper.GetString("range"))
	if err != nil {
		return analysis.Scope{}, err
	}

	ref, err := parseReferenceTime(viper.GetString("as_of"), now(), loc)
	if err != nil {
		return analysis.Scope{}, err
	}
	return analysis.Scope{Range: r, Now: ref, Location: loc}, nil
}

// loadEnvironment validates the flags before touching any source, so a bad
// range or date is an error rather than an empty result. A source that
// cannot be loaded only produces a warning.
func loadEnvironment() (environment, error) {
	scope, err := loadScope()
	if err != nil {
		return environment{}, err
	}
	l := loader.New(loader.WithLocation(scope.Location))
	store := l.LoadOrEmpty(context.Background(), viper.GetStringSlice("source"))
	return environment{store: store, scope: scope}, nil
}

func numToReturn() int {
	return viper.GetInt("number")
}
