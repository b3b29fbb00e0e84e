package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/ademuri/listening-stats/internal/aggregate"
	"github.com/ademuri/listening-stats/internal/playback"
	"github.com/ademuri/listening-stats/internal/stats"
	"github.com/ademuri/listening-stats/internal/timerange"
)

// Moving average windows offered by the artist trends view.
var TrendWindows = []int{4, 8, 12}

type ArtistTrend struct {
	Artist        string    `yaml:"artist"`
	Weekly        []int     `yaml:"weekly"`
	MovingAverage []float64 `yaml:"moving_average"`
}

type ArtistTrends struct {
	Weeks  []string      `yaml:"weeks"`
	Window int           `yaml:"window"`
	Series []ArtistTrend `yaml:"series"`
}

// ArtistTrendsFor follows the weekly plays of the top n artists over the last
// weeks weeks, smoothed with a trailing moving average of window weeks.
func ArtistTrendsFor(events []playback.PlayEvent, s Scope, n, weeks, window int) ArtistTrends {
	recent := timerange.Last(time.Duration(weeks)*7*timerange.Day, s.Now).Filter(events)
	trends := ArtistTrends{Window: window}
	for w := 1; w <= weeks; w++ {
		trends.Weeks = append(trends.Weeks, fmt.Sprintf("W%d", w))
	}

	var artists []string
	for _, b := range aggregate.GroupBy(recent, aggregate.ByArtist).Top(n) {
		artists = append(artists, b.Key)
	}
	series := aggregate.Weekly(recent, aggregate.ByArtist, artists, s.Now, weeks)
	for _, a := range artists {
		trends.Series = append(trends.Series, ArtistTrend{
			Artist:        a,
			Weekly:        series[a],
			MovingAverage: stats.MovingAverage(series[a], window),
		})
	}
	return trends
}

type TrackLengths struct {
	Buckets []aggregate.LengthBucket `yaml:"buckets"`

	// Durations in seconds over plays with a known duration.
	AverageSec  int  `yaml:"average_sec"`
	MedianSec   int  `yaml:"median_sec"`
	ShortestSec int  `yaml:"shortest_sec"`
	LongestSec  int  `yaml:"longest_sec"`
	HasData     bool `yaml:"has_data"`
}

// TrackLengthDistribution buckets plays in range by track duration.
func TrackLengthDistribution(events []playback.PlayEvent, s Scope) TrackLengths {
	current := s.Current(events)
	out := TrackLengths{Buckets: aggregate.TrackLengths(current)}

	var secs []float64
	for _, e := range current {
		if e.DurationMs > 0 {
			secs = append(secs, float64(e.DurationMs)/1000)
		}
	}
	d := stats.Describe(secs)
	if !d.Valid {
		return out
	}
	out.HasData = true
	out.AverageSec = int(math.Round(d.Mean))
	out.MedianSec = int(math.Round(d.Median))
	out.ShortestSec = int(math.Round(d.Min))
	out.LongestSec = int(math.Round(d.Max))
	return out
}
