package stats

import (
	"math"
	"testing"
	"time"

	"github.com/ademuri/listening-stats/internal/playback"
)

func onDay(day, hour int) playback.PlayEvent {
	return playback.PlayEvent{
		PlayedAt:   time.Date(2024, 3, day, hour, 0, 0, 0, time.UTC),
		TrackName:  "t",
		ArtistName: "a",
	}
}

func TestDescribe(t *testing.T) {
	s := Describe([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if !s.Valid || s.Count != 8 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if s.Mean != 5 || s.Variance != 4 || s.StdDev != 2 {
		t.Errorf("mean %v variance %v stddev %v", s.Mean, s.Variance, s.StdDev)
	}
	if s.CV != 40 {
		t.Errorf("CV = %v, want 40", s.CV)
	}
	if s.Median != 4.5 || s.Min != 2 || s.Max != 9 {
		t.Errorf("median %v min %v max %v", s.Median, s.Min, s.Max)
	}
}

func TestDescribeEmpty(t *testing.T) {
	if s := Describe(nil); s.Valid || s.Mean != 0 || s.CV != 0 {
		t.Errorf("empty summary should be zero and invalid: %+v", s)
	}
	if s := Describe([]float64{0, 0}); s.CV != 0 || math.IsNaN(s.CV) {
		t.Errorf("zero mean should give CV 0, got %v", s.CV)
	}
}

func TestMedianOdd(t *testing.T) {
	values := []float64{3, 1, 2}
	if got := Median(values); got != 2 {
		t.Errorf("Median = %v, want 2", got)
	}
	if values[0] != 3 {
		t.Errorf("Median must not reorder its input")
	}
}

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]int{2, 4, 6, 8}, 2)
	want := []float64{2, 3, 5, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("MovingAverage[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

// Ten calendar days, five of them with plays.
func TestConsistencyHalf(t *testing.T) {
	events := []playback.PlayEvent{
		onDay(1, 9), onDay(1, 20), onDay(3, 9), onDay(5, 9), onDay(8, 9), onDay(10, 9),
	}
	c := MeasureConsistency(events, time.UTC)
	if !c.Valid || c.ActiveDays != 5 || c.TotalDays != 10 {
		t.Fatalf("unexpected consistency: %+v", c)
	}
	if c.Percent != 50 {
		t.Errorf("Percent = %v, want 50", c.Percent)
	}
	if c.Daily.Mean != 1.2 {
		t.Errorf("daily mean = %v, want 1.2", c.Daily.Mean)
	}
}

func TestConsistencyBounds(t *testing.T) {
	full := []playback.PlayEvent{onDay(1, 9), onDay(2, 9), onDay(3, 9)}
	if got := MeasureConsistency(full, time.UTC).Percent; got != 100 {
		t.Errorf("every day active: Percent = %v, want 100", got)
	}
	if got := MeasureConsistency([]playback.PlayEvent{onDay(4, 1)}, time.UTC).Percent; got != 100 {
		t.Errorf("single day: Percent = %v, want 100", got)
	}
	sparse := []playback.PlayEvent{onDay(1, 9), onDay(30, 9)}
	if got := MeasureConsistency(sparse, time.UTC).Percent; got <= 0 || got >= 100 {
		t.Errorf("sparse: Percent = %v, want within (0, 100)", got)
	}
	if c := MeasureConsistency(nil, time.UTC); c.Valid || c.Percent != 0 {
		t.Errorf("empty input: %+v", c)
	}
}

func TestCurrentStreak(t *testing.T) {
	events := []playback.PlayEvent{onDay(1, 9), onDay(3, 9), onDay(4, 9), onDay(5, 23)}
	now := time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)
	if got := CurrentStreak(events, now, time.UTC); got != 3 {
		t.Errorf("CurrentStreak = %d, want 3", got)
	}
	if got := CurrentStreak(events, now.AddDate(0, 0, 1), time.UTC); got != 0 {
		t.Errorf("no play today: CurrentStreak = %d, want 0", got)
	}
	if got := LongestStreak(events, time.UTC); got != 3 {
		t.Errorf("LongestStreak = %d, want 3", got)
	}
}

func TestCurrentStreakTimezone(t *testing.T) {
	// 23:00 UTC on the 5th is already the 6th in Tokyo.
	tokyo := time.FixedZone("JST", 9*3600)
	events := []playback.PlayEvent{onDay(5, 23)}
	now := time.Date(2024, 3, 6, 12, 0, 0, 0, tokyo)
	if got := CurrentStreak(events, now, tokyo); got != 1 {
		t.Errorf("CurrentStreak in Tokyo = %d, want 1", got)
	}
}

func TestVelocity(t *testing.T) {
	var events []playback.PlayEvent
	// Days 1-7 have one play each, days 8-14 have three.
	for day := 1; day <= 14; day++ {
		n := 1
		if day > 7 {
			n = 3
		}
		for i := 0; i < n; i++ {
			events = append(events, onDay(day, 8+i))
		}
	}
	v := MeasureVelocity(events, time.UTC)
	if !v.Valid || len(v.Daily) != 14 {
		t.Fatalf("unexpected velocity: %+v", v)
	}
	if v.Average != 2 || v.Max != 3 || v.Min != 1 {
		t.Errorf("avg %v max %d min %d", v.Average, v.Max, v.Min)
	}
	if v.Last7 != 3 || v.Prev7 != 1 || v.Trend != 200 {
		t.Errorf("last7 %v prev7 %v trend %d", v.Last7, v.Prev7, v.Trend)
	}
	if v.LowZone != 1.4 || math.Abs(v.HighZone-2.6) > 1e-9 {
		t.Errorf("zones %v %v", v.LowZone, v.HighZone)
	}

	if empty := MeasureVelocity(nil, time.UTC); empty.Valid {
		t.Errorf("empty velocity should be invalid")
	}
}

func TestVelocityShortHistory(t *testing.T) {
	v := MeasureVelocity([]playback.PlayEvent{onDay(1, 1), onDay(2, 1)}, time.UTC)
	if v.Prev7 != 0 || v.Trend != 100 {
		t.Errorf("prev7 %v trend %d", v.Prev7, v.Trend)
	}
}
