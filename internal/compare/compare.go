// Package compare implements the period-over-period metrics shared by every
// view: percent change, diversity and rank movement.
package compare

import "math"

// PercentChange returns the change from previous to current as a whole
// percentage. A zero previous value yields 100 when current is positive and
// 0 otherwise.
func PercentChange(current, previous float64) int {
	return int(PercentChangeRounded(current, previous, 0))
}

// PercentChangeRounded is PercentChange rounded to the given number of
// decimal places.
func PercentChangeRounded(current, previous float64, places int) float64 {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return Round((current-previous)/previous*100, places)
}

// Round rounds x to the given number of decimal places. Halves round up
// (towards positive infinity), so -2.5 becomes -2.
func Round(x float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Floor(x*scale+0.5) / scale
}

// Percent returns part/whole*100 rounded to a whole number, or 0 for an
// empty whole.
func Percent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(Round(float64(part)/float64(whole)*100, 0))
}

// DiversityScore is the share of unique artists among plays, as a whole
// percentage. It is 0 when there are no plays.
func DiversityScore(uniqueArtists, plays int) int {
	return Percent(uniqueArtists, plays)
}
