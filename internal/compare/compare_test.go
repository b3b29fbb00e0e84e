package compare

import "testing"

func TestPercentChange(t *testing.T) {
	tests := []struct {
		current, previous float64
		want              int
	}{
		{0, 0, 0},
		{5, 0, 100},
		{10, 5, 100},
		{5, 10, -50},
		{0, 10, -100},
		{7, 7, 0},
		{1, 3, -67},
		{-1, 0, 0},
	}
	for _, tt := range tests {
		if got := PercentChange(tt.current, tt.previous); got != tt.want {
			t.Errorf("PercentChange(%v, %v) = %d, want %d", tt.current, tt.previous, got, tt.want)
		}
	}
}

// Artist X plays 10 times now and 6 before; Y plays 5 now and 10 before.
func TestPercentChangeArtists(t *testing.T) {
	current := map[string]int{"X": 10, "Y": 5}
	previous := map[string]int{"X": 6, "Y": 10}
	want := map[string]int{"X": 67, "Y": -50}

	for artist, w := range want {
		got := PercentChange(float64(current[artist]), float64(previous[artist]))
		if got != w {
			t.Errorf("%s: PercentChange = %d, want %d", artist, got, w)
		}
	}

	// Measured the other way round, X's previous-period share drops by 40%.
	if got := PercentChange(6, 10); got != -40 {
		t.Errorf("PercentChange(6, 10) = %d, want -40", got)
	}
}

func TestPercentChangeRounded(t *testing.T) {
	if got := PercentChangeRounded(1, 3, 1); got != -66.7 {
		t.Errorf("PercentChangeRounded(1, 3, 1) = %v, want -66.7", got)
	}
	if got := PercentChangeRounded(3, 0, 1); got != 100 {
		t.Errorf("PercentChangeRounded(3, 0, 1) = %v, want 100", got)
	}
}

func TestDiversityScore(t *testing.T) {
	if got := DiversityScore(0, 0); got != 0 {
		t.Errorf("DiversityScore(0, 0) = %d", got)
	}
	if got := DiversityScore(3, 12); got != 25 {
		t.Errorf("DiversityScore(3, 12) = %d, want 25", got)
	}
	if got := DiversityScore(2, 3); got != 67 {
		t.Errorf("DiversityScore(2, 3) = %d, want 67", got)
	}
}

func TestRankMovement(t *testing.T) {
	tests := []struct {
		current, previous int
		found             bool
		want              Movement
		places            int
	}{
		{1, 0, false, MovementNew, 0},
		{1, 3, true, MovementUp, 2},
		{4, 2, true, MovementDown, -2},
		{2, 2, true, MovementSame, 0},
	}
	for _, tt := range tests {
		m, places := RankMovement(tt.current, tt.previous, tt.found)
		if m != tt.want || places != tt.places {
			t.Errorf("RankMovement(%d, %d, %v) = %s, %d; want %s, %d",
				tt.current, tt.previous, tt.found, m, places, tt.want, tt.places)
		}
	}
}
