package compare

// Movement describes how an entry's rank changed between two periods.
type Movement string

const (
	MovementNew  Movement = "new"
	MovementUp   Movement = "up"
	MovementDown Movement = "down"
	MovementSame Movement = "same"
)

// RankMovement compares a 1-based current rank with the previous one. found
// is false when the entry was not ranked in the previous period. places is
// the number of positions moved, positive when climbing.
func RankMovement(current, previous int, found bool) (m Movement, places int) {
	if !found {
		return MovementNew, 0
	}
	places = previous - current
	switch {
	case places > 0:
		return MovementUp, places
	case places < 0:
		return MovementDown, places
	}
	return MovementSame, 0
}

// Symbol is a compact marker for tables.
func (m Movement) Symbol() string {
	switch m {
	case MovementNew:
		return "NEW"
	case MovementUp:
		return "▲"
	case MovementDown:
		return "▼"
	}
	return "="
}
