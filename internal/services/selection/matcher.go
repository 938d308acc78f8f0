package selection

import (
	"github.com/mcoot/wordhunt/internal/model"
)

// Match returns the first placed word whose path equals the given path read
// forward or reversed, along with its index in placed.
func Match(path []model.Position, placed []model.PlacedWord) (model.PlacedWord, int, bool) {
	if len(path) == 0 {
		return model.PlacedWord{}, -1, false
	}
	for i, pw := range placed {
		if samePath(path, pw.Path) || samePathReversed(path, pw.Path) {
			return pw, i, true
		}
	}
	return model.PlacedWord{}, -1, false
}

func samePath(a, b []model.Position) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func samePathReversed(a, b []model.Position) bool {
	if len(a) != len(b) {
		return false
	}
	n := len(a)
	for i := range a {
		if a[i] != b[n-1-i] {
			return false
		}
	}
	return true
}

// IsValidDirection reports whether candidate may be the next cell of a drag
// that started at anchor and already holds length cells. The candidate must
// sit exactly length steps from the anchor along one of the eight compass
// directions. The anchor itself is always valid.
func IsValidDirection(anchor, candidate model.Position, length int) bool {
	dx := candidate.Row - anchor.Row
	dy := candidate.Col - anchor.Col

	switch {
	case dx == 0 && dy == 0:
		return true
	case dx == 0:
		return dy == length || dy == -length
	case dy == 0:
		return dx == length || dx == -length
	case abs(dx) == abs(dy):
		return abs(dx) == length
	default:
		return false
	}
}

// stepOf returns the unit step from a to b, assuming b lies on a compass line from a
func stepOf(a, b model.Position) (int, int) {
	return sign(b.Row - a.Row), sign(b.Col - a.Col)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
