package model

// Position identifies a cell on the grid
type Position struct {
	Row int `json:"row"` // 0-indexed from top
	Col int `json:"col"` // 0-indexed from left
}

// Add returns the position offset by the direction n times
func (p Position) Add(d Direction, n int) Position {
	return Position{Row: p.Row + d.DRow*n, Col: p.Col + d.DCol*n}
}

// Direction is a unit step through the grid
type Direction struct {
	Name string `json:"name"`
	DRow int    `json:"d_row"`
	DCol int    `json:"d_col"`
}

// The eight compass directions a word may run in
var (
	DirRight     = Direction{Name: "right", DRow: 0, DCol: 1}
	DirLeft      = Direction{Name: "left", DRow: 0, DCol: -1}
	DirDown      = Direction{Name: "down", DRow: 1, DCol: 0}
	DirUp        = Direction{Name: "up", DRow: -1, DCol: 0}
	DirDownRight = Direction{Name: "down_right", DRow: 1, DCol: 1}
	DirUpRight   = Direction{Name: "up_right", DRow: -1, DCol: 1}
	DirDownLeft  = Direction{Name: "down_left", DRow: 1, DCol: -1}
	DirUpLeft    = Direction{Name: "up_left", DRow: -1, DCol: -1}
)

// MinDirections is the smallest direction set a round may be configured with
const MinDirections = 4

// DefaultDirections returns the six directions used by default
func DefaultDirections() []Direction {
	return []Direction{DirRight, DirLeft, DirDown, DirUp, DirDownRight, DirUpRight}
}

// AllDirections returns all eight compass directions
func AllDirections() []Direction {
	return []Direction{DirRight, DirLeft, DirDown, DirUp, DirDownRight, DirUpRight, DirDownLeft, DirUpLeft}
}

// DirectionByName looks up a direction by its name
func DirectionByName(name string) (Direction, bool) {
	for _, d := range AllDirections() {
		if d.Name == name {
			return d, true
		}
	}
	return Direction{}, false
}
