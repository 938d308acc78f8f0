package model

// Empty marks a cell that holds no letter yet
const Empty rune = 0

// Grid is the letter grid for a round
type Grid struct {
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Cells [][]rune `json:"cells"` // Row-major: Cells[row][col], Empty until filled
}

// NewGrid creates a grid with every cell empty
func NewGrid(rows, cols int) *Grid {
	cells := make([][]rune, rows)
	for i := range cells {
		cells[i] = make([]rune, cols)
	}
	return &Grid{
		Rows:  rows,
		Cols:  cols,
		Cells: cells,
	}
}

// Get returns the letter at the given position, or Empty if out of bounds
func (g *Grid) Get(pos Position) rune {
	if !g.InBounds(pos) {
		return Empty
	}
	return g.Cells[pos.Row][pos.Col]
}

// Set writes a letter at the given position
func (g *Grid) Set(pos Position, letter rune) {
	if g.InBounds(pos) {
		g.Cells[pos.Row][pos.Col] = letter
	}
}

// IsEmpty returns true if the cell holds no letter
func (g *Grid) IsEmpty(pos Position) bool {
	return g.Get(pos) == Empty
}

// InBounds returns true if the position lies within the grid
func (g *Grid) InBounds(pos Position) bool {
	return pos.Row >= 0 && pos.Row < g.Rows && pos.Col >= 0 && pos.Col < g.Cols
}

// Reset clears every cell back to Empty
func (g *Grid) Reset() {
	for row := range g.Cells {
		for col := range g.Cells[row] {
			g.Cells[row][col] = Empty
		}
	}
}

// EmptyCount returns the number of empty cells
func (g *Grid) EmptyCount() int {
	count := 0
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			if g.Cells[row][col] == Empty {
				count++
			}
		}
	}
	return count
}

// RowStrings returns each row of the grid as a string
func (g *Grid) RowStrings() []string {
	out := make([]string, g.Rows)
	for row := 0; row < g.Rows; row++ {
		out[row] = string(g.Cells[row])
	}
	return out
}

// Letters returns the letters along a path
func (g *Grid) Letters(path []Position) string {
	letters := make([]rune, len(path))
	for i, pos := range path {
		letters[i] = g.Get(pos)
	}
	return string(letters)
}

// PlacedWord is a word written into the grid along an exact path of cells
type PlacedWord struct {
	Word string     `json:"word"`
	Path []Position `json:"path"` // placement order, not necessarily reading order
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	c := NewGrid(g.Rows, g.Cols)
	for row := range g.Cells {
		copy(c.Cells[row], g.Cells[row])
	}
	return c
}
