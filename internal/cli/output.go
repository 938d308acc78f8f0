package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Balance:
		fmt.Printf("Balance for %s: %d\n", v.Address, v.Balance)
	case []Category:
		o.printCategories(v)
	case Category:
		o.printCategory(v)
	case Round:
		fmt.Print(renderRound(v))
	case SelectionResult:
		o.printSelectionResult(v)
	case Claim:
		fmt.Printf("Claimed %d points for %s\n", v.Points, v.Address)
		fmt.Printf("New balance: %d\n", v.Balance)
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Address     string `json:"address,omitempty"`
	IsGuest     bool   `json:"is_guest"`
}

// AuthResult combines player and token
type AuthResult struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// Balance response type
type Balance struct {
	Address string `json:"address"`
	Balance int    `json:"balance"`
}

// Category response type
type Category struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Words []string `json:"words,omitempty"`
}

// Cell response type
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Round response type
type Round struct {
	ID               string   `json:"id"`
	CategoryID       string   `json:"category_id"`
	State            string   `json:"state"`
	EndReason        string   `json:"end_reason,omitempty"`
	Rows             int      `json:"rows"`
	Cols             int      `json:"cols"`
	Letters          []string `json:"letters"`
	Words            []string `json:"words"`
	FoundWords       []string `json:"found_words"`
	FoundCells       []Cell   `json:"found_cells"`
	Selection        []Cell   `json:"selection"`
	CorrectCount     int      `json:"correct_count"`
	TotalWords       int      `json:"total_words"`
	RemainingSeconds int      `json:"remaining_seconds"`
	RemainingText    string   `json:"remaining_text"`
	ScoreText        string   `json:"score_text"`
	Claimed          bool     `json:"claimed"`
}

// SelectionResult response type
type SelectionResult struct {
	Outcome string  `json:"outcome"`
	Matched *string `json:"matched"`
	Round   Round   `json:"round"`
}

// Claim response type
type Claim struct {
	Points  int    `json:"points"`
	Balance int    `json:"balance"`
	Address string `json:"address"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
	if p.Address != "" {
		fmt.Printf("Address: %s\n", p.Address)
	}
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printCategories(categories []Category) {
	fmt.Printf("Categories (%d):\n", len(categories))
	for _, c := range categories {
		fmt.Printf("  - %s (%s)\n", c.Name, c.ID)
	}
}

func (o *Output) printCategory(c Category) {
	fmt.Printf("Category: %s (%s)\n", c.Name, c.ID)
	fmt.Printf("Words: %s\n", strings.Join(c.Words, ", "))
}

func (o *Output) printSelectionResult(s SelectionResult) {
	switch {
	case s.Matched != nil:
		fmt.Printf("Found %s!\n", *s.Matched)
	case s.Outcome == "released":
		fmt.Println("No match")
	default:
		fmt.Printf("Selection %s\n", s.Outcome)
	}
	fmt.Print(renderRound(s.Round))
}

// renderRound draws the grid with found cells in lower case and the
// current selection in brackets
func renderRound(r Round) string {
	found := make(map[Cell]bool, len(r.FoundCells))
	for _, c := range r.FoundCells {
		found[c] = true
	}
	selected := make(map[Cell]bool, len(r.Selection))
	for _, c := range r.Selection {
		selected[c] = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Round: %s (%s)\n", r.ID, r.CategoryID)
	state := r.State
	if r.EndReason != "" {
		state += " (" + r.EndReason + ")"
	}
	fmt.Fprintf(&b, "State: %s  Time: %s  %s\n\n", state, r.RemainingText, r.ScoreText)

	b.WriteString("    ")
	for col := 0; col < r.Cols; col++ {
		fmt.Fprintf(&b, "%3d", col)
	}
	b.WriteString("\n")

	for row, letters := range r.Letters {
		fmt.Fprintf(&b, "%3d ", row)
		for col, letter := range letters {
			cell := Cell{Row: row, Col: col}
			text := string(letter)
			if found[cell] {
				text = strings.ToLower(text)
			}
			if selected[cell] {
				fmt.Fprintf(&b, "[%s]", text)
			} else {
				fmt.Fprintf(&b, " %s ", text)
			}
		}
		b.WriteString("\n")
	}

	foundSet := make(map[string]bool, len(r.FoundWords))
	for _, w := range r.FoundWords {
		foundSet[w] = true
	}
	b.WriteString("\nWords:")
	for _, w := range r.Words {
		if foundSet[w] {
			fmt.Fprintf(&b, " (%s)", w)
		} else {
			fmt.Fprintf(&b, " %s", w)
		}
	}
	b.WriteString("\n")
	return b.String()
}
