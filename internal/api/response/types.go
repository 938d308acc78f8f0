package response

import (
	"time"

	"github.com/mcoot/wordhunt/internal/model"
	"github.com/mcoot/wordhunt/internal/services/auth"
	"github.com/mcoot/wordhunt/internal/services/round"
	"github.com/mcoot/wordhunt/internal/services/selection"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Address     string `json:"address,omitempty"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		Address:     p.Address,
		IsGuest:     p.IsGuest,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		SessionToken: s.Token,
	}
}

// Balance is the reward balance of an address
type Balance struct {
	Address string `json:"address"`
	Balance int    `json:"balance"`
}

// Category represents a word category
type Category struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Words []string `json:"words,omitempty"`
}

// CategoryFromModel converts a model.Category. Words are only included when withWords is set.
func CategoryFromModel(c *model.Category, withWords bool) Category {
	resp := Category{ID: string(c.ID), Name: c.Name}
	if withWords {
		resp.Words = c.Words
	}
	return resp
}

// Cell is a grid position
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// CellsFromModel converts positions to cells
func CellsFromModel(path []model.Position) []Cell {
	cells := make([]Cell, len(path))
	for i, p := range path {
		cells[i] = Cell{Row: p.Row, Col: p.Col}
	}
	return cells
}

// Round is everything a client needs to draw a round.
// Word positions are never sent, only the word list.
type Round struct {
	ID               string    `json:"id"`
	PlayerID         string    `json:"player_id"`
	CategoryID       string    `json:"category_id"`
	State            string    `json:"state"`
	EndReason        string    `json:"end_reason,omitempty"`
	Rows             int       `json:"rows"`
	Cols             int       `json:"cols"`
	Letters          []string  `json:"letters"`
	Words            []string  `json:"words"`
	FoundWords       []string  `json:"found_words"`
	FoundCells       []Cell    `json:"found_cells"`
	Selection        []Cell    `json:"selection"`
	CorrectCount     int       `json:"correct_count"`
	TotalWords       int       `json:"total_words"`
	RemainingSeconds int       `json:"remaining_seconds"`
	RemainingText    string    `json:"remaining_text"`
	ScoreText        string    `json:"score_text"`
	Claimed          bool      `json:"claimed"`
	CreatedAt        time.Time `json:"created_at"`
}

// RoundFromModel converts a model.Round
func RoundFromModel(r *model.Round) Round {
	found := r.FoundWords()
	if found == nil {
		found = []string{}
	}
	return Round{
		ID:               string(r.ID),
		PlayerID:         string(r.PlayerID),
		CategoryID:       string(r.CategoryID),
		State:            string(r.State),
		EndReason:        string(r.EndReason),
		Rows:             r.Grid.Rows,
		Cols:             r.Grid.Cols,
		Letters:          r.Grid.RowStrings(),
		Words:            r.WordList(),
		FoundWords:       found,
		FoundCells:       CellsFromModel(r.FoundCells),
		Selection:        CellsFromModel(r.Selection.Path),
		CorrectCount:     r.CorrectCount,
		TotalWords:       len(r.Words),
		RemainingSeconds: r.RemainingSeconds,
		RemainingText:    round.FormatRemaining(r.RemainingSeconds),
		ScoreText:        round.ScoreText(r.CorrectCount, len(r.Words)),
		Claimed:          r.Claimed,
		CreatedAt:        r.CreatedAt,
	}
}

// SelectionResult is the response to a press, extend, release or abort
type SelectionResult struct {
	Outcome string  `json:"outcome"`
	Matched *string `json:"matched"`
	Round   Round   `json:"round"`
}

// SelectionResultFromResult converts a round.Result
func SelectionResultFromResult(res *round.Result) SelectionResult {
	var matched *string
	if res.Matched != nil {
		w := res.Matched.Word
		matched = &w
	}
	outcome := res.Outcome
	if outcome == "" {
		outcome = selection.OutcomeIgnored
	}
	return SelectionResult{
		Outcome: string(outcome),
		Matched: matched,
		Round:   RoundFromModel(res.Round),
	}
}

// Claim is the response to a reward claim
type Claim struct {
	Points  int    `json:"points"`
	Balance int    `json:"balance"`
	Address string `json:"address"`
}
