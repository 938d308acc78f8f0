package model

import "time"

// RoundID uniquely identifies a round
type RoundID string

// RoundState represents the phase of a round
type RoundState string

const (
	RoundStateActive   RoundState = "active"   // Timer running, selections accepted
	RoundStateFinished RoundState = "finished" // Ended by completion, timeout or abandon
)

// EndReason records why a round finished
type EndReason string

const (
	EndReasonCompleted EndReason = "completed" // Every word found
	EndReasonTimeout   EndReason = "timeout"   // Timer reached zero
	EndReasonAbandoned EndReason = "abandoned" // Replaced by a new round or cancelled
)

// SelectionState is the state of the player's drag
type SelectionState string

const (
	SelectionIdle     SelectionState = "idle"
	SelectionDragging SelectionState = "dragging"
)

// Selection is the in-progress drag across the grid
type Selection struct {
	State  SelectionState `json:"state"`
	Anchor Position       `json:"anchor"`
	Path   []Position     `json:"path"`
}

// IdleSelection returns a selection with no anchor and an empty path
func IdleSelection() Selection {
	return Selection{State: SelectionIdle}
}

// Contains returns true if the position is already in the path
func (s Selection) Contains(pos Position) bool {
	for _, p := range s.Path {
		if p == pos {
			return true
		}
	}
	return false
}

// RoundConfig holds the settings a round is generated with
type RoundConfig struct {
	Rows            int
	Cols            int
	Directions      []Direction
	DurationSeconds int
}

// DefaultRoundConfig returns the default 11x15 grid with a two-minute timer
func DefaultRoundConfig() RoundConfig {
	return RoundConfig{
		Rows:            11,
		Cols:            15,
		Directions:      DefaultDirections(),
		DurationSeconds: 120,
	}
}

// Round is the complete state of one play-through of a category
type Round struct {
	ID         RoundID
	PlayerID   PlayerID
	CategoryID CategoryID
	State      RoundState
	EndReason  EndReason

	Grid  *Grid
	Words []PlacedWord

	// Found[i] is true once Words[i] has been matched
	Found        []bool
	FoundCells   []Position
	CorrectCount int

	Selection Selection

	DurationSeconds  int
	RemainingSeconds int

	Claimed bool

	CreatedAt time.Time
	UpdatedAt time.Time
	EndedAt   time.Time
}

// IsActive returns true if the round still accepts selections
func (r *Round) IsActive() bool {
	return r.State == RoundStateActive
}

// IsFound returns true if the cell belongs to a word that has been found
func (r *Round) IsFound(pos Position) bool {
	for _, p := range r.FoundCells {
		if p == pos {
			return true
		}
	}
	return false
}

// AllFound returns true if every placed word has been matched
func (r *Round) AllFound() bool {
	return r.CorrectCount >= len(r.Words)
}

// WordList returns the placed words without their positions
func (r *Round) WordList() []string {
	words := make([]string, len(r.Words))
	for i, w := range r.Words {
		words[i] = w.Word
	}
	return words
}

// FoundWords returns the words matched so far, in placement order
func (r *Round) FoundWords() []string {
	var words []string
	for i, w := range r.Words {
		if i < len(r.Found) && r.Found[i] {
			words = append(words, w.Word)
		}
	}
	return words
}

// RoundSummary is the read-only outcome of a finished round
type RoundSummary struct {
	ID           RoundID
	PlayerID     PlayerID
	CorrectCount int
	TotalWords   int
	EndReason    EndReason
	EndedAt      time.Time
}

// Clone returns a deep copy of the round
func (r *Round) Clone() *Round {
	c := *r
	c.Grid = r.Grid.Clone()
	c.Words = make([]PlacedWord, len(r.Words))
	for i, w := range r.Words {
		c.Words[i] = PlacedWord{Word: w.Word, Path: append([]Position(nil), w.Path...)}
	}
	c.Found = append([]bool(nil), r.Found...)
	c.FoundCells = append([]Position(nil), r.FoundCells...)
	c.Selection.Path = append([]Position(nil), r.Selection.Path...)
	return &c
}

// Summary returns the read-only outcome of the round
func (r *Round) Summary() RoundSummary {
	return RoundSummary{
		ID:           r.ID,
		PlayerID:     r.PlayerID,
		CorrectCount: r.CorrectCount,
		TotalWords:   len(r.Words),
		EndReason:    r.EndReason,
		EndedAt:      r.EndedAt,
	}
}
