package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventRoundStarted EventType = "round_started"
	EventWordFound    EventType = "word_found"
	EventTick         EventType = "tick"
	EventRoundEnded   EventType = "round_ended"
)

// Event is the base structure for all round events
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	RoundID   RoundID   `json:"round_id"`
	PlayerID  PlayerID  `json:"player_id"`
	Payload   any       `json:"payload,omitempty"`
}

// RoundStartedPayload contains data for round started events
type RoundStartedPayload struct {
	CategoryID       CategoryID `json:"category_id"`
	Rows             int        `json:"rows"`
	Cols             int        `json:"cols"`
	Words            []string   `json:"words"`
	RemainingSeconds int        `json:"remaining_seconds"`
}

// WordFoundPayload contains data for word found events
type WordFoundPayload struct {
	Word         string     `json:"word"`
	Path         []Position `json:"path"`
	CorrectCount int        `json:"correct_count"`
	TotalWords   int        `json:"total_words"`
}

// TickPayload contains data for timer tick events
type TickPayload struct {
	RemainingSeconds int `json:"remaining_seconds"`
}

// RoundEndedPayload contains data for round ended events
type RoundEndedPayload struct {
	Reason       EndReason `json:"reason"`
	CorrectCount int       `json:"correct_count"`
	TotalWords   int       `json:"total_words"`
}
