package model

// CategoryID identifies a themed word list
type CategoryID string

// Category is a themed list of words hidden in a round
type Category struct {
	ID    CategoryID `json:"id"`
	Name  string     `json:"name"`
	Words []string   `json:"words"`
}

// WordsPerCategory is the number of words hidden in each round
const WordsPerCategory = 10
