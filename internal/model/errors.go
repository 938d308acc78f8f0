package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrInvalidAddress  = errors.New("invalid account address")
	ErrAddressRequired = errors.New("account address is required")

	// Category errors
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoriesEmpty  = errors.New("no categories loaded")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrGeneratorMissing = errors.New("category generation is not configured")

	// Placement errors
	ErrNoWords           = errors.New("word list is empty")
	ErrInvalidWord       = errors.New("word must contain only letters A-Z")
	ErrWordTooLong       = errors.New("word does not fit in the grid")
	ErrInvalidGridSize   = errors.New("invalid grid size")
	ErrInvalidDirections = errors.New("too few placement directions")
	ErrPlacementFailed   = errors.New("could not place all words")

	// Round errors
	ErrRoundNotFound    = errors.New("round not found")
	ErrNotRoundOwner    = errors.New("round belongs to another player")
	ErrRoundFinished    = errors.New("round is already finished")
	ErrRoundNotFinished = errors.New("round is still in progress")
	ErrInvalidPosition  = errors.New("invalid grid position")
	ErrAlreadyClaimed   = errors.New("round reward already claimed")
)
