package placement

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/mcoot/wordhunt/internal/dependencies/random"
	"github.com/mcoot/wordhunt/internal/model"
)

// Config bounds the random search for a layout
type Config struct {
	// MaxAttempts is the number of random anchors tried per word before the grid is discarded
	MaxAttempts int
	// MaxRestarts is the number of times the whole grid may be discarded before giving up
	MaxRestarts int
}

// DefaultConfig returns the default attempt and restart budgets
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 1000,
		MaxRestarts: 100,
	}
}

// PlacementError reports that the restart budget ran out
type PlacementError struct {
	Word     string // the word that exhausted its attempts on the final pass
	Restarts int
	Attempts int
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("could not place %q after %d restarts of %d attempts each", e.Word, e.Restarts, e.Attempts)
}

// Unwrap lets callers match with errors.Is(err, model.ErrPlacementFailed)
func (e *PlacementError) Unwrap() error {
	return model.ErrPlacementFailed
}

// Service generates word-search grids
type Service struct {
	random random.Random
	cfg    Config
	logger *slog.Logger
}

// New creates a new placement Service
func New(rnd random.Random, cfg Config, logger *slog.Logger) *Service {
	defaults := DefaultConfig()
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaults.MaxAttempts
	}
	if cfg.MaxRestarts <= 0 {
		cfg.MaxRestarts = defaults.MaxRestarts
	}
	return &Service{
		random: rnd,
		cfg:    cfg,
		logger: logger,
	}
}

// Place hides every word in a rows x cols grid and fills the remaining cells.
// Placed words are returned in input order.
func (s *Service) Place(words []string, rows, cols int, dirs []model.Direction) (*model.Grid, []model.PlacedWord, error) {
	normalized, err := validate(words, rows, cols, dirs)
	if err != nil {
		return nil, nil, err
	}

	grid := model.NewGrid(rows, cols)
	for restart := 0; restart <= s.cfg.MaxRestarts; restart++ {
		grid.Reset()
		placed, failed := s.placeAll(grid, normalized, dirs)
		if failed == "" {
			s.fill(grid)
			if restart > 0 {
				s.logger.Debug("grid placed after restarts",
					slog.Int("restarts", restart),
					slog.Int("words", len(placed)),
				)
			}
			return grid, placed, nil
		}

		if restart == s.cfg.MaxRestarts {
			s.logger.Warn("grid placement gave up",
				slog.String("word", failed),
				slog.Int("restarts", restart),
				slog.Int("rows", rows),
				slog.Int("cols", cols),
			)
			return nil, nil, &PlacementError{Word: failed, Restarts: restart, Attempts: s.cfg.MaxAttempts}
		}
	}

	// unreachable: the loop returns on its final iteration
	return nil, nil, model.ErrPlacementFailed
}

// placeAll makes one pass over the words. It returns the word that could not
// be placed, or "" if every word fit.
func (s *Service) placeAll(grid *model.Grid, words []string, dirs []model.Direction) ([]model.PlacedWord, string) {
	placed := make([]model.PlacedWord, 0, len(words))
	for _, word := range words {
		path, ok := s.placeWord(grid, word, dirs)
		if !ok {
			return nil, word
		}
		placed = append(placed, model.PlacedWord{Word: word, Path: path})
	}
	return placed, ""
}

func (s *Service) placeWord(grid *model.Grid, word string, dirs []model.Direction) ([]model.Position, bool) {
	letters := []rune(word)
	for attempt := 0; attempt < s.cfg.MaxAttempts; attempt++ {
		anchor := model.Position{Row: s.random.Intn(grid.Rows), Col: s.random.Intn(grid.Cols)}
		dir := dirs[s.random.Intn(len(dirs))]

		path, ok := candidatePath(grid, anchor, dir, len(letters))
		if !ok {
			continue
		}
		for i, pos := range path {
			grid.Set(pos, letters[i])
		}
		return path, true
	}
	return nil, false
}

// candidatePath returns the cells a word of the given length would occupy, or
// false if any of them is out of bounds or already holds a letter.
func candidatePath(grid *model.Grid, anchor model.Position, dir model.Direction, length int) ([]model.Position, bool) {
	path := make([]model.Position, length)
	for i := 0; i < length; i++ {
		pos := anchor.Add(dir, i)
		if !grid.InBounds(pos) || !grid.IsEmpty(pos) {
			return nil, false
		}
		path[i] = pos
	}
	return path, true
}

// fill writes a random uppercase letter into every empty cell
func (s *Service) fill(grid *model.Grid) {
	for row := 0; row < grid.Rows; row++ {
		for col := 0; col < grid.Cols; col++ {
			if grid.Cells[row][col] == model.Empty {
				grid.Cells[row][col] = rune('A' + s.random.Intn(26))
			}
		}
	}
}

func validate(words []string, rows, cols int, dirs []model.Direction) ([]string, error) {
	if len(words) == 0 {
		return nil, model.ErrNoWords
	}
	if rows < 1 || cols < 1 {
		return nil, model.ErrInvalidGridSize
	}
	if len(dirs) < model.MinDirections {
		return nil, model.ErrInvalidDirections
	}

	longest := max(rows, cols)
	normalized := make([]string, len(words))
	for i, word := range words {
		upper := strings.ToUpper(strings.TrimSpace(word))
		if upper == "" {
			return nil, fmt.Errorf("%w: %q", model.ErrInvalidWord, word)
		}
		for _, r := range upper {
			if r < 'A' || r > 'Z' {
				return nil, fmt.Errorf("%w: %q", model.ErrInvalidWord, word)
			}
		}
		if len(upper) > longest {
			return nil, fmt.Errorf("%w: %q is longer than %d", model.ErrWordTooLong, word, longest)
		}
		normalized[i] = upper
	}
	return normalized, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Place(words []string, rows, cols int, dirs []model.Direction) (*model.Grid, []model.PlacedWord, error)
}

var _ ServiceInterface = (*Service)(nil)
