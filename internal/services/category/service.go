package category

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/mcoot/wordhunt/internal/dependencies/random"
	"github.com/mcoot/wordhunt/internal/model"
	"github.com/mcoot/wordhunt/internal/storage"
)

// Generator produces a new category of words for a theme
type Generator interface {
	Generate(ctx context.Context, theme string, count, maxLen int) (*model.Category, error)
}

// Service holds the themed word lists rounds are built from
type Service struct {
	storage   storage.Storage
	generator Generator // nil when generation is not configured
	logger    *slog.Logger

	mu         sync.RWMutex
	categories map[model.CategoryID]*model.Category
	order      []model.CategoryID
}

// New creates a new category Service. generator may be nil.
func New(storage storage.Storage, generator Generator, logger *slog.Logger) *Service {
	return &Service{
		storage:    storage,
		generator:  generator,
		logger:     logger,
		categories: make(map[model.CategoryID]*model.Category),
	}
}

// LoadBuiltIn loads the embedded categories and saves them to storage
func (s *Service) LoadBuiltIn(ctx context.Context) error {
	categories, err := BuiltIn()
	if err != nil {
		return fmt.Errorf("parse built-in categories: %w", err)
	}
	return s.LoadCategories(ctx, categories)
}

// LoadFromFile loads categories from a file in the built-in line format
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	categories, err := Parse(file)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return s.LoadCategories(ctx, categories)
}

// LoadFromStorage loads every category previously saved to storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	stored, err := s.storage.ListCategories(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range stored {
		s.add(c)
	}
	return nil
}

// LoadCategories validates the categories, saves them to storage and makes them available
func (s *Service) LoadCategories(ctx context.Context, categories []model.Category) error {
	for i := range categories {
		c := categories[i]
		if err := Normalize(&c); err != nil {
			return err
		}
		if err := s.storage.SaveCategory(ctx, &c); err != nil {
			return err
		}
		s.mu.Lock()
		s.add(&c)
		s.mu.Unlock()
	}
	s.logger.Info("categories loaded", slog.Int("count", len(categories)))
	return nil
}

// add must be called with mu held
func (s *Service) add(c *model.Category) {
	if _, exists := s.categories[c.ID]; !exists {
		s.order = append(s.order, c.ID)
	}
	s.categories[c.ID] = c
}

// Get returns the category with the given ID, falling back to storage
func (s *Service) Get(ctx context.Context, id model.CategoryID) (*model.Category, error) {
	s.mu.RLock()
	c, ok := s.categories[id]
	s.mu.RUnlock()
	if ok {
		return c, nil
	}

	c, err := s.storage.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.add(c)
	s.mu.Unlock()
	return c, nil
}

// List returns every loaded category in load order
func (s *Service) List() []*model.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Category, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.categories[id])
	}
	return out
}

// Pick returns a uniformly random loaded category
func (s *Service) Pick(rnd random.Random) (*model.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.order) == 0 {
		return nil, model.ErrCategoriesEmpty
	}
	return s.categories[s.order[rnd.Intn(len(s.order))]], nil
}

// Generate asks the configured generator for a new category and stores it
func (s *Service) Generate(ctx context.Context, theme string, maxLen int) (*model.Category, error) {
	if s.generator == nil {
		return nil, model.ErrGeneratorMissing
	}

	c, err := s.generator.Generate(ctx, theme, model.WordsPerCategory, maxLen)
	if err != nil {
		s.logger.Warn("category generation failed",
			slog.String("theme", theme),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	// Drop words that cannot be placed rather than failing the whole category
	kept := c.Words[:0]
	for _, w := range c.Words {
		if len(w) <= maxLen {
			kept = append(kept, w)
		}
	}
	c.Words = kept
	if err := Normalize(c); err != nil {
		return nil, err
	}

	if err := s.LoadCategories(ctx, []model.Category{*c}); err != nil {
		return nil, err
	}
	s.logger.Info("category generated",
		slog.String("category_id", string(c.ID)),
		slog.String("theme", theme),
		slog.Int("words", len(c.Words)),
	)
	return s.Get(ctx, c.ID)
}

// Interface for dependency injection
type ServiceInterface interface {
	Get(ctx context.Context, id model.CategoryID) (*model.Category, error)
	List() []*model.Category
	Pick(rnd random.Random) (*model.Category, error)
	Generate(ctx context.Context, theme string, maxLen int) (*model.Category, error)
}

var _ ServiceInterface = (*Service)(nil)
