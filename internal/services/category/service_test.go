package category

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordhunt/internal/dependencies/mocks"
	"github.com/mcoot/wordhunt/internal/model"
	"github.com/mcoot/wordhunt/internal/storage/memory"
	"github.com/mcoot/wordhunt/internal/testutil"
)

// stubGenerator returns a fixed category or error
type stubGenerator struct {
	category *model.Category
	err      error

	theme  string
	count  int
	maxLen int
}

func (g *stubGenerator) Generate(ctx context.Context, theme string, count, maxLen int) (*model.Category, error) {
	g.theme, g.count, g.maxLen = theme, count, maxLen
	if g.err != nil {
		return nil, g.err
	}
	c := *g.category
	c.Words = append([]string(nil), g.category.Words...)
	return &c, nil
}

type ServiceSuite struct {
	suite.Suite
	storage   *memory.Storage
	generator *stubGenerator
	service   *Service
	ctx       context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.generator = &stubGenerator{}
	s.service = New(s.storage, s.generator, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestLoadBuiltInSavesToStorage() {
	s.Require().NoError(s.service.LoadBuiltIn(s.ctx))

	s.Len(s.service.List(), 9)

	stored, err := s.storage.ListCategories(s.ctx)
	s.Require().NoError(err)
	s.Len(stored, 9)
}

func (s *ServiceSuite) TestLoadFromFile() {
	path := filepath.Join(s.T().TempDir(), "categories.txt")
	s.Require().NoError(os.WriteFile(path, []byte("animals|Animals|CAT,DOG\n"), 0o644))

	s.Require().NoError(s.service.LoadFromFile(s.ctx, path))

	c, err := s.service.Get(s.ctx, "animals")
	s.Require().NoError(err)
	s.Equal([]string{"CAT", "DOG"}, c.Words)
}

func (s *ServiceSuite) TestLoadFromFileMissing() {
	err := s.service.LoadFromFile(s.ctx, filepath.Join(s.T().TempDir(), "missing.txt"))
	s.Error(err)
}

func (s *ServiceSuite) TestLoadFromStorage() {
	s.Require().NoError(s.storage.SaveCategory(s.ctx, &model.Category{ID: "animals", Name: "Animals", Words: []string{"CAT"}}))

	s.Require().NoError(s.service.LoadFromStorage(s.ctx))

	s.Len(s.service.List(), 1)
}

func (s *ServiceSuite) TestGetFallsBackToStorage() {
	s.Require().NoError(s.storage.SaveCategory(s.ctx, &model.Category{ID: "animals", Name: "Animals", Words: []string{"CAT"}}))

	c, err := s.service.Get(s.ctx, "animals")
	s.Require().NoError(err)
	s.Equal("Animals", c.Name)
	s.Len(s.service.List(), 1)
}

func (s *ServiceSuite) TestGetNotFound() {
	_, err := s.service.Get(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrCategoryNotFound)
}

func (s *ServiceSuite) TestListKeepsLoadOrder() {
	s.Require().NoError(s.service.LoadCategories(s.ctx, []model.Category{
		{ID: "zoo", Words: []string{"LION"}},
		{ID: "art", Words: []string{"PAINT"}},
	}))

	list := s.service.List()
	s.Require().Len(list, 2)
	s.Equal(model.CategoryID("zoo"), list[0].ID)
	s.Equal(model.CategoryID("art"), list[1].ID)
}

func (s *ServiceSuite) TestPick() {
	s.Require().NoError(s.service.LoadBuiltIn(s.ctx))
	rnd := mocks.NewMockRandom()
	rnd.QueueIntn(2)

	c, err := s.service.Pick(rnd)
	s.Require().NoError(err)
	s.Equal(model.CategoryID("entertainment"), c.ID)
}

func (s *ServiceSuite) TestPickEmpty() {
	_, err := s.service.Pick(mocks.NewMockRandom())
	s.ErrorIs(err, model.ErrCategoriesEmpty)
}

func (s *ServiceSuite) TestGenerateStoresCategory() {
	s.generator.category = &model.Category{
		ID:    "space",
		Name:  "Space",
		Words: []string{"planet", "comet", "EXTRATERRESTRIAL", "orbit"},
	}

	c, err := s.service.Generate(s.ctx, "outer space", 15)
	s.Require().NoError(err)

	s.Equal("outer space", s.generator.theme)
	s.Equal(model.WordsPerCategory, s.generator.count)
	s.Equal(15, s.generator.maxLen)
	s.Equal([]string{"PLANET", "COMET", "ORBIT"}, c.Words)

	stored, err := s.storage.GetCategory(s.ctx, "space")
	s.Require().NoError(err)
	s.Equal(c.Words, stored.Words)
}

func (s *ServiceSuite) TestGenerateError() {
	s.generator.err = errors.New("quota exceeded")

	_, err := s.service.Generate(s.ctx, "space", 15)
	s.EqualError(err, "quota exceeded")
}

func (s *ServiceSuite) TestGenerateWithoutGenerator() {
	service := New(s.storage, nil, testutil.NopLogger())

	_, err := service.Generate(s.ctx, "space", 15)
	s.ErrorIs(err, model.ErrGeneratorMissing)
}
