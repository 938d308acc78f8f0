package factory

import (
	"context"
	"time"

	"github.com/mcoot/wordhunt/internal/dependencies/mocks"
	"github.com/mcoot/wordhunt/internal/dependencies/random"
	"github.com/mcoot/wordhunt/internal/model"
	"github.com/mcoot/wordhunt/internal/services/auth"
	"github.com/mcoot/wordhunt/internal/services/placement"
	"github.com/mcoot/wordhunt/internal/services/reward"
	"github.com/mcoot/wordhunt/internal/storage/memory"
	"github.com/mcoot/wordhunt/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Test controls. Grids need real randomness to place words,
	// so tests get a seeded source instead of a queue.
	MockClock    *mocks.MockClock
	SeededRandom *random.SeededRandom
	Ledger       *reward.NopClient
}

// NewTestApp creates an App on memory storage with a mock clock, seeded
// randomness and the given round config
func NewTestApp(roundCfg model.RoundConfig) *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	seeded := random.NewSeeded(1)
	ledger := reward.NewNopClient()

	app := newWithDependencies(dependencies{
		store:     memory.New(),
		clock:     mockClock,
		random:    seeded,
		reward:    ledger,
		auth:      auth.DefaultConfig(),
		placement: placement.DefaultConfig(),
		round:     roundCfg,
		logger:    testutil.NopLogger(),
	})

	return &TestApp{
		App:          app,
		MockClock:    mockClock,
		SeededRandom: seeded,
		Ledger:       ledger,
	}
}

// LoadTestCategories loads two short categories that fit a small grid
func (t *TestApp) LoadTestCategories(ctx context.Context) error {
	return t.CategoryService.LoadCategories(ctx, []model.Category{
		{ID: "pets", Name: "Pets", Words: []string{"CAT", "DOG", "FISH", "BIRD"}},
		{ID: "colours", Name: "Colours", Words: []string{"RED", "BLUE", "GREEN", "PINK"}},
	})
}
