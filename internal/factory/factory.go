package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/wordhunt/internal/dependencies/clock"
	"github.com/mcoot/wordhunt/internal/dependencies/random"
	"github.com/mcoot/wordhunt/internal/model"
	"github.com/mcoot/wordhunt/internal/services/auth"
	"github.com/mcoot/wordhunt/internal/services/category"
	"github.com/mcoot/wordhunt/internal/services/placement"
	"github.com/mcoot/wordhunt/internal/services/reward"
	"github.com/mcoot/wordhunt/internal/services/round"
	"github.com/mcoot/wordhunt/internal/sse"
	"github.com/mcoot/wordhunt/internal/storage"
	"github.com/mcoot/wordhunt/internal/storage/memory"
	redisstorage "github.com/mcoot/wordhunt/internal/storage/redis"
	"github.com/mcoot/wordhunt/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock        clock.Clock
	Random       random.Random
	RewardClient reward.Client

	// Services
	PlacementService *placement.Service
	CategoryService  *category.Service
	RoundController  *round.Controller
	RoundTicker      *round.Ticker
	AuthService      *auth.Service
	HubManager       *sse.HubManager
	Broadcaster      *sse.Broadcaster

	Logger *slog.Logger
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or "sqlite")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLitePath is the database file (required if StorageType is "sqlite")
	SQLitePath string
	// RoundConfig sets grid size, directions and timer; zero fields use model.DefaultRoundConfig()
	RoundConfig model.RoundConfig
	// PlacementConfig bounds the grid generator; zero value uses placement.DefaultConfig()
	PlacementConfig placement.Config
	// RewardURL is the balance service base URL. If empty, an in-memory ledger is used.
	RewardURL string
	// Generator produces AI categories (optional)
	Generator category.Generator
}

// New creates a new application with all dependencies wired.
// Categories still need loading with LoadCategories.
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlite.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'memory', 'redis' or 'sqlite'", storageType)
	}

	var rewardClient reward.Client
	if cfg.RewardURL != "" {
		rewardClient = reward.NewHTTPClient(cfg.RewardURL, logger)
	} else {
		rewardClient = reward.NewNopClient()
	}

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}
	placementCfg := cfg.PlacementConfig
	if placementCfg.MaxAttempts == 0 && placementCfg.MaxRestarts == 0 {
		placementCfg = placement.DefaultConfig()
	}

	return newWithDependencies(dependencies{
		store:     store,
		clock:     clock.New(),
		random:    random.New(),
		reward:    rewardClient,
		generator: cfg.Generator,
		auth:      authCfg,
		placement: placementCfg,
		round:     cfg.RoundConfig,
		logger:    logger,
	}), nil
}

type dependencies struct {
	store     storage.Storage
	clock     clock.Clock
	random    random.Random
	reward    reward.Client
	generator category.Generator
	auth      auth.Config
	placement placement.Config
	round     model.RoundConfig
	logger    *slog.Logger
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(d dependencies) *App {
	placementService := placement.New(d.random, d.placement, d.logger)
	categoryService := category.New(d.store, d.generator, d.logger)
	hubManager := sse.NewHubManager(d.logger)
	broadcaster := sse.NewBroadcaster(hubManager, d.logger)
	roundController := round.NewController(d.store, placementService, categoryService, d.reward,
		broadcaster, d.clock, d.random, d.logger, d.round)
	authService := auth.New(d.store, d.clock, d.logger, d.auth)

	return &App{
		Storage:          d.store,
		Clock:            d.clock,
		Random:           d.random,
		RewardClient:     d.reward,
		PlacementService: placementService,
		CategoryService:  categoryService,
		RoundController:  roundController,
		RoundTicker:      round.NewTicker(roundController, 0, d.logger),
		AuthService:      authService,
		HubManager:       hubManager,
		Broadcaster:      broadcaster,
		Logger:           d.logger,
	}
}

// LoadCategories loads the built-in categories, then any saved in storage,
// then the optional file at path
func (a *App) LoadCategories(ctx context.Context, path string) error {
	if err := a.CategoryService.LoadBuiltIn(ctx); err != nil {
		return err
	}
	if err := a.CategoryService.LoadFromStorage(ctx); err != nil {
		return fmt.Errorf("load stored categories: %w", err)
	}
	if path != "" {
		if err := a.CategoryService.LoadFromFile(ctx, path); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the storage backend
func (a *App) Close() error {
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
