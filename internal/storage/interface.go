package storage

import (
	"context"

	"github.com/mcoot/wordhunt/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Round operations
	SaveRound(ctx context.Context, round *model.Round) error
	GetRound(ctx context.Context, id model.RoundID) (*model.Round, error)
	DeleteRound(ctx context.Context, id model.RoundID) error
	// ListActiveRounds returns every round still in the active state
	ListActiveRounds(ctx context.Context) ([]*model.Round, error)

	// Category operations
	SaveCategory(ctx context.Context, category *model.Category) error
	GetCategory(ctx context.Context, id model.CategoryID) (*model.Category, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
}
