package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/wordhunt/internal/model"
	"github.com/mcoot/wordhunt/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	// Apply TTL only for guest players
	var ttl time.Duration
	if player.IsGuest {
		ttl = s.cfg.GuestPlayerTTL
	}
	return s.client.Set(ctx, playerKey(player.ID), data, ttl).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	var player model.Player
	if err := s.getJSON(ctx, playerKey(id), &player, model.ErrPlayerNotFound); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	return s.client.Del(ctx, playerKey(id)).Err()
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	data, err := json.Marshal(rp)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, registeredPlayerKey(rp.PlayerID), data, 0) // No TTL
	pipe.Set(ctx, usernameIndexKey(rp.Username), string(rp.PlayerID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	var rp model.RegisteredPlayer
	if err := s.getJSON(ctx, registeredPlayerKey(playerID), &rp, model.ErrPlayerNotFound); err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	// Look up player ID from username index
	playerIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetRegisteredPlayer(ctx, model.PlayerID(playerIDStr))
}

// Round operations

func (s *Storage) SaveRound(ctx context.Context, round *model.Round) error {
	data, err := json.Marshal(round)
	if err != nil {
		return err
	}

	// Save and keep the active index in step
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, roundKey(round.ID), data, s.cfg.RoundTTL)
	if round.IsActive() {
		pipe.SAdd(ctx, activeRoundsIndexKey(), string(round.ID))
	} else {
		pipe.SRem(ctx, activeRoundsIndexKey(), string(round.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRound(ctx context.Context, id model.RoundID) (*model.Round, error) {
	var round model.Round
	if err := s.getJSON(ctx, roundKey(id), &round, model.ErrRoundNotFound); err != nil {
		return nil, err
	}
	return &round, nil
}

func (s *Storage) DeleteRound(ctx context.Context, id model.RoundID) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, roundKey(id))
	pipe.SRem(ctx, activeRoundsIndexKey(), string(id))
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) ListActiveRounds(ctx context.Context) ([]*model.Round, error) {
	ids, err := s.client.SMembers(ctx, activeRoundsIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Round{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = roundKey(model.RoundID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	rounds := make([]*model.Round, 0, len(values))
	var stale []interface{}
	for i, val := range values {
		if val == nil {
			stale = append(stale, ids[i]) // Round expired, drop it from the index
			continue
		}
		var round model.Round
		if err := json.Unmarshal([]byte(val.(string)), &round); err != nil {
			continue // Skip invalid data
		}
		if round.IsActive() {
			rounds = append(rounds, &round)
		}
	}

	if len(stale) > 0 {
		if err := s.client.SRem(ctx, activeRoundsIndexKey(), stale...).Err(); err != nil {
			return nil, err
		}
	}
	return rounds, nil
}

// Category operations

func (s *Storage) SaveCategory(ctx context.Context, category *model.Category) error {
	data, err := json.Marshal(category)
	if err != nil {
		return err
	}

	existed, err := s.client.Exists(ctx, categoryKey(category.ID)).Result()
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, categoryKey(category.ID), data, 0) // No TTL
	if existed == 0 {
		pipe.RPush(ctx, categoryOrderKey(), string(category.ID))
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetCategory(ctx context.Context, id model.CategoryID) (*model.Category, error) {
	var c model.Category
	if err := s.getJSON(ctx, categoryKey(id), &c, model.ErrCategoryNotFound); err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Storage) ListCategories(ctx context.Context) ([]*model.Category, error) {
	ids, err := s.client.LRange(ctx, categoryOrderKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*model.Category{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = categoryKey(model.CategoryID(id))
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	categories := make([]*model.Category, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var c model.Category
		if err := json.Unmarshal([]byte(val.(string)), &c); err != nil {
			continue // Skip invalid data
		}
		categories = append(categories, &c)
	}
	return categories, nil
}

// getJSON loads a JSON value, mapping a missing key to notFound
func (s *Storage) getJSON(ctx context.Context, key string, dst any, notFound error) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return notFound
		}
		return err
	}
	return json.Unmarshal(data, dst)
}
