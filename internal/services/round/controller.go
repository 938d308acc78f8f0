package round

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/mcoot/wordhunt/internal/dependencies/clock"
	"github.com/mcoot/wordhunt/internal/dependencies/random"
	"github.com/mcoot/wordhunt/internal/model"
	"github.com/mcoot/wordhunt/internal/services/category"
	"github.com/mcoot/wordhunt/internal/services/placement"
	"github.com/mcoot/wordhunt/internal/services/reward"
	"github.com/mcoot/wordhunt/internal/services/selection"
	"github.com/mcoot/wordhunt/internal/storage"
)

// Publisher receives round events as they happen
type Publisher interface {
	Publish(ctx context.Context, event model.Event)
}

// NopPublisher discards events
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, model.Event) {}

// Result is the state of a round after an intent was applied
type Result struct {
	Round   *model.Round
	Outcome selection.OutcomeKind
	// Matched is set when a release matched a word that had not been found yet
	Matched *model.PlacedWord
}

// ClaimResult reports a credited reward
type ClaimResult struct {
	Points  int
	Balance int
}

// Controller owns every round and applies player intents to them.
// Mutations are serialised so the HTTP handlers and the timer never interleave.
type Controller struct {
	storage    storage.Storage
	placer     placement.ServiceInterface
	categories category.ServiceInterface
	reward     reward.Client
	publisher  Publisher
	clock      clock.Clock
	random     random.Random
	logger     *slog.Logger
	cfg        model.RoundConfig

	mu sync.Mutex
}

// NewController creates a new round Controller
func NewController(
	storage storage.Storage,
	placer placement.ServiceInterface,
	categories category.ServiceInterface,
	rewardClient reward.Client,
	publisher Publisher,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
	cfg model.RoundConfig,
) *Controller {
	defaults := model.DefaultRoundConfig()
	if cfg.Rows <= 0 {
		cfg.Rows = defaults.Rows
	}
	if cfg.Cols <= 0 {
		cfg.Cols = defaults.Cols
	}
	if len(cfg.Directions) == 0 {
		cfg.Directions = defaults.Directions
	}
	if cfg.DurationSeconds <= 0 {
		cfg.DurationSeconds = defaults.DurationSeconds
	}
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &Controller{
		storage:    storage,
		placer:     placer,
		categories: categories,
		reward:     rewardClient,
		publisher:  publisher,
		clock:      clock,
		random:     random,
		logger:     logger,
		cfg:        cfg,
	}
}

// Config returns the settings new rounds are generated with
func (c *Controller) Config() model.RoundConfig {
	return c.cfg
}

// StartRound builds a new grid for the category and makes it the player's
// active round. Any round the player still had running is abandoned.
// An empty categoryID picks a category at random.
func (c *Controller) StartRound(ctx context.Context, playerID model.PlayerID, categoryID model.CategoryID) (*model.Round, error) {
	var (
		cat *model.Category
		err error
	)
	if categoryID == "" {
		cat, err = c.categories.Pick(c.random)
	} else {
		cat, err = c.categories.Get(ctx, categoryID)
	}
	if err != nil {
		return nil, err
	}

	grid, placed, err := c.placer.Place(cat.Words, c.cfg.Rows, c.cfg.Cols, c.cfg.Directions)
	if err != nil {
		c.logger.Error("failed to place words",
			slog.String("category_id", string(cat.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.abandonActiveRounds(ctx, playerID); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	round := &model.Round{
		ID:               model.RoundID(uuid.NewString()),
		PlayerID:         playerID,
		CategoryID:       cat.ID,
		State:            model.RoundStateActive,
		Grid:             grid,
		Words:            placed,
		Found:            make([]bool, len(placed)),
		Selection:        model.IdleSelection(),
		DurationSeconds:  c.cfg.DurationSeconds,
		RemainingSeconds: c.cfg.DurationSeconds,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := c.storage.SaveRound(ctx, round); err != nil {
		c.logger.Error("failed to save round",
			slog.String("round_id", string(round.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("round started",
		slog.String("round_id", string(round.ID)),
		slog.String("player_id", string(playerID)),
		slog.String("category_id", string(cat.ID)),
		slog.Int("words", len(placed)),
	)
	c.publish(ctx, round, model.EventRoundStarted, model.RoundStartedPayload{
		CategoryID:       cat.ID,
		Rows:             grid.Rows,
		Cols:             grid.Cols,
		Words:            round.WordList(),
		RemainingSeconds: round.RemainingSeconds,
	})
	return round, nil
}

// abandonActiveRounds must be called with mu held
func (c *Controller) abandonActiveRounds(ctx context.Context, playerID model.PlayerID) error {
	active, err := c.storage.ListActiveRounds(ctx)
	if err != nil {
		return err
	}
	for _, r := range active {
		if r.PlayerID != playerID {
			continue
		}
		c.finish(ctx, r, model.EndReasonAbandoned)
		if err := c.storage.SaveRound(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

// GetRound returns a round by ID
func (c *Controller) GetRound(ctx context.Context, roundID model.RoundID) (*model.Round, error) {
	return c.storage.GetRound(ctx, roundID)
}

// Press starts a selection at pos
func (c *Controller) Press(ctx context.Context, roundID model.RoundID, playerID model.PlayerID, pos model.Position) (*Result, error) {
	return c.apply(ctx, roundID, playerID, selection.Press(pos))
}

// Extend drags the selection onto pos
func (c *Controller) Extend(ctx context.Context, roundID model.RoundID, playerID model.PlayerID, pos model.Position) (*Result, error) {
	return c.apply(ctx, roundID, playerID, selection.Extend(pos))
}

// Release ends the selection and checks it against the hidden words
func (c *Controller) Release(ctx context.Context, roundID model.RoundID, playerID model.PlayerID) (*Result, error) {
	return c.apply(ctx, roundID, playerID, selection.Release())
}

// Abort drops the selection without checking it
func (c *Controller) Abort(ctx context.Context, roundID model.RoundID, playerID model.PlayerID) (*Result, error) {
	return c.apply(ctx, roundID, playerID, selection.Abort())
}

func (c *Controller) apply(ctx context.Context, roundID model.RoundID, playerID model.PlayerID, intent selection.Intent) (*Result, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	round, err := c.loadOwned(ctx, roundID, playerID)
	if err != nil {
		return nil, err
	}
	if !round.IsActive() {
		return nil, model.ErrRoundFinished
	}
	if (intent.Kind == selection.IntentPress || intent.Kind == selection.IntentExtend) && !round.Grid.InBounds(intent.Pos) {
		return nil, model.ErrInvalidPosition
	}

	sel, outcome := selection.Apply(round.Selection, intent, round.IsFound)
	result := &Result{Round: round, Outcome: outcome.Kind}
	if outcome.Kind == selection.OutcomeIgnored {
		return result, nil
	}
	round.Selection = sel
	round.UpdatedAt = c.clock.Now()

	if outcome.Kind == selection.OutcomeReleased {
		if pw, idx, ok := selection.Match(outcome.Path, round.Words); ok && !round.Found[idx] {
			round.Found[idx] = true
			round.FoundCells = append(round.FoundCells, pw.Path...)
			round.CorrectCount++
			result.Matched = &pw
		}
	}

	if err := c.storage.SaveRound(ctx, round); err != nil {
		return nil, err
	}

	if result.Matched != nil {
		c.logger.Info("word found",
			slog.String("round_id", string(round.ID)),
			slog.String("word", result.Matched.Word),
			slog.Int("correct_count", round.CorrectCount),
		)
		c.publish(ctx, round, model.EventWordFound, model.WordFoundPayload{
			Word:         result.Matched.Word,
			Path:         result.Matched.Path,
			CorrectCount: round.CorrectCount,
			TotalWords:   len(round.Words),
		})

		if round.AllFound() {
			c.finish(ctx, round, model.EndReasonCompleted)
			if err := c.storage.SaveRound(ctx, round); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

// Tick advances the round timer by one second and ends the round at zero.
// Ticking a finished round does nothing.
func (c *Controller) Tick(ctx context.Context, roundID model.RoundID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	round, err := c.storage.GetRound(ctx, roundID)
	if err != nil {
		return err
	}
	if !round.IsActive() {
		return nil
	}

	if round.RemainingSeconds > 0 {
		round.RemainingSeconds--
	}
	round.UpdatedAt = c.clock.Now()
	c.publish(ctx, round, model.EventTick, model.TickPayload{RemainingSeconds: round.RemainingSeconds})

	if round.RemainingSeconds == 0 {
		c.finish(ctx, round, model.EndReasonTimeout)
	}
	return c.storage.SaveRound(ctx, round)
}

// AbandonRound ends the player's round early
func (c *Controller) AbandonRound(ctx context.Context, roundID model.RoundID, playerID model.PlayerID) (*model.Round, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	round, err := c.loadOwned(ctx, roundID, playerID)
	if err != nil {
		return nil, err
	}
	if !round.IsActive() {
		return nil, model.ErrRoundFinished
	}

	c.finish(ctx, round, model.EndReasonAbandoned)
	if err := c.storage.SaveRound(ctx, round); err != nil {
		return nil, err
	}
	return round, nil
}

// ActiveRoundIDs lists the rounds whose timer is still running
func (c *Controller) ActiveRoundIDs(ctx context.Context) ([]model.RoundID, error) {
	rounds, err := c.storage.ListActiveRounds(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]model.RoundID, len(rounds))
	for i, r := range rounds {
		ids[i] = r.ID
	}
	return ids, nil
}

// ClaimReward credits a finished round's score to address. Each round can be claimed once.
func (c *Controller) ClaimReward(ctx context.Context, roundID model.RoundID, playerID model.PlayerID, address string) (*ClaimResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	round, err := c.loadOwned(ctx, roundID, playerID)
	if err != nil {
		return nil, err
	}
	if round.IsActive() {
		return nil, model.ErrRoundNotFinished
	}
	if round.Claimed {
		return nil, model.ErrAlreadyClaimed
	}
	if address == "" {
		return nil, model.ErrAddressRequired
	}

	balance, err := c.reward.AddToBalance(ctx, address, round.CorrectCount)
	if err != nil {
		return nil, err
	}

	round.Claimed = true
	round.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveRound(ctx, round); err != nil {
		return nil, err
	}

	c.logger.Info("round reward claimed",
		slog.String("round_id", string(round.ID)),
		slog.String("player_id", string(playerID)),
		slog.Int("points", round.CorrectCount),
	)
	return &ClaimResult{Points: round.CorrectCount, Balance: balance}, nil
}

// loadOwned must be called with mu held
func (c *Controller) loadOwned(ctx context.Context, roundID model.RoundID, playerID model.PlayerID) (*model.Round, error) {
	round, err := c.storage.GetRound(ctx, roundID)
	if err != nil {
		return nil, err
	}
	if round.PlayerID != playerID {
		return nil, model.ErrNotRoundOwner
	}
	return round, nil
}

// finish marks the round ended and announces it; the caller saves
func (c *Controller) finish(ctx context.Context, round *model.Round, reason model.EndReason) {
	now := c.clock.Now()
	round.State = model.RoundStateFinished
	round.EndReason = reason
	round.Selection = model.IdleSelection()
	round.EndedAt = now
	round.UpdatedAt = now

	c.logger.Info("round ended",
		slog.String("round_id", string(round.ID)),
		slog.String("reason", string(reason)),
		slog.Int("correct_count", round.CorrectCount),
		slog.Int("total_words", len(round.Words)),
	)
	c.publish(ctx, round, model.EventRoundEnded, model.RoundEndedPayload{
		Reason:       reason,
		CorrectCount: round.CorrectCount,
		TotalWords:   len(round.Words),
	})
}

func (c *Controller) publish(ctx context.Context, round *model.Round, eventType model.EventType, payload any) {
	c.publisher.Publish(ctx, model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		RoundID:   round.ID,
		PlayerID:  round.PlayerID,
		Payload:   payload,
	})
}

// IsNotFound reports whether err means the round does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, model.ErrRoundNotFound)
}
