package round

import (
	"context"
	"log/slog"
	"time"
)

// Ticker drives the countdown of every active round
type Ticker struct {
	controller *Controller
	interval   time.Duration
	logger     *slog.Logger
}

// NewTicker creates a Ticker. A zero interval means one second.
func NewTicker(controller *Controller, interval time.Duration, logger *slog.Logger) *Ticker {
	if interval <= 0 {
		interval = time.Second
	}
	return &Ticker{
		controller: controller,
		interval:   interval,
		logger:     logger.With(slog.String("component", "round-ticker")),
	}
}

// Run ticks until ctx is cancelled
func (t *Ticker) Run(ctx context.Context) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	t.logger.Info("round ticker started", slog.Duration("interval", t.interval))
	for {
		select {
		case <-ctx.Done():
			t.logger.Info("round ticker stopped")
			return
		case <-ticker.C:
			t.TickOnce(ctx)
		}
	}
}

// TickOnce advances every active round by one second and returns how many were ticked
func (t *Ticker) TickOnce(ctx context.Context) int {
	ids, err := t.controller.ActiveRoundIDs(ctx)
	if err != nil {
		t.logger.Error("failed to list active rounds", slog.String("error", err.Error()))
		return 0
	}

	ticked := 0
	for _, id := range ids {
		if err := t.controller.Tick(ctx, id); err != nil {
			// The round may have expired from storage since it was listed
			if !IsNotFound(err) {
				t.logger.Error("failed to tick round",
					slog.String("round_id", string(id)),
					slog.String("error", err.Error()),
				)
			}
			continue
		}
		ticked++
	}
	return ticked
}
