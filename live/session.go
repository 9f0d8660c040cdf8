// Package live runs a decision engine against a streaming feed. Orders go
// to whatever sink the engine was built with; there is no venue adapter
// here, so a live session is a paper session.
package live

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rustyeddy/courtside/broker"
	"github.com/rustyeddy/courtside/feed"
	"github.com/rustyeddy/courtside/game"
	"github.com/rustyeddy/courtside/strategy"
)

var ErrNoSource = errors.New("live: Source is required")

// Source pushes messages into a handler until it is exhausted or ctx ends.
// *feed.WSFeed is the production Source.
type Source interface {
	Run(ctx context.Context, h feed.Handler) error
}

// Session adapts feed messages onto engine callbacks. The engine's own lock
// serializes a callback arriving from the status goroutine or elsewhere.
type Session struct {
	Engine         *strategy.Engine
	Source         Source
	StatusInterval time.Duration // 0 disables periodic status lines
	Log            *slog.Logger

	events atomic.Int64
	trades atomic.Int64
}

func (s *Session) HandleGameEvent(ctx context.Context, ev game.Event) {
	d := s.Engine.OnGameEvent(ctx, ev)
	s.events.Add(1)
	if d.Traded() {
		s.trades.Add(1)
	}
}

func (s *Session) HandleQuote(q broker.Quote)           { s.Engine.OnOrderbookUpdate(q) }
func (s *Session) HandlePrint(p broker.Print)           { s.Engine.OnTradeUpdate(p) }
func (s *Session) HandleAccount(u broker.AccountUpdate) { s.Engine.OnAccountUpdate(u) }

// Events is the number of game events handled so far.
func (s *Session) Events() int { return int(s.events.Load()) }

// Trades is the number of those events that produced an order.
func (s *Session) Trades() int { return int(s.trades.Load()) }

func (s *Session) logger() *slog.Logger {
	if s.Log == nil {
		return slog.Default()
	}
	return s.Log
}

// Run reads the source to the end. A status line is logged every
// StatusInterval and once more on exit.
func (s *Session) Run(ctx context.Context) error {
	if s.Engine == nil {
		return errors.New("live: Engine is required")
	}
	if s.Source == nil {
		return ErrNoSource
	}

	eg, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg.Go(func() error {
		defer cancel()
		return s.Source.Run(ctx, s)
	})

	if s.StatusInterval > 0 {
		eg.Go(func() error {
			ticker := time.NewTicker(s.StatusInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					s.logStatus("status")
				case <-ctx.Done():
					return nil
				}
			}
		})
	}

	err := eg.Wait()
	s.logStatus("session ended")
	return err
}

func (s *Session) logStatus(msg string) {
	snap := s.Engine.Snapshot()
	s.logger().Info(msg,
		slog.Int("events", s.Events()),
		slog.Int("trades", s.Trades()),
		slog.Int("position", snap.Position),
		slog.Float64("market", snap.MarketPrice),
		slog.Int("home", snap.Game.HomeScore),
		slog.Int("away", snap.Game.AwayScore),
		slog.Float64("time_remaining", snap.Game.TimeRemaining))
}
