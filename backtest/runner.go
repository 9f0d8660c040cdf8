// Package backtest replays a recorded game through a decision engine wired
// to a simulated account and reports the resulting equity curve.
package backtest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rustyeddy/courtside/broker"
	"github.com/rustyeddy/courtside/feed"
	"github.com/rustyeddy/courtside/journal"
	"github.com/rustyeddy/courtside/pkg/id"
	"github.com/rustyeddy/courtside/sim"
	"github.com/rustyeddy/courtside/strategy"
)

var (
	ErrNoEngine  = errors.New("backtest: Engine is required")
	ErrNoFeed    = errors.New("backtest: Feed is required")
	ErrNoAccount = errors.New("backtest: Account is required")
)

// ReasonEndOfGame marks the fill that closes the simulated position when
// the engine resets at END_GAME.
const ReasonEndOfGame = "end-of-game"

// Runner drives one engine and one account through a feed. Neither may be
// shared with another runner.
type Runner struct {
	Engine  *strategy.Engine
	Account *sim.Account
	Feed    feed.Feed

	RunID   string // generated when empty
	Dataset string
	Journal journal.Journal // optional
	Log     *slog.Logger
}

// NewRunner builds an engine whose orders fill against a fresh simulated
// account and whose sizing follows that account's capital.
func NewRunner(p strategy.Params, acct sim.Config, f feed.Feed, opts ...strategy.Option) *Runner {
	a := sim.NewAccount(acct)
	opts = append([]strategy.Option{strategy.WithCapital(a)}, opts...)
	return &Runner{
		Engine:  strategy.NewEngine(p, a, opts...),
		Account: a,
		Feed:    f,
	}
}

// Run processes the whole feed. Each item is handled to completion (book
// update, decision, simulated fill, trailing stop, equity mark) before the
// next is read. If ctx is cancelled or the feed fails, the result up to
// that point is returned along with the error.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	if r.Engine == nil {
		return Result{}, ErrNoEngine
	}
	if r.Feed == nil {
		return Result{}, ErrNoFeed
	}
	if r.Account == nil {
		return Result{}, ErrNoAccount
	}
	defer r.Feed.Close()

	log := r.Log
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	res := Result{
		RunID:        r.RunID,
		Dataset:      r.Dataset,
		StartCapital: r.Account.Capital(),
		Actions:      map[strategy.Action]int{},
	}
	if res.RunID == "" {
		res.RunID = id.New()
	}

	p := r.Engine.Params()
	clock := p.GameLength

	var runErr error
	for seq := 0; ; seq++ {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		it, ok, err := r.Feed.Next()
		if err != nil {
			runErr = fmt.Errorf("backtest: feed: %w", err)
			break
		}
		if !ok {
			break
		}

		if it.MarketPrice != nil {
			r.Engine.OnOrderbookUpdate(broker.Quote{Instrument: p.Instrument, Price: *it.MarketPrice})
		}
		if it.Event.TimeRemaining != nil {
			clock = *it.Event.TimeRemaining
		}
		r.Account.Mark(r.Engine.MarketPrice())
		r.Account.Stamp(seq, clock)

		d := r.Engine.OnGameEvent(ctx, it.Event)
		res.Actions[d.Action]++

		if d.Reset {
			if f, ok := r.Account.Flatten(ReasonEndOfGame); ok {
				log.Debug("position closed at game end", slog.Int("qty", f.Quantity), slog.Float64("price", f.Price))
			}
			clock = p.GameLength
		} else if f, hit := r.Account.CheckTrailingStop(ctx); hit {
			log.Info("trailing stop", slog.Int("seq", seq), slog.Int("qty", f.Quantity), slog.Float64("price", f.Price))
			r.Engine.OnAccountUpdate(broker.AccountUpdate{
				Instrument:       p.Instrument,
				Side:             f.Side,
				Price:            f.Price,
				Quantity:         f.Quantity,
				CapitalRemaining: f.Capital,
			})
		}

		r.Account.Mark(r.Engine.MarketPrice())
		res.EquityCurve = append(res.EquityCurve, r.Account.Equity())
	}

	res.Trades = r.Account.Fills()
	summarize(&res)

	if r.Journal != nil {
		if err := Record(r.Journal, res, p); err != nil {
			return res, errors.Join(runErr, fmt.Errorf("backtest: journal: %w", err))
		}
	}
	return res, runErr
}
