package tuning

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/rustyeddy/courtside/backtest"
	"github.com/rustyeddy/courtside/feed"
	"github.com/rustyeddy/courtside/sim"
	"github.com/rustyeddy/courtside/strategy"
)

// Trial is the outcome of one combo.
type Trial struct {
	Combo

	FinalValue  float64
	PnL         float64
	MaxDrawdown float64
	Sharpe      float64
	NumTrades   int
}

// Search replays Items once per combo. Every trial builds its own engine
// and account; only the read-only items are shared.
type Search struct {
	Base    strategy.Params
	Account sim.Config
	Items   []feed.Item
	Workers int // <= 0 means GOMAXPROCS

	// Progress, if set, is called after each finished trial. It may be
	// called from several goroutines at once.
	Progress func(done, total int, t Trial)
}

// Run evaluates every combo in g. Trials come back in combo order. The
// first failing trial cancels the rest.
func (s Search) Run(ctx context.Context, g Grid) ([]Trial, error) {
	combos := g.Combos(s.Base)
	trials := make([]Trial, len(combos))

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	var done atomic.Int64
	for i, c := range combos {
		eg.Go(func() error {
			t, err := s.trial(ctx, c)
			if err != nil {
				return fmt.Errorf("tuning %s: %w", c, err)
			}
			trials[i] = t
			n := done.Add(1)
			if s.Progress != nil {
				s.Progress(int(n), len(combos), t)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return trials, nil
}

func (s Search) trial(ctx context.Context, c Combo) (Trial, error) {
	r := backtest.NewRunner(c.Apply(s.Base), s.Account, feed.NewSliceFeed(s.Items))
	r.RunID = c.String()
	res, err := r.Run(ctx)
	if err != nil {
		return Trial{}, err
	}
	return Trial{
		Combo:       c,
		FinalValue:  res.FinalValue,
		PnL:         res.PnL,
		MaxDrawdown: res.MaxDrawdown,
		Sharpe:      res.Sharpe,
		NumTrades:   res.NumTrades,
	}, nil
}

var ErrUnknownKey = errors.New("tuning: unknown sort key")

// SortBy orders trials best first by key: pnl, sharpe, final_value (higher
// is better) or max_drawdown (lower is better). Ties keep combo order.
func SortBy(trials []Trial, key string) error {
	var less func(a, b Trial) bool
	switch key {
	case "pnl":
		less = func(a, b Trial) bool { return a.PnL > b.PnL }
	case "sharpe":
		less = func(a, b Trial) bool { return a.Sharpe > b.Sharpe }
	case "final_value":
		less = func(a, b Trial) bool { return a.FinalValue > b.FinalValue }
	case "max_drawdown":
		less = func(a, b Trial) bool { return a.MaxDrawdown < b.MaxDrawdown }
	default:
		return fmt.Errorf("%w %q", ErrUnknownKey, key)
	}
	sort.SliceStable(trials, func(i, j int) bool { return less(trials[i], trials[j]) })
	return nil
}
